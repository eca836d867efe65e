// Package storage implements the Postgres-backed article and bookmark
// stores on top of sqlx.
package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/apetrovs/newshub/internal/model"
)

type ArticleStorage struct {
	db *sqlx.DB
}

func NewArticleStorage(db *sqlx.DB) *ArticleStorage {
	return &ArticleStorage{db: db}
}

type dbArticle struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Summary     string     `db:"summary"`
	Content     string     `db:"content"`
	Author      string     `db:"author"`
	Source      string     `db:"source"`
	PublishedAt time.Time  `db:"published_at"`
	ImageURL    string     `db:"image_url"`
	Category    string     `db:"category"`
	ReadTime    int        `db:"read_time"`
	URL         string     `db:"url"`
	External    bool       `db:"is_external"`
	SearchedAt  *time.Time `db:"searched_at"`
	FetchedAt   *time.Time `db:"fetched_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

const articleColumns = `id, title, summary, content, author, source, published_at,
	image_url, category, read_time, url, is_external, searched_at, fetched_at, created_at`

func (s *ArticleStorage) Store(ctx context.Context, article model.Article) error {
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO articles (id, title, summary, content, author, source, published_at,
			image_url, category, read_time, url, is_external, searched_at, fetched_at)
		 VALUES (:id, :title, :summary, :content, :author, :source, :published_at,
			:image_url, :category, :read_time, :url, :is_external, :searched_at, :fetched_at)`,
		dbArticle{
			ID:          article.ID,
			Title:       article.Title,
			Summary:     article.Summary,
			Content:     article.Content,
			Author:      article.Author,
			Source:      article.Source,
			PublishedAt: article.PublishedAt,
			ImageURL:    article.ImageURL,
			Category:    string(article.Category),
			ReadTime:    article.ReadTime,
			URL:         article.URL,
			External:    article.External,
			SearchedAt:  article.SearchedAt,
			FetchedAt:   article.FetchedAt,
		},
	)
	return err
}

func (s *ArticleStorage) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE url = $1)`, url)
	return exists, err
}

func (s *ArticleStorage) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`, id)
	return exists, err
}

// All lists articles newest-first, optionally filtered by category. An empty
// category means no filter.
func (s *ArticleStorage) All(ctx context.Context, cat model.Category, limit int) ([]model.Article, error) {
	var rows []dbArticle
	var err error
	if cat == "" {
		err = s.db.SelectContext(ctx, &rows,
			`SELECT `+articleColumns+` FROM articles ORDER BY published_at DESC LIMIT $1`, limit)
	} else {
		err = s.db.SelectContext(ctx, &rows,
			`SELECT `+articleColumns+` FROM articles WHERE category = $1 ORDER BY published_at DESC LIMIT $2`,
			string(cat), limit)
	}
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, rowToModel), nil
}

// Search matches the query against title, summary and author,
// case-insensitively, newest-first.
func (s *ArticleStorage) Search(ctx context.Context, query string, limit int) ([]model.Article, error) {
	var rows []dbArticle
	pattern := "%" + query + "%"
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+articleColumns+` FROM articles
		 WHERE title ILIKE $1 OR summary ILIKE $1 OR author ILIKE $1
		 ORDER BY published_at DESC LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, rowToModel), nil
}

// RecentlySearched lists articles stored by user searches, most recent
// search first.
func (s *ArticleStorage) RecentlySearched(ctx context.Context, limit int) ([]model.Article, error) {
	var rows []dbArticle
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+articleColumns+` FROM articles
		 WHERE searched_at IS NOT NULL ORDER BY searched_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, rowToModel), nil
}

// RecentHeadlines lists headline-refresh articles newest-first.
func (s *ArticleStorage) RecentHeadlines(ctx context.Context, limit int) ([]model.Article, error) {
	var rows []dbArticle
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+articleColumns+` FROM articles
		 WHERE fetched_at IS NOT NULL ORDER BY published_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, rowToModel), nil
}

// DeleteExternalOlderThan purges external articles published before the
// cutoff and returns how many rows went away. The only deletion path for
// articles.
func (s *ArticleStorage) DeleteExternalOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM articles WHERE is_external = TRUE AND published_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// rowToModel applies the read-time defaults: rows written before a column
// existed, or by older ingestion code, still come back fully populated.
func rowToModel(row dbArticle, _ int) model.Article {
	a := model.Article{
		ID:          row.ID,
		Title:       row.Title,
		Summary:     row.Summary,
		Content:     row.Content,
		Author:      row.Author,
		Source:      row.Source,
		PublishedAt: row.PublishedAt,
		ImageURL:    row.ImageURL,
		Category:    model.Category(row.Category),
		ReadTime:    row.ReadTime,
		URL:         row.URL,
		External:    row.External,
		SearchedAt:  row.SearchedAt,
		FetchedAt:   row.FetchedAt,
	}
	if a.Title == "" {
		a.Title = model.DefaultTitle
	}
	if a.Author == "" {
		a.Author = model.DefaultAuthor
	}
	if a.Source == "" {
		a.Source = model.DefaultSource
	}
	if a.ImageURL == "" {
		a.ImageURL = model.DefaultImageURL
	}
	if !a.Category.Valid() {
		a.Category = model.CategoryBusiness
	}
	if a.ReadTime <= 0 {
		a.ReadTime = model.DefaultReadTime
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = time.Now().UTC()
	}
	return a
}
