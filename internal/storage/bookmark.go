package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/apetrovs/newshub/internal/model"
)

type BookmarkStorage struct {
	db *sqlx.DB
}

func NewBookmarkStorage(db *sqlx.DB) *BookmarkStorage {
	return &BookmarkStorage{db: db}
}

// Add records a bookmark. The (user, article) pair is unique; bookmarking
// an already-bookmarked article is a no-op, not an error.
func (s *BookmarkStorage) Add(ctx context.Context, userID, articleID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_bookmarks (user_id, article_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, article_id) DO NOTHING`,
		userID, articleID)
	return err
}

func (s *BookmarkStorage) Remove(ctx context.Context, userID, articleID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM user_bookmarks WHERE user_id = $1 AND article_id = $2`,
		userID, articleID)
	return err
}

// ArticleIDs returns the IDs of every article the user has bookmarked.
func (s *BookmarkStorage) ArticleIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		`SELECT article_id FROM user_bookmarks WHERE user_id = $1`, userID)
	return ids, err
}

// Articles returns the user's bookmarked articles, most recently bookmarked
// first, already marked as bookmarked.
func (s *BookmarkStorage) Articles(ctx context.Context, userID string) ([]model.Article, error) {
	var rows []dbArticle
	err := s.db.SelectContext(ctx, &rows,
		`SELECT a.id, a.title, a.summary, a.content, a.author, a.source, a.published_at,
			a.image_url, a.category, a.read_time, a.url, a.is_external,
			a.searched_at, a.fetched_at, a.created_at
		 FROM user_bookmarks b
		 JOIN articles a ON a.id = b.article_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row dbArticle, i int) model.Article {
		a := rowToModel(row, i)
		a.IsBookmarked = true
		return a
	}), nil
}
