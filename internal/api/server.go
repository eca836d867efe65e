// Package api exposes the REST surface the browsing UI talks to: article
// reads, externally-backed search and refresh operations, bookmarks and
// the recent-search list.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/apetrovs/newshub/internal/model"
	"github.com/apetrovs/newshub/internal/recent"
)

type ArticleReader interface {
	All(ctx context.Context, cat model.Category, limit int) ([]model.Article, error)
	Search(ctx context.Context, query string, limit int) ([]model.Article, error)
	RecentlySearched(ctx context.Context, limit int) ([]model.Article, error)
	RecentHeadlines(ctx context.Context, limit int) ([]model.Article, error)
}

type BookmarkStore interface {
	Add(ctx context.Context, userID, articleID string) error
	Remove(ctx context.Context, userID, articleID string) error
	ArticleIDs(ctx context.Context, userID string) ([]string, error)
	Articles(ctx context.Context, userID string) ([]model.Article, error)
}

type Ingestor interface {
	Ingest(ctx context.Context, raws []model.RawArticle) []model.Article
}

// NewsSearcher is the primary news API search path.
type NewsSearcher interface {
	Search(ctx context.Context, query string) ([]model.RawArticle, error)
}

// DomainSearcher is the per-publisher-domain search path.
type DomainSearcher interface {
	Search(ctx context.Context, query string, domains []string) ([]model.RawArticle, error)
}

type Trender interface {
	Trending(ctx context.Context, topics []string) ([]model.RawArticle, error)
}

type Headliner interface {
	TopHeadlines(ctx context.Context) ([]model.RawArticle, error)
}

type WebhookTrigger interface {
	TriggerSearch(ctx context.Context, query string) error
}

type Server struct {
	articles  ArticleReader
	bookmarks BookmarkStore
	recents   recent.Store
	ingestor  Ingestor
	news      NewsSearcher
	search    DomainSearcher
	trending  Trender
	headlines Headliner
	webhook   WebhookTrigger
}

func NewServer(
	articles ArticleReader,
	bookmarks BookmarkStore,
	recents recent.Store,
	ingestor Ingestor,
	news NewsSearcher,
	search DomainSearcher,
	trending Trender,
	headlines Headliner,
	webhook WebhookTrigger,
) *Server {
	return &Server{
		articles:  articles,
		bookmarks: bookmarks,
		recents:   recents,
		ingestor:  ingestor,
		news:      news,
		search:    search,
		trending:  trending,
		headlines: headlines,
		webhook:   webhook,
	}
}

// Router builds the echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(sessionMiddleware)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/v1")
	v1.GET("/articles", s.handleListArticles)
	v1.GET("/articles/search", s.handleSearchStored)
	v1.POST("/search", s.handleExternalSearch)
	v1.POST("/trending", s.handleTrending)
	v1.POST("/headlines/refresh", s.handleRefreshHeadlines)
	v1.GET("/headlines", s.handleListHeadlines)

	v1.GET("/bookmarks", s.handleListBookmarkIDs)
	v1.GET("/bookmarks/articles", s.handleListBookmarkedArticles)
	v1.POST("/bookmarks", s.handleAddBookmark)
	v1.DELETE("/bookmarks/:articleID", s.handleRemoveBookmark)

	v1.GET("/searches/recent", s.handleRecentSearches)
	v1.DELETE("/searches/recent", s.handleClearRecentSearches)
	v1.GET("/searches/articles", s.handleRecentlySearchedArticles)

	return e
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
