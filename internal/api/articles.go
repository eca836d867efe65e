package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/apetrovs/newshub/internal/model"
)

const defaultListLimit = 100

func listLimit(c echo.Context) int {
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultListLimit
}

func (s *Server) handleListArticles(c echo.Context) error {
	var cat model.Category
	if raw := c.QueryParam("category"); raw != "" && raw != "all" {
		cat = model.Category(raw)
		if !cat.Valid() {
			return errorJSON(c, http.StatusBadRequest, "unknown category")
		}
	}

	articles, err := s.articles.All(c.Request().Context(), cat, listLimit(c))
	if err != nil {
		log.Printf("[ERROR] failed to list articles: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch articles")
	}

	return c.JSON(http.StatusOK, s.markBookmarked(c, articles))
}

func (s *Server) handleSearchStored(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return errorJSON(c, http.StatusBadRequest, "search query must not be empty")
	}

	articles, err := s.articles.Search(c.Request().Context(), query, listLimit(c))
	if err != nil {
		log.Printf("[ERROR] failed to search articles: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to search articles")
	}

	return c.JSON(http.StatusOK, s.markBookmarked(c, articles))
}

// handleRecentlySearchedArticles lists articles that arrived through user
// searches, most recent search first.
func (s *Server) handleRecentlySearchedArticles(c echo.Context) error {
	articles, err := s.articles.RecentlySearched(c.Request().Context(), listLimit(c))
	if err != nil {
		log.Printf("[ERROR] failed to list searched articles: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch searched articles")
	}

	return c.JSON(http.StatusOK, s.markBookmarked(c, articles))
}

func (s *Server) handleListHeadlines(c echo.Context) error {
	articles, err := s.articles.RecentHeadlines(c.Request().Context(), listLimit(c))
	if err != nil {
		log.Printf("[ERROR] failed to list headlines: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch headlines")
	}

	return c.JSON(http.StatusOK, s.markBookmarked(c, articles))
}

// markBookmarked computes IsBookmarked for the session user at read time.
// Anonymous requests, and bookmark lookup failures, leave every flag false:
// the flag is presentation state, never worth failing a read for.
func (s *Server) markBookmarked(c echo.Context, articles []model.Article) []model.Article {
	session, ok := currentSession(c)
	if !ok || len(articles) == 0 {
		return articles
	}

	ids, err := s.bookmarks.ArticleIDs(c.Request().Context(), session.UserID)
	if err != nil {
		log.Printf("[ERROR] failed to fetch bookmarks for %s: %v", session.UserID, err)
		return articles
	}

	bookmarked := make(map[string]bool, len(ids))
	for _, id := range ids {
		bookmarked[id] = true
	}
	for i := range articles {
		articles[i].IsBookmarked = bookmarked[articles[i].ID]
	}
	return articles
}
