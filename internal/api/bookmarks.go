package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleListBookmarkIDs(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}

	ids, err := s.bookmarks.ArticleIDs(c.Request().Context(), session.UserID)
	if err != nil {
		log.Printf("[ERROR] failed to list bookmarks for %s: %v", session.UserID, err)
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch bookmarks")
	}
	if ids == nil {
		ids = []string{}
	}

	return c.JSON(http.StatusOK, map[string][]string{"articleIds": ids})
}

func (s *Server) handleListBookmarkedArticles(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}

	articles, err := s.bookmarks.Articles(c.Request().Context(), session.UserID)
	if err != nil {
		log.Printf("[ERROR] failed to list bookmarked articles for %s: %v", session.UserID, err)
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch bookmarked articles")
	}

	return c.JSON(http.StatusOK, articles)
}

type bookmarkRequest struct {
	ArticleID string `json:"articleId"`
}

func (s *Server) handleAddBookmark(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}

	var req bookmarkRequest
	if err := c.Bind(&req); err != nil || req.ArticleID == "" {
		return errorJSON(c, http.StatusBadRequest, "articleId is required")
	}

	if err := s.bookmarks.Add(c.Request().Context(), session.UserID, req.ArticleID); err != nil {
		log.Printf("[ERROR] failed to add bookmark for %s: %v", session.UserID, err)
		return errorJSON(c, http.StatusInternalServerError, "failed to add bookmark")
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleRemoveBookmark(c echo.Context) error {
	session, err := requireSession(c)
	if err != nil {
		return err
	}

	articleID := c.Param("articleID")
	if articleID == "" {
		return errorJSON(c, http.StatusBadRequest, "article id is required")
	}

	if err := s.bookmarks.Remove(c.Request().Context(), session.UserID, articleID); err != nil {
		log.Printf("[ERROR] failed to remove bookmark for %s: %v", session.UserID, err)
		return errorJSON(c, http.StatusInternalServerError, "failed to remove bookmark")
	}

	return c.NoContent(http.StatusNoContent)
}
