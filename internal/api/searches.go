package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apetrovs/newshub/internal/model"
)

func (s *Server) handleRecentSearches(c echo.Context) error {
	searches, err := s.recents.Filter(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		log.Printf("[ERROR] failed to list recent searches: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch recent searches")
	}
	if searches == nil {
		searches = []model.RecentSearch{}
	}

	return c.JSON(http.StatusOK, searches)
}

func (s *Server) handleClearRecentSearches(c echo.Context) error {
	if err := s.recents.Clear(c.Request().Context()); err != nil {
		log.Printf("[ERROR] failed to clear recent searches: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to clear recent searches")
	}

	return c.NoContent(http.StatusNoContent)
}
