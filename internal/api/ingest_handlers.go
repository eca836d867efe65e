package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apetrovs/newshub/internal/model"
)

type searchRequest struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources"`
}

// handleExternalSearch runs a live search against the external providers,
// stores the results and records the query in the recent-search list. A
// provider failing means it contributes nothing; the other provider's
// results are still ingested.
func (s *Server) handleExternalSearch(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return errorJSON(c, http.StatusBadRequest, "search query must not be empty")
	}

	ctx := c.Request().Context()

	if err := s.webhook.TriggerSearch(ctx, req.Query); err != nil {
		// The webhook is fire-and-forget telemetry.
		log.Printf("[ERROR] failed to trigger search webhook: %v", err)
	}

	var raws []model.RawArticle
	if fromNews, err := s.news.Search(ctx, req.Query); err != nil {
		log.Printf("[ERROR] news api search failed: %v", err)
	} else {
		raws = append(raws, fromNews...)
	}
	if len(req.Sources) > 0 {
		if fromRapid, err := s.search.Search(ctx, req.Query, req.Sources); err != nil {
			log.Printf("[ERROR] rapid search failed: %v", err)
		} else {
			raws = append(raws, fromRapid...)
		}
	}

	stored := s.ingestor.Ingest(ctx, raws)

	if err := s.recents.Add(ctx, req.Query, req.Sources); err != nil {
		log.Printf("[ERROR] failed to record recent search: %v", err)
	}

	return c.JSON(http.StatusOK, s.markBookmarked(c, stored))
}

type trendingRequest struct {
	Topics []string `json:"topics"`
}

func (s *Server) handleTrending(c echo.Context) error {
	var req trendingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Topics) == 0 {
		for _, cat := range model.Categories {
			req.Topics = append(req.Topics, string(cat))
		}
	}

	ctx := c.Request().Context()

	raws, err := s.trending.Trending(ctx, req.Topics)
	if err != nil {
		log.Printf("[ERROR] trending fetch failed: %v", err)
		return errorJSON(c, http.StatusBadGateway, "failed to fetch trending news")
	}

	stored := s.ingestor.Ingest(ctx, raws)
	return c.JSON(http.StatusOK, s.markBookmarked(c, stored))
}

func (s *Server) handleRefreshHeadlines(c echo.Context) error {
	ctx := c.Request().Context()

	raws, err := s.headlines.TopHeadlines(ctx)
	if err != nil {
		log.Printf("[ERROR] headlines fetch failed: %v", err)
		return errorJSON(c, http.StatusBadGateway, "failed to fetch headlines")
	}

	stored := s.ingestor.Ingest(ctx, raws)
	return c.JSON(http.StatusOK, map[string]any{
		"stored":   len(stored),
		"articles": s.markBookmarked(c, stored),
	})
}
