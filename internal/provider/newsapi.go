package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/apetrovs/newshub/internal/model"
)

const (
	newsAPIBaseURL  = "https://newsapi.org/v2"
	newsAPIPageSize = "20"
	// searchWindow bounds /everything queries to recent coverage.
	searchWindow = 5 * 24 * time.Hour
)

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
	URLToImage  string `json:"urlToImage"`
	URL         string `json:"url"`
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

// NewsAPI talks to newsapi.org. Withdrawn articles come back with literal
// "[Removed]" field values and are filtered out here.
type NewsAPI struct {
	apiKey  string
	baseURL string
	domains string
	httpc   *http.Client
	limiter *rate.Limiter
}

func NewNewsAPI(apiKey, domains string) *NewsAPI {
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: newsAPIBaseURL,
		domains: domains,
		httpc:   newHTTPClient(),
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

// WithBaseURL points the client at a different endpoint. Used in tests.
func (n *NewsAPI) WithBaseURL(u string) *NewsAPI {
	n.baseURL = u
	return n
}

// Search queries /everything, restricted to the configured publisher domains
// and the recent search window.
func (n *NewsAPI) Search(ctx context.Context, query string) ([]model.RawArticle, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi: %w", ErrMissingAPIKey)
	}

	params := url.Values{}
	params.Set("q", query)
	if n.domains != "" {
		params.Set("domains", n.domains)
	}
	params.Set("from", time.Now().Add(-searchWindow).Format("2006-01-02"))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", newsAPIPageSize)
	params.Set("apiKey", n.apiKey)

	return n.fetch(ctx, n.baseURL+"/everything?"+params.Encode())
}

// TopHeadlines queries /top-headlines, optionally filtered by category.
func (n *NewsAPI) TopHeadlines(ctx context.Context, cat string) ([]model.RawArticle, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi: %w", ErrMissingAPIKey)
	}

	params := url.Values{}
	params.Set("country", "us")
	params.Set("pageSize", newsAPIPageSize)
	params.Set("apiKey", n.apiKey)
	if cat != "" && cat != "all" {
		params.Set("category", cat)
	}

	return n.fetch(ctx, n.baseURL+"/top-headlines?"+params.Encode())
}

func (n *NewsAPI) fetch(ctx context.Context, u string) ([]model.RawArticle, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := n.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi request failed: %s", resp.Status)
	}

	var decoded newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if decoded.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", decoded.Message)
	}

	usable := lo.Filter(decoded.Articles, func(a newsAPIArticle, _ int) bool {
		return a.Title != "" && a.Description != "" && a.URL != "" &&
			a.Title != "[Removed]" && a.Description != "[Removed]"
	})

	return lo.Map(usable, func(a newsAPIArticle, _ int) model.RawArticle {
		raw := model.RawArticle{
			Kind:        model.KindNewsAPI,
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			SourceName:  a.Source.Name,
			PublishedAt: parseTime(a.PublishedAt),
			ImageURL:    a.URLToImage,
			Link:        a.URL,
		}
		if a.Author != "" {
			raw.Authors = []string{a.Author}
		}
		return raw
	}), nil
}
