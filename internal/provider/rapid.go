package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/apetrovs/newshub/internal/model"
)

const rapidNewsHost = "news-api14.p.rapidapi.com"

// topicNames maps internal category names onto the capitalized topic labels
// the trending endpoint expects. Unknown topics are skipped.
var topicNames = map[string]string{
	"business":      "Business",
	"technology":    "Technology",
	"politics":      "Politics",
	"sports":        "Sports",
	"health":        "Health",
	"entertainment": "Entertainment",
}

type rapidArticle struct {
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	URL           string   `json:"url"`
	PublishedDate string   `json:"published_date"`
	Authors       []string `json:"authors"`
	Category      []string `json:"category"`
	Content       string   `json:"content"`
	Thumbnail     string   `json:"thumbnail"`
	Publisher     struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"publisher"`
}

type rapidResponse struct {
	Success bool           `json:"success"`
	Data    []rapidArticle `json:"data"`
	Message string         `json:"message"`
}

// RapidNews talks to the news-api14 RapidAPI service:
// /v2/search/articles for keyword search and /v2/trendings for per-topic
// trending feeds. The upstream is aggressively rate-limited, so successive
// calls within one batch go through a shared limiter instead of running
// back to back.
type RapidNews struct {
	apiKey  string
	baseURL string
	host    string
	httpc   *http.Client
	limiter *rate.Limiter
}

func NewRapidNews(apiKey string) *RapidNews {
	return &RapidNews{
		apiKey:  apiKey,
		baseURL: "https://" + rapidNewsHost,
		host:    rapidNewsHost,
		httpc:   newHTTPClient(),
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

func (r *RapidNews) WithBaseURL(u string) *RapidNews {
	r.baseURL = u
	return r
}

// Search runs one query per publisher domain, sequentially. A failing domain
// contributes nothing; the remaining domains are still queried.
func (r *RapidNews) Search(ctx context.Context, query string, domains []string) ([]model.RawArticle, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("rapidapi: %w", ErrMissingAPIKey)
	}

	var all []model.RawArticle
	for _, domain := range domains {
		params := url.Values{}
		params.Set("query", query)
		params.Set("language", "en")
		params.Set("publisher", domain)
		params.Set("from", "1d")

		articles, err := r.fetch(ctx, r.baseURL+"/v2/search/articles?"+params.Encode(), model.KindSearch)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			log.Printf("[ERROR] failed to search %q on %s: %v", query, domain, err)
			continue
		}
		all = append(all, articles...)
	}
	return all, nil
}

// Trending fetches today's trending feed for each topic, sequentially.
func (r *RapidNews) Trending(ctx context.Context, topics []string) ([]model.RawArticle, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("rapidapi: %w", ErrMissingAPIKey)
	}

	today := time.Now().Format("2006-01-02")

	var all []model.RawArticle
	for _, topic := range topics {
		mapped, ok := topicNames[topic]
		if !ok {
			log.Printf("[ERROR] unknown trending topic: %s", topic)
			continue
		}

		params := url.Values{}
		params.Set("date", today)
		params.Set("topic", mapped)
		params.Set("language", "en")

		articles, err := r.fetch(ctx, r.baseURL+"/v2/trendings?"+params.Encode(), model.KindTrending)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			log.Printf("[ERROR] failed to fetch trending topic %s: %v", mapped, err)
			continue
		}
		all = append(all, articles...)
	}
	return all, nil
}

func (r *RapidNews) fetch(ctx context.Context, u string, kind model.ProviderKind) ([]model.RawArticle, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-host", r.host)
	req.Header.Set("x-rapidapi-key", r.apiKey)

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rapidapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rapidapi request failed: %s", resp.Status)
	}

	var decoded rapidResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("rapidapi decode: %w", err)
	}
	if !decoded.Success {
		return nil, fmt.Errorf("rapidapi error: %s", decoded.Message)
	}

	return lo.Map(decoded.Data, func(a rapidArticle, _ int) model.RawArticle {
		return model.RawArticle{
			Kind:          kind,
			Title:         a.Title,
			Description:   a.Summary,
			Content:       a.Content,
			Authors:       a.Authors,
			SourceName:    a.Publisher.Name,
			PublishedAt:   parseTime(a.PublishedDate),
			ImageURL:      a.Thumbnail,
			Link:          a.URL,
			CategoryHints: a.Category,
		}
	}), nil
}
