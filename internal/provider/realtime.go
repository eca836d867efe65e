package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/apetrovs/newshub/internal/model"
)

const realTimeHost = "real-time-news-data.p.rapidapi.com"

type realTimeArticle struct {
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Publisher string `json:"publisher"`
	Timestamp string `json:"timestamp"`
	NewsURL   string `json:"newsUrl"`
	Images    struct {
		Thumbnail        string `json:"thumbnail"`
		ThumbnailProxied string `json:"thumbnailProxied"`
	} `json:"images"`
}

type realTimeResponse struct {
	Status    string            `json:"status"`
	RequestID string            `json:"request_id"`
	Data      []realTimeArticle `json:"data"`
}

// RealTimeNews fetches global top headlines from the real-time-news-data
// RapidAPI service. The provider calls the summary field "excerpt"; it maps
// onto RawArticle.Description like everyone else's.
type RealTimeNews struct {
	apiKey  string
	baseURL string
	host    string
	limit   int
	httpc   *http.Client
	limiter *rate.Limiter
}

func NewRealTimeNews(apiKey string, limit int) *RealTimeNews {
	if limit <= 0 {
		limit = 500
	}
	return &RealTimeNews{
		apiKey:  apiKey,
		baseURL: "https://" + realTimeHost,
		host:    realTimeHost,
		limit:   limit,
		httpc:   newHTTPClient(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (r *RealTimeNews) WithBaseURL(u string) *RealTimeNews {
	r.baseURL = u
	return r
}

// TopHeadlines fetches the current global headline list.
func (r *RealTimeNews) TopHeadlines(ctx context.Context) ([]model.RawArticle, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("real-time-news: %w", ErrMissingAPIKey)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(r.limit))
	params.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-host", r.host)
	req.Header.Set("x-rapidapi-key", r.apiKey)

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("real-time-news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("real-time-news request failed: %s", resp.Status)
	}

	var decoded realTimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("real-time-news decode: %w", err)
	}
	if decoded.Status != "OK" {
		return nil, fmt.Errorf("real-time-news error: status %s", decoded.Status)
	}

	return lo.Map(decoded.Data, func(a realTimeArticle, _ int) model.RawArticle {
		image := a.Images.Thumbnail
		if image == "" {
			image = a.Images.ThumbnailProxied
		}
		return model.RawArticle{
			Kind:        model.KindHeadline,
			Title:       a.Title,
			Description: a.Excerpt,
			SourceName:  a.Publisher,
			PublishedAt: parseTime(a.Timestamp),
			ImageURL:    image,
			Link:        a.NewsURL,
			// Headlines carry no byline upstream; the normalizer falls back.
		}
	}), nil
}
