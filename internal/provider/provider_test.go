package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apetrovs/newshub/internal/model"
)

func TestNewsAPISearchDecodesAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rate cuts", r.URL.Query().Get("q"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 3,
			"articles": [
				{
					"title": "Fed signals rate cuts",
					"description": "Central bank hints at easing",
					"content": "Full body",
					"author": "J. Doe",
					"source": {"name": "BBC News"},
					"publishedAt": "2024-01-15T10:30:00Z",
					"urlToImage": "https://img.example/1.jpg",
					"url": "https://a.example/1"
				},
				{"title": "[Removed]", "description": "[Removed]", "url": "https://a.example/2"},
				{"title": "No url here", "description": "desc", "url": ""}
			]
		}`))
	}))
	defer srv.Close()

	client := NewNewsAPI("test-key", "bbc.com").WithBaseURL(srv.URL)
	got, err := client.Search(context.Background(), "rate cuts")
	require.NoError(t, err)
	require.Len(t, got, 1)

	raw := got[0]
	assert.Equal(t, model.KindNewsAPI, raw.Kind)
	assert.Equal(t, "Fed signals rate cuts", raw.Title)
	assert.Equal(t, "Central bank hints at easing", raw.Description)
	assert.Equal(t, []string{"J. Doe"}, raw.Authors)
	assert.Equal(t, "BBC News", raw.SourceName)
	assert.Equal(t, "https://a.example/1", raw.Link)
	assert.Equal(t, "https://img.example/1.jpg", raw.ImageURL)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), raw.PublishedAt.UTC())
}

func TestNewsAPIMissingKey(t *testing.T) {
	client := NewNewsAPI("", "")
	_, err := client.Search(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewsAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewNewsAPI("k", "").WithBaseURL(srv.URL)
	_, err := client.TopHeadlines(context.Background(), "business")
	assert.Error(t, err)
}

func TestRapidNewsSearchContinuesAcrossDomains(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "test-key", r.Header.Get("x-rapidapi-key"))
		if r.URL.Query().Get("publisher") == "bad.example" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{
				"title": "Startup raises round",
				"summary": "Funding news",
				"url": "https://b.example/1",
				"published_date": "2024-02-01T08:00:00Z",
				"authors": ["A. One", "B. Two"],
				"category": ["Technology"],
				"content": "Body text",
				"thumbnail": "https://img.example/t.jpg",
				"publisher": {"name": "TechWire", "url": "https://techwire.example"}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewRapidNews("test-key").WithBaseURL(srv.URL)
	got, err := client.Search(context.Background(), "funding", []string{"bad.example", "good.example"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, got, 1)

	raw := got[0]
	assert.Equal(t, model.KindSearch, raw.Kind)
	assert.Equal(t, []string{"A. One", "B. Two"}, raw.Authors)
	assert.Equal(t, []string{"Technology"}, raw.CategoryHints)
	assert.Equal(t, "TechWire", raw.SourceName)
}

func TestRapidNewsTrendingSkipsUnknownTopics(t *testing.T) {
	var topics []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topics = append(topics, r.URL.Query().Get("topic"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	client := NewRapidNews("k").WithBaseURL(srv.URL)
	_, err := client.Trending(context.Background(), []string{"sports", "weather", "health"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports", "Health"}, topics)
}

func TestRealTimeTopHeadlinesDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"request_id": "abc",
			"data": [{
				"title": "Global headline",
				"excerpt": "Short excerpt text",
				"publisher": "World Daily",
				"timestamp": "1705314600000",
				"newsUrl": "https://c.example/1",
				"images": {"thumbnail": "", "thumbnailProxied": "https://img.example/p.jpg"}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewRealTimeNews("k", 100).WithBaseURL(srv.URL)
	got, err := client.TopHeadlines(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	raw := got[0]
	assert.Equal(t, model.KindHeadline, raw.Kind)
	assert.Equal(t, "Short excerpt text", raw.Description)
	assert.Equal(t, "https://img.example/p.jpg", raw.ImageURL)
	assert.Equal(t, "World Daily", raw.SourceName)
	assert.False(t, raw.PublishedAt.IsZero())
}

func TestParseTimeFallsBackToZero(t *testing.T) {
	assert.True(t, parseTime("not a date").IsZero())
	assert.True(t, parseTime("").IsZero())
	assert.False(t, parseTime("2024-01-15T10:30:00Z").IsZero())
	assert.False(t, parseTime("1705314600000").IsZero())
}
