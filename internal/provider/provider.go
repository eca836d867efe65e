// Package provider implements the upstream news API clients. Each client
// decodes its own response shape into []model.RawArticle; the per-provider
// field mapping lives here and nowhere else.
package provider

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

// ErrMissingAPIKey is a configuration error: the caller gets it immediately,
// nothing is retried.
var ErrMissingAPIKey = errors.New("api key not configured")

const defaultHTTPTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// timeLayouts covers the published-at formats seen across providers.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700 MST",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTime returns the zero time when no layout matches; the normalizer
// substitutes ingestion time for zero values. Millisecond epoch strings
// (real-time-news-data timestamps) are handled too.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
