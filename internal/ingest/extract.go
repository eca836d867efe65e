package ingest

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/go-shiori/go-readability"
)

var redundantNewLines = regexp.MustCompile(`\n{3,}`)

// ReadabilityExtractor fetches the page behind a link and pulls the readable
// article text out of it. Used when a provider ships a link but no body.
type ReadabilityExtractor struct {
	httpc *http.Client
}

func NewReadabilityExtractor(timeout time.Duration) *ReadabilityExtractor {
	return &ReadabilityExtractor{
		httpc: &http.Client{Timeout: timeout},
	}
}

func (e *ReadabilityExtractor) Extract(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: %s", resp.Status)
	}

	doc, err := readability.FromReader(resp.Body, nil)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	return redundantNewLines.ReplaceAllString(doc.TextContent, "\n"), nil
}
