// Package webhook posts search events to a configured endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type payload struct {
	Message   string    `json:"message"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// Client fires a search-triggered webhook. The receiver may answer with
// JSON or an opaque text body; any 2xx counts as success. A zero URL
// disables the client, making TriggerSearch a no-op.
type Client struct {
	url   string
	httpc *http.Client
	now   func() time.Time
}

func New(url string, timeout time.Duration) *Client {
	return &Client{
		url:   url,
		httpc: &http.Client{Timeout: timeout},
		now:   time.Now,
	}
}

func (c *Client) TriggerSearch(ctx context.Context, query string) error {
	if c.url == "" {
		return nil
	}

	body, err := json.Marshal(payload{
		Message:   "Web search triggered!",
		Query:     query,
		Timestamp: c.now().UTC(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused; the body content is not ours
	// to interpret.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook request failed: %s", resp.Status)
	}
	return nil
}
