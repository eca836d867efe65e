package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerSearchPostsPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	require.NoError(t, c.TriggerSearch(context.Background(), "rate cuts"))
	assert.Equal(t, "rate cuts", got["query"])
	assert.NotEmpty(t, got["timestamp"])
}

func TestTriggerSearchAcceptsOpaqueTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("thanks"))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	assert.NoError(t, c.TriggerSearch(context.Background(), "q"))
}

func TestTriggerSearchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	assert.Error(t, c.TriggerSearch(context.Background(), "q"))
}

func TestTriggerSearchDisabled(t *testing.T) {
	c := New("", time.Second)
	assert.NoError(t, c.TriggerSearch(context.Background(), "q"))
}
