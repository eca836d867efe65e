// Package recent keeps the capped recent-search list. The list lives behind
// a small Store interface so the backing store (Redis, memory) can change
// without touching callers.
package recent

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apetrovs/newshub/internal/model"
)

// MaxSearches caps the list; older entries fall off the end.
const MaxSearches = 10

type Store interface {
	// List returns the recent searches, most recent first.
	List(ctx context.Context) ([]model.RecentSearch, error)
	// Add prepends a search, dropping any earlier entry with the same
	// query (case-insensitive) and trimming to MaxSearches.
	Add(ctx context.Context, query string, sources []string) error
	// Filter returns entries whose query contains the given text,
	// case-insensitively. Blank text returns everything.
	Filter(ctx context.Context, text string) ([]model.RecentSearch, error)
	Clear(ctx context.Context) error
}

// push applies the shared list discipline: dedup by lowered query, prepend,
// cap. Both backends funnel through it.
func push(searches []model.RecentSearch, query string, sources []string, now time.Time) []model.RecentSearch {
	lowered := strings.ToLower(query)
	kept := searches[:0:0]
	for _, s := range searches {
		if strings.ToLower(s.Query) != lowered {
			kept = append(kept, s)
		}
	}

	entry := model.RecentSearch{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Query:     query,
		Timestamp: now,
		Sources:   sources,
	}
	out := append([]model.RecentSearch{entry}, kept...)
	if len(out) > MaxSearches {
		out = out[:MaxSearches]
	}
	return out
}

func filter(searches []model.RecentSearch, text string) []model.RecentSearch {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return searches
	}
	var out []model.RecentSearch
	for _, s := range searches {
		if strings.Contains(strings.ToLower(s.Query), text) {
			out = append(out, s)
		}
	}
	return out
}

// MemoryStore is the in-process backend, used in tests and deployments
// without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	searches []model.RecentSearch
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) List(_ context.Context) ([]model.RecentSearch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.RecentSearch, len(m.searches))
	copy(out, m.searches)
	return out, nil
}

func (m *MemoryStore) Add(_ context.Context, query string, sources []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = push(m.searches, query, sources, m.now().UTC())
	return nil
}

func (m *MemoryStore) Filter(ctx context.Context, text string) ([]model.RecentSearch, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, text), nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = nil
	return nil
}
