package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apetrovs/newshub/internal/model"
	"github.com/apetrovs/newshub/internal/recent"
)

type fakeArticles struct {
	all []model.Article
}

func (f *fakeArticles) All(_ context.Context, cat model.Category, _ int) ([]model.Article, error) {
	if cat == "" {
		return f.all, nil
	}
	var out []model.Article
	for _, a := range f.all {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArticles) Search(_ context.Context, query string, _ int) ([]model.Article, error) {
	var out []model.Article
	for _, a := range f.all {
		if strings.Contains(strings.ToLower(a.Title), strings.ToLower(query)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArticles) RecentlySearched(_ context.Context, _ int) ([]model.Article, error) {
	return f.all, nil
}

func (f *fakeArticles) RecentHeadlines(_ context.Context, _ int) ([]model.Article, error) {
	return f.all, nil
}

type fakeBookmarks struct {
	byUser map[string][]string
}

func (f *fakeBookmarks) Add(_ context.Context, userID, articleID string) error {
	for _, id := range f.byUser[userID] {
		if id == articleID {
			return nil
		}
	}
	f.byUser[userID] = append(f.byUser[userID], articleID)
	return nil
}

func (f *fakeBookmarks) Remove(_ context.Context, userID, articleID string) error {
	kept := f.byUser[userID][:0]
	for _, id := range f.byUser[userID] {
		if id != articleID {
			kept = append(kept, id)
		}
	}
	f.byUser[userID] = kept
	return nil
}

func (f *fakeBookmarks) ArticleIDs(_ context.Context, userID string) ([]string, error) {
	return f.byUser[userID], nil
}

func (f *fakeBookmarks) Articles(_ context.Context, userID string) ([]model.Article, error) {
	return nil, nil
}

type fakeIngestor struct{}

func (fakeIngestor) Ingest(_ context.Context, raws []model.RawArticle) []model.Article {
	out := make([]model.Article, 0, len(raws))
	for _, r := range raws {
		out = append(out, model.Article{ID: "id-" + r.Title, Title: r.Title, URL: r.Link})
	}
	return out
}

type fakeNews struct {
	raws []model.RawArticle
}

func (f *fakeNews) Search(context.Context, string) ([]model.RawArticle, error) {
	return f.raws, nil
}

type fakeDomainSearch struct {
	gotDomains []string
}

func (f *fakeDomainSearch) Search(_ context.Context, _ string, domains []string) ([]model.RawArticle, error) {
	f.gotDomains = domains
	return nil, nil
}

type fakeTrender struct{}

func (fakeTrender) Trending(context.Context, []string) ([]model.RawArticle, error) {
	return nil, nil
}

type fakeHeadliner struct{}

func (fakeHeadliner) TopHeadlines(context.Context) ([]model.RawArticle, error) {
	return []model.RawArticle{{Kind: model.KindHeadline, Title: "h", Link: "https://h.example"}}, nil
}

type fakeWebhook struct {
	queries []string
}

func (f *fakeWebhook) TriggerSearch(_ context.Context, q string) error {
	f.queries = append(f.queries, q)
	return nil
}

func newTestServer(articles []model.Article) (*Server, *fakeWebhook, *fakeBookmarks) {
	hook := &fakeWebhook{}
	bookmarks := &fakeBookmarks{byUser: map[string][]string{}}
	srv := NewServer(
		&fakeArticles{all: articles},
		bookmarks,
		recent.NewMemoryStore(),
		fakeIngestor{},
		&fakeNews{raws: []model.RawArticle{{Kind: model.KindNewsAPI, Title: "n", Link: "https://n.example"}}},
		&fakeDomainSearch{},
		fakeTrender{},
		fakeHeadliner{},
		hook,
	)
	return srv, hook, bookmarks
}

func doRequest(e http.Handler, method, target, user string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListArticlesRejectsUnknownCategory(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	rec := doRequest(srv.Router(), http.MethodGet, "/v1/articles?category=weather", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListArticlesMarksBookmarks(t *testing.T) {
	articles := []model.Article{
		{ID: "a1", Title: "One", Category: model.CategoryBusiness},
		{ID: "a2", Title: "Two", Category: model.CategoryBusiness},
	}
	srv, _, bookmarks := newTestServer(articles)
	require.NoError(t, bookmarks.Add(context.Background(), "u1", "a2"))

	rec := doRequest(srv.Router(), http.MethodGet, "/v1/articles", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.False(t, got[0].IsBookmarked)
	assert.True(t, got[1].IsBookmarked)
}

func TestSearchStoredRequiresQuery(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	rec := doRequest(srv.Router(), http.MethodGet, "/v1/articles/search", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExternalSearchTriggersWebhookAndRecords(t *testing.T) {
	srv, hook, _ := newTestServer(nil)
	e := srv.Router()

	rec := doRequest(e, http.MethodPost, "/v1/search", "", `{"query":"rate cuts","sources":["bbc.com"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "n", got[0].Title)
	assert.Equal(t, []string{"rate cuts"}, hook.queries)

	recList := doRequest(e, http.MethodGet, "/v1/searches/recent", "", "")
	require.Equal(t, http.StatusOK, recList.Code)
	var searches []model.RecentSearch
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &searches))
	require.Len(t, searches, 1)
	assert.Equal(t, "rate cuts", searches[0].Query)
}

func TestExternalSearchRequiresQuery(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	rec := doRequest(srv.Router(), http.MethodPost, "/v1/search", "", `{"query":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookmarksRequireSession(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	e := srv.Router()

	assert.Equal(t, http.StatusUnauthorized, doRequest(e, http.MethodGet, "/v1/bookmarks", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized,
		doRequest(e, http.MethodPost, "/v1/bookmarks", "", `{"articleId":"a1"}`).Code)
	assert.Equal(t, http.StatusUnauthorized,
		doRequest(e, http.MethodDelete, "/v1/bookmarks/a1", "", "").Code)
}

func TestBookmarkAddAndRemove(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	e := srv.Router()

	assert.Equal(t, http.StatusNoContent,
		doRequest(e, http.MethodPost, "/v1/bookmarks", "u1", `{"articleId":"a1"}`).Code)
	// Bookmarking twice is a no-op, not an error.
	assert.Equal(t, http.StatusNoContent,
		doRequest(e, http.MethodPost, "/v1/bookmarks", "u1", `{"articleId":"a1"}`).Code)

	rec := doRequest(e, http.MethodGet, "/v1/bookmarks", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"a1"}, got["articleIds"])

	assert.Equal(t, http.StatusNoContent,
		doRequest(e, http.MethodDelete, "/v1/bookmarks/a1", "u1", "").Code)

	rec = doRequest(e, http.MethodGet, "/v1/bookmarks", "u1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got["articleIds"])
}

func TestClearRecentSearches(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	e := srv.Router()

	doRequest(e, http.MethodPost, "/v1/search", "", `{"query":"markets"}`)
	assert.Equal(t, http.StatusNoContent,
		doRequest(e, http.MethodDelete, "/v1/searches/recent", "", "").Code)

	rec := doRequest(e, http.MethodGet, "/v1/searches/recent", "", "")
	var searches []model.RecentSearch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &searches))
	assert.Empty(t, searches)
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(nil)
	rec := doRequest(srv.Router(), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
