package ingest

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apetrovs/newshub/internal/model"
)

// DeriveID builds the storage ID for a raw article. Sources with a stable
// natural key get a deterministic ID encoding URL and published timestamp,
// so re-fetching the same item derives the same ID. Trending and headline
// feeds offer no such key; their IDs are source-scoped random or
// time-salted tokens, and dedup for those kinds rests entirely on the URL
// existence check. That is a known limitation, not something this function
// papers over.
func DeriveID(raw model.RawArticle) string {
	switch raw.Kind {
	case model.KindSearch:
		return "search_" + alnum(url.QueryEscape(raw.Link), 10) + "_" + alnum(url.QueryEscape(raw.Title), 8)
	case model.KindTrending:
		return "trending_" + uuid.NewString()
	case model.KindHeadline:
		return "headline_" + alnum(url.QueryEscape(raw.Link), 20) + "_" + alnum(url.QueryEscape(raw.Title), 20) +
			"_" + strconv.FormatInt(time.Now().UnixMilli(), 36)
	case model.KindRSS:
		return "rss_" + urlTimeID(raw)
	default:
		return "newsapi_" + urlTimeID(raw)
	}
}

func urlTimeID(raw model.RawArticle) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(raw.Link))
	return alnum(encoded, 10) + "_" + strconv.FormatInt(raw.PublishedAt.UnixMilli(), 36)
}

// alnum strips non-alphanumeric characters and truncates to n.
func alnum(s string, n int) string {
	var b strings.Builder
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= n {
			break
		}
	}
	return b.String()
}
