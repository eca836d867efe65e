package ingest

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/apetrovs/newshub/internal/model"
)

// ErrNoIdentity marks a raw item missing both title and link. Such items
// carry no navigable identity and are never stored.
var ErrNoIdentity = errors.New("raw article has neither title nor link")

const (
	wordsPerMinute  = 200
	truncateSummary = 200
)

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ContentExtractor fetches the full text behind a link. Optional: a nil
// extractor means articles keep whatever text the provider shipped.
type ContentExtractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

// Normalizer maps a provider-agnostic RawArticle onto the canonical Article,
// applying the fallback chain per field: explicit value, derived value,
// fixed default.
type Normalizer struct {
	summarizer Summarizer
	extractor  ContentExtractor
	now        func() time.Time
}

func NewNormalizer(summarizer Summarizer, extractor ContentExtractor) *Normalizer {
	return &Normalizer{
		summarizer: summarizer,
		extractor:  extractor,
		now:        time.Now,
	}
}

func (n *Normalizer) Normalize(ctx context.Context, raw model.RawArticle) (model.Article, error) {
	if raw.Title == "" && raw.Link == "" {
		return model.Article{}, ErrNoIdentity
	}

	content := raw.Content
	if content == "" && n.extractor != nil && raw.Link != "" {
		extracted, err := n.extractor.Extract(ctx, raw.Link)
		if err != nil {
			log.Printf("[ERROR] failed to extract content from %s: %v", raw.Link, err)
		} else {
			content = extracted
		}
	}
	if content == "" {
		content = raw.Description
	}

	summary := raw.Description
	if summary == "" && content != "" {
		s, err := n.summarizer.Summarize(ctx, content)
		if err != nil {
			log.Printf("[ERROR] failed to summarize %q: %v", raw.Title, err)
		}
		summary = s
		if summary == "" {
			summary = truncate(content, truncateSummary)
		}
	}

	title := raw.Title
	if title == "" {
		title = model.DefaultTitle
	}

	author := strings.Join(raw.Authors, ", ")
	if author == "" {
		author = model.DefaultAuthor
	}

	source := raw.SourceName
	if source == "" {
		source = model.DefaultSource
	}

	publishedAt := raw.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = n.now().UTC()
	}

	imageURL := raw.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	readFrom := content
	if readFrom == "" {
		readFrom = summary
	}

	return model.Article{
		ID:          DeriveID(raw),
		Title:       title,
		Summary:     summary,
		Content:     content,
		Author:      author,
		Source:      source,
		PublishedAt: publishedAt,
		ImageURL:    imageURL,
		ReadTime:    ReadTime(readFrom),
		URL:         raw.Link,
		External:    true,
	}, nil
}

// ReadTime estimates reading minutes at 200 words per minute, minimum 1.
// Never taken from a provider.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
