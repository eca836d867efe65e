// Package fetcher runs the periodic "latest news" refresh: top headlines,
// trending topics and configured RSS feeds are pulled and pushed through
// the ingestion pipeline on an interval.
package fetcher

import (
	"context"
	"log"
	"time"

	"github.com/apetrovs/newshub/internal/model"
	"github.com/apetrovs/newshub/internal/reporter"
)

type Ingestor interface {
	Ingest(ctx context.Context, raws []model.RawArticle) []model.Article
}

type Headliner interface {
	TopHeadlines(ctx context.Context) ([]model.RawArticle, error)
}

type Trender interface {
	Trending(ctx context.Context, topics []string) ([]model.RawArticle, error)
}

type Feed interface {
	Fetch(ctx context.Context) ([]model.RawArticle, error)
}

type Fetcher struct {
	ingestor  Ingestor
	headlines Headliner
	trending  Trender
	feeds     []Feed
	topics    []string

	fetchInterval time.Duration
	reporter      *reporter.Reporter
}

func New(
	ingestor Ingestor,
	headlines Headliner,
	trending Trender,
	feeds []Feed,
	topics []string,
	fetchInterval time.Duration,
	rep *reporter.Reporter,
) *Fetcher {
	return &Fetcher{
		ingestor:      ingestor,
		headlines:     headlines,
		trending:      trending,
		feeds:         feeds,
		topics:        topics,
		fetchInterval: fetchInterval,
		reporter:      rep,
	}
}

func (f *Fetcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.fetchInterval)
	defer ticker.Stop()

	if err := f.Refresh(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := f.Refresh(ctx); err != nil {
				return err
			}
		}
	}
}

// Refresh runs one full refresh pass. Sources are pulled sequentially, not
// concurrently: the upstreams are rate-limited and a failed source just
// contributes zero articles. Only context cancellation aborts the pass.
func (f *Fetcher) Refresh(ctx context.Context) error {
	f.ingestFrom(ctx, "headlines", func() ([]model.RawArticle, error) {
		return f.headlines.TopHeadlines(ctx)
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	f.ingestFrom(ctx, "trending", func() ([]model.RawArticle, error) {
		return f.trending.Trending(ctx, f.topics)
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, feed := range f.feeds {
		f.ingestFrom(ctx, "rss", func() ([]model.RawArticle, error) {
			return feed.Fetch(ctx)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

func (f *Fetcher) ingestFrom(ctx context.Context, name string, fetch func() ([]model.RawArticle, error)) {
	raws, err := fetch()
	if err != nil {
		log.Printf("[ERROR] failed to fetch %s: %v", name, err)
		f.reporter.NotifyError(name+" refresh", err)
		return
	}
	if len(raws) == 0 {
		return
	}

	stored := f.ingestor.Ingest(ctx, raws)
	log.Printf("[INFO] %s refresh stored %d articles", name, len(stored))
}
