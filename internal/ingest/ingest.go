// Package ingest turns raw provider articles into stored canonical
// articles: existence check, normalization, categorization, insert. One
// generic pipeline replaces per-provider copies; the providers only differ
// in how they decode their responses.
package ingest

import (
	"context"
	"log"
	"time"

	"github.com/apetrovs/newshub/internal/category"
	"github.com/apetrovs/newshub/internal/model"
)

type ArticleStore interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Store(ctx context.Context, article model.Article) error
}

type Ingestor struct {
	store      ArticleStore
	normalizer *Normalizer
	now        func() time.Time
}

func New(store ArticleStore, normalizer *Normalizer) *Ingestor {
	return &Ingestor{
		store:      store,
		normalizer: normalizer,
		now:        time.Now,
	}
}

// Ingest processes raw articles sequentially: duplicate → skip, normalize →
// categorize → store. A single item's failure is logged and never aborts
// the batch; the whole call is best-effort, at-least-once, with no batch
// transaction and no per-item retry. Returns the stored subset in input
// order.
func (i *Ingestor) Ingest(ctx context.Context, raws []model.RawArticle) []model.Article {
	var stored []model.Article
	var skipped, failed int
	now := i.now().UTC()

	for _, raw := range raws {
		if ctx.Err() != nil {
			break
		}

		exists, err := i.exists(ctx, raw)
		if err != nil {
			log.Printf("[ERROR] failed to check existing article %q: %v", raw.Title, err)
			failed++
			continue
		}
		if exists {
			// Duplicate is a normal outcome, not an error.
			skipped++
			continue
		}

		article, err := i.normalizer.Normalize(ctx, raw)
		if err != nil {
			log.Printf("[ERROR] failed to normalize article %q: %v", raw.Title, err)
			failed++
			continue
		}

		article.Category = category.Categorize(article.Title, article.Summary, raw.CategoryHints)

		switch raw.Kind {
		case model.KindSearch:
			article.SearchedAt = &now
		case model.KindTrending, model.KindHeadline:
			article.FetchedAt = &now
		}

		if err := i.store.Store(ctx, article); err != nil {
			log.Printf("[ERROR] failed to store article %q: %v", article.Title, err)
			failed++
			continue
		}

		stored = append(stored, article)
	}

	log.Printf("[INFO] ingested %d of %d articles (%d duplicates, %d failed)",
		len(stored), len(raws), skipped, failed)
	return stored
}

// exists prefers the URL as the natural dedup key; items without one fall
// back to the derived ID, which only helps for kinds with deterministic IDs.
func (i *Ingestor) exists(ctx context.Context, raw model.RawArticle) (bool, error) {
	if raw.Link != "" {
		return i.store.ExistsByURL(ctx, raw.Link)
	}
	return i.store.ExistsByID(ctx, DeriveID(raw))
}
