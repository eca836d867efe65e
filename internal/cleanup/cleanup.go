// Package cleanup purges stale external articles on an interval. It is the
// only path that deletes article rows.
package cleanup

import (
	"context"
	"log"
	"time"
)

type ArticlePurger interface {
	DeleteExternalOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Cleaner struct {
	articles  ArticlePurger
	retention time.Duration
	interval  time.Duration
}

func New(articles ArticlePurger, retention, interval time.Duration) *Cleaner {
	return &Cleaner{
		articles:  articles,
		retention: retention,
		interval:  interval,
	}
}

func (c *Cleaner) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	if err := c.Run(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.Run(ctx); err != nil {
				return err
			}
		}
	}
}

func (c *Cleaner) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-c.retention)
	deleted, err := c.articles.DeleteExternalOlderThan(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// A failed purge is retried on the next tick, never fatal.
		log.Printf("[ERROR] failed to purge stale articles: %v", err)
		return nil
	}
	if deleted > 0 {
		log.Printf("[INFO] purged %d external articles older than %s", deleted, cutoff.Format(time.RFC3339))
	}
	return nil
}
