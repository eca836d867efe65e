package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/apetrovs/newshub/internal/api"
	"github.com/apetrovs/newshub/internal/cleanup"
	"github.com/apetrovs/newshub/internal/config"
	"github.com/apetrovs/newshub/internal/fetcher"
	"github.com/apetrovs/newshub/internal/ingest"
	"github.com/apetrovs/newshub/internal/provider"
	"github.com/apetrovs/newshub/internal/recent"
	"github.com/apetrovs/newshub/internal/reporter"
	"github.com/apetrovs/newshub/internal/storage"
	"github.com/apetrovs/newshub/internal/summary"
	"github.com/apetrovs/newshub/internal/webhook"
)

func main() {
	cfg := config.Get()

	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
	if err != nil {
		log.Printf("[ERROR] failed to connect to db: %v", err)
		return
	}
	defer db.Close()

	var (
		articleStorage  = storage.NewArticleStorage(db)
		bookmarkStorage = storage.NewBookmarkStorage(db)
	)

	var summarizer ingest.Summarizer
	switch cfg.SummaryType {
	case "openai":
		if cfg.AIKey == "" {
			log.Printf("[ERROR] ai_key is required when summary_type is \"openai\"")
			return
		}
		summarizer = summary.NewOpenAISummarizer(cfg.AIBaseURL, cfg.AIKey, cfg.AIPrompt, cfg.AIModel, cfg.AITimeout)
		log.Printf("[INFO] using OpenAI-compatible summarizer (model: %s)", cfg.AIModel)
	case "ollama":
		if cfg.AIBaseURL == "" {
			log.Printf("[ERROR] ai_base_url is required when summary_type is \"ollama\"")
			return
		}
		summarizer = summary.NewOllamaSummarizer(cfg.AIBaseURL, cfg.AIPrompt, cfg.AIModel, cfg.AITimeout)
		log.Printf("[INFO] using Ollama summarizer (model: %s)", cfg.AIModel)
	default:
		summarizer = summary.NewExtractiveSummarizer(cfg.SummarySentences)
		log.Printf("[INFO] using extractive summarizer (%d sentences)", cfg.SummarySentences)
	}

	var extractor ingest.ContentExtractor
	if cfg.ExtractContent {
		extractor = ingest.NewReadabilityExtractor(30 * time.Second)
	}

	ingestor := ingest.New(articleStorage, ingest.NewNormalizer(summarizer, extractor))

	var (
		newsAPI   = provider.NewNewsAPI(cfg.NewsAPIKey, cfg.NewsAPIDomains)
		rapidNews = provider.NewRapidNews(cfg.RapidAPIKey)
		realTime  = provider.NewRealTimeNews(cfg.RapidAPIKey, cfg.HeadlineLimit)
	)

	var feeds []fetcher.Feed
	for _, feedURL := range cfg.RSSFeeds {
		parsed, err := url.Parse(feedURL)
		if err != nil {
			log.Printf("[ERROR] invalid rss feed url %q: %v", feedURL, err)
			continue
		}
		feeds = append(feeds, provider.NewRSSFeed(parsed.Host, feedURL, false))
	}

	var recents recent.Store
	if cfg.RedisAddr != "" {
		redisStore, err := recent.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("[ERROR] failed to connect to redis: %v", err)
			return
		}
		defer redisStore.Close()
		recents = redisStore
	} else {
		log.Printf("[INFO] redis not configured, keeping recent searches in memory")
		recents = recent.NewMemoryStore()
	}

	var rep *reporter.Reporter
	if cfg.TelegramBotToken != "" {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("[ERROR] failed to create telegram reporter: %v", err)
			return
		}
		rep = reporter.New(botAPI, cfg.TelegramAdminChatID)
	}

	hook := webhook.New(cfg.WebhookURL, cfg.WebhookTimeout)

	refresher := fetcher.New(
		ingestor,
		realTime,
		rapidNews,
		feeds,
		cfg.RefreshTopics,
		cfg.RefreshInterval,
		rep,
	)

	cleaner := cleanup.New(
		articleStorage,
		time.Duration(cfg.RetentionDays)*24*time.Hour,
		cfg.CleanupInterval,
	)

	server := api.NewServer(
		articleStorage,
		bookmarkStorage,
		recents,
		ingestor,
		newsAPI,
		rapidNews,
		rapidNews,
		realTime,
		hook,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func(ctx context.Context) {
		if err := refresher.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] failed to run fetcher: %v", err)
				return
			}

			log.Printf("[INFO] fetcher stopped")
		}
	}(ctx)

	go func(ctx context.Context) {
		if err := cleaner.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] failed to run cleanup: %v", err)
				return
			}

			log.Printf("[INFO] cleanup stopped")
		}
	}(ctx)

	e := server.Router()
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] failed to shut down http server: %v", err)
		}
	}()

	log.Printf("[INFO] listening on %s", cfg.ListenAddr)
	if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[ERROR] failed to run http server: %v", err)
	}
}
