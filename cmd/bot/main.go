package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"marketmind/internal/config"
	"marketmind/internal/digest"
	"marketmind/internal/pipeline"
	"marketmind/internal/scheduler"
	"marketmind/pkg/feeds"
	"marketmind/pkg/llm"
)

var daemon = flag.Bool("daemon", false, "keep running and trigger the batch on BATCH_CRON")

func main() {
	flag.Parse()

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("error opening digest store: %v", err)
	}

	generator := newGenerator(cfg)
	if generator == nil {
		slog.Error("no generation service API key configured")
		return
	}

	runner := pipeline.NewRunner(
		feeds.NewReader(),
		feeds.NewExtractor(cfg.ArticleTextCap),
		generator,
		cfg.Topics,
		cfg.ArticleCap,
	)

	runBatch := func() {
		ctx := context.Background()

		d, results := runner.Run(ctx)

		var succeeded, failed int
		for _, res := range results {
			if res.Err != nil {
				failed++
				continue
			}
			succeeded++
		}

		// Whatever topics succeeded still get written; the run is never
		// all-or-nothing.
		if err := store.Save(ctx, d); err != nil {
			slog.Error("error saving digest", "error", err)
			return
		}

		slog.Info("batch complete", "topics", succeeded, "failed", failed, "generated_at", d.GeneratedAt)
	}

	if !*daemon {
		runBatch()
		return
	}

	sched, err := scheduler.New(cfg.BatchCron, runBatch)
	if err != nil {
		log.Fatalf("error creating scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	slog.Info("batch scheduler started", "cron", cfg.BatchCron, "next_run", sched.NextRun())

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	slog.Info("shutting down")
}

func newStore(cfg *config.Config) (digest.Store, error) {
	if cfg.RedisURL != "" {
		return digest.NewRedisStore(cfg.RedisURL, cfg.RedisKey)
	}
	return digest.NewFileStore(cfg.DigestPath), nil
}

func newGenerator(cfg *config.Config) llm.Generator {
	if cfg.GroqAPIKey != "" {
		return llm.NewOpenAIClient(cfg.GroqAPIKey, cfg.LLMBaseURL, cfg.DigestModel)
	}
	if cfg.AnthropicAPIKey != "" {
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.DigestModel)
	}
	return nil
}
