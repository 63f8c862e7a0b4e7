// Package app wires configuration, sources and the pipeline together for
// the CLI and the HTTP server.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/deusflow/telconews/internal/config"
	"github.com/deusflow/telconews/internal/engagement"
	"github.com/deusflow/telconews/internal/gemini"
	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/news"
	"github.com/deusflow/telconews/internal/pipeline"
	"github.com/deusflow/telconews/internal/ratelimit"
	"github.com/deusflow/telconews/internal/rss"
	"github.com/deusflow/telconews/internal/scraper"
	"github.com/deusflow/telconews/internal/server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg      *config.Config
	quota    *ratelimit.Quota
	pipeline *pipeline.Aggregator
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	quota := ratelimit.NewQuota(map[string]int{gemini.QuotaProvider: cfg.MaxGeminiRequests})

	gc, err := gemini.NewClient(ctx, cfg.Gemini, cfg.GeminiModel, quota)
	if err != nil {
		return nil, err
	}
	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, news requests will fail")
	}
	if cfg.Engagement.APIKey == "" {
		logger.Warn("ENGAGEMENT_API_KEY not set, trending articles disabled")
	}

	outlets, err := rss.LoadOutlets(cfg.OutletsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load outlets: %w", err)
	}

	repairer := scraper.NewRepairer(
		scraper.WithTimeout(cfg.URLCheckTimeout),
		scraper.WithConcurrency(cfg.RepairConcurrency),
	)
	agg := pipeline.New(gc, engagement.NewClient(cfg.Engagement),
		pipeline.WithRepairer(repairer),
		pipeline.WithOutlets(outlets),
		pipeline.WithFeeds(rss.NewFetcher(cfg.FeedTimeout, cfg.FeedConcurrency)),
	)

	logger.Info("app initialized", "outlets", len(outlets), "model", cfg.GeminiModel)
	return &App{cfg: cfg, quota: quota, pipeline: agg}, nil
}

// Fetch runs one aggregation pass over [start, end] (YYYY-MM-DD).
func (a *App) Fetch(ctx context.Context, start, end string) (*news.AggregateResult, error) {
	r, err := news.ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return a.pipeline.Run(ctx, r)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *App) Serve(ctx context.Context) error {
	srv := server.New(a.pipeline,
		server.WithRateLimit(a.cfg.APIRateLimit),
		server.WithQuota(a.quota),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(a.cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
