// Package pipeline runs one aggregation pass: both sources are fetched
// concurrently, the secondary list is filtered and ranked, primary links are
// repaired and the secondary leftovers are merged into general news.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/deusflow/telconews/internal/engagement"
	"github.com/deusflow/telconews/internal/gemini"
	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/metrics"
	"github.com/deusflow/telconews/internal/news"
	"github.com/deusflow/telconews/internal/rss"
	"github.com/deusflow/telconews/internal/scraper"
)

// Source names used in logs and metrics.
const (
	SourcePrimary   = "gemini"
	SourceSecondary = "engagement"
	SourceFeeds     = "rss"
)

// ErrEmptyPrimary is returned when the primary source reports success
// without a result.
var ErrEmptyPrimary = errors.New("primary source returned no result")

type PrimarySource interface {
	Fetch(ctx context.Context, r news.DateRange) (*gemini.Result, error)
}

type SecondarySource interface {
	Search(ctx context.Context, q engagement.Query) ([]news.Article, error)
}

// LinkRepairer returns one article per input article, in input order.
type LinkRepairer interface {
	Repair(ctx context.Context, articles []news.Article, cands scraper.Candidates) []news.Article
}

// FeedSource supplies extra link candidates from outlet feeds.
type FeedSource interface {
	FetchCandidates(ctx context.Context, outlets []rss.Outlet) []news.Article
}

type Option func(*Aggregator)

// WithRepairer enables the link repair pass over primary articles.
func WithRepairer(r LinkRepairer) Option {
	return func(a *Aggregator) {
		a.repairer = r
	}
}

// WithOutlets sets the outlet registry. Its domains decide which secondary
// articles count as important, and its feeds are read by WithFeeds.
func WithOutlets(outlets []rss.Outlet) Option {
	return func(a *Aggregator) {
		a.outlets = outlets
		a.domains = rss.Domains(outlets)
	}
}

// WithFeeds adds outlet feed items to the repair candidate pool.
func WithFeeds(f FeedSource) Option {
	return func(a *Aggregator) {
		a.feeds = f
	}
}

func withClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// Aggregator is stateless between runs; Run may be called concurrently.
type Aggregator struct {
	primary   PrimarySource
	secondary SecondarySource
	repairer  LinkRepairer
	feeds     FeedSource
	outlets   []rss.Outlet
	domains   []string
	now       func() time.Time
	log       *slog.Logger
}

func New(primary PrimarySource, secondary SecondarySource, opts ...Option) *Aggregator {
	a := &Aggregator{
		primary:   primary,
		secondary: secondary,
		now:       time.Now,
		log:       logger.With("pipeline"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run aggregates news published within r. Only a primary source failure is
// returned; everything else degrades to fewer articles.
func (a *Aggregator) Run(ctx context.Context, r news.DateRange) (*news.AggregateResult, error) {
	start := a.now()
	runID := uuid.NewString()
	log := a.log.With("run_id", runID)
	log.Info("aggregation started", "start", r.StartString(), "end", r.EndString())

	var (
		primary   *gemini.Result
		secondary []news.Article
		feedItems []news.Article
	)

	// Plain Group: a failure on one side never cancels the other.
	g := new(errgroup.Group)
	g.Go(func() error {
		t := time.Now()
		res, err := a.primary.Fetch(ctx, r)
		if err == nil && res == nil {
			err = ErrEmptyPrimary
		}
		metrics.RecordFetch(SourcePrimary, err, time.Since(t))
		if err != nil {
			return fmt.Errorf("primary source: %w", err)
		}
		primary = res
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		arts, err := a.secondary.Search(ctx, engagement.DefaultQuery(r.Start, r.EndOfRange()))
		metrics.RecordFetch(SourceSecondary, err, time.Since(t))
		if err != nil {
			log.Warn("secondary source failed, continuing without it", "error", err)
			return nil
		}
		secondary = arts
		return nil
	})
	if a.repairer != nil && a.feeds != nil && len(a.outlets) > 0 {
		g.Go(func() error {
			t := time.Now()
			feedItems = a.feeds.FetchCandidates(ctx, a.outlets)
			metrics.RecordFetch(SourceFeeds, nil, time.Since(t))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("aggregation failed", "error", err)
		metrics.Global.SetError(err.Error())
		return nil, err
	}

	trending := FilterSecondary(secondary, a.domains)

	result := &news.AggregateResult{
		RunID:             runID,
		StartDate:         r.StartString(),
		EndDate:           r.EndString(),
		GeneratedAt:       start.UTC().Format(time.RFC3339),
		InternationalNews: nonNil(primary.International),
		GeneralNews:       nonNil(primary.General),
		CompanyNews:       companySections(primary.Companies),
	}

	if a.repairer != nil {
		cands := scraper.Candidates{
			Citations: citations(primary.Citations),
			Articles:  append(news.DedupeByURL(secondary), feedItems...),
		}
		a.repairLinks(ctx, result, cands)
	}

	merged := news.MergeUnique(result.AllArticles(), trending)
	metrics.RecordFiltered("cross_source_duplicate", len(trending)-len(merged))
	result.GeneralNews = append(result.GeneralNews, merged...)
	result.TrendingArticles = trending

	elapsed := a.now().Sub(start)
	metrics.Global.SetLastRun(elapsed)
	log.Info("aggregation finished",
		"international", len(result.InternationalNews),
		"general", len(result.GeneralNews),
		"trending", len(result.TrendingArticles),
		"merged", len(merged),
		"duration", elapsed)
	return result, nil
}

// repairLinks runs one repair pass over every primary bucket and writes the
// results back in place.
func (a *Aggregator) repairLinks(ctx context.Context, res *news.AggregateResult, cands scraper.Candidates) {
	all := res.AllArticles()
	if len(all) == 0 {
		return
	}
	fixed := a.repairer.Repair(ctx, all, cands)
	if len(fixed) != len(all) {
		a.log.Error("repairer changed article count, keeping original links", "in", len(all), "out", len(fixed))
		return
	}

	i := 0
	take := func(n int) []news.Article {
		out := fixed[i : i+n : i+n]
		i += n
		return out
	}
	res.InternationalNews = take(len(res.InternationalNews))
	res.GeneralNews = take(len(res.GeneralNews))
	for s := range res.CompanyNews {
		res.CompanyNews[s].Articles = take(len(res.CompanyNews[s].Articles))
	}
}

func citations(cs []gemini.Citation) []scraper.Citation {
	out := make([]scraper.Citation, 0, len(cs))
	for _, c := range cs {
		out = append(out, scraper.Citation{URI: c.URI, Title: c.Title})
	}
	return out
}

// companySections returns the four tracked sections in fixed order, filling
// any the source left out.
func companySections(in []news.CompanySection) []news.CompanySection {
	out := news.EmptyCompanySections()
	for i := range out {
		for _, s := range in {
			if s.CompanyName == out[i].CompanyName {
				out[i].Articles = append(out[i].Articles, s.Articles...)
			}
		}
	}
	return out
}

func nonNil(a []news.Article) []news.Article {
	if a == nil {
		return []news.Article{}
	}
	return a
}
