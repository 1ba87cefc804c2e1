package core

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Config carries the orchestration knobs. The right values depend on
// upstream provider rate limits, which vary by deployment, so none of
// these are hard-coded.
type Config struct {
	// Concurrency bounds how many destination lookups run at once.
	Concurrency int
	// MinResults is the floor below which the over-budget fallback tier
	// tops the output up.
	MinResults int
	// DateSamples caps how many date candidates each destination tries.
	DateSamples int
	// ProviderTimeout bounds each individual provider call.
	ProviderTimeout time.Duration
	// RequireHotelImage drops hotel offers without an image before the
	// cheapest-offer selection.
	RequireHotelImage bool
	// RequireRealPrice drops estimate-sourced hotel offers the same way.
	RequireRealPrice bool
}

func (c Config) withDefaults() Config {
	if c.Concurrency == 0 {
		c.Concurrency = 5
	}
	if c.MinResults == 0 {
		c.MinResults = 6
	}
	if c.DateSamples == 0 {
		c.DateSamples = 5
	}
	if c.ProviderTimeout == 0 {
		c.ProviderTimeout = 10 * time.Second
	}
	return c
}

// runStats is the per-run mutable state shared across workers. Counters
// are atomic because assemblers run on real OS threads here.
type runStats struct {
	scanned    atomic.Int64
	transport  atomic.Int64
	overBudget atomic.Int64
	errors     atomic.Int64
}

func (s *runStats) snapshot() SearchStats {
	return SearchStats{
		DestinationsScanned: s.scanned.Load(),
		TransportFound:      s.transport.Load(),
		OverBudgetCount:     s.overBudget.Load(),
		ErrorsCount:         s.errors.Load(),
	}
}

// Orchestrator fans bounded-concurrency package assembly out across the
// destination pool and reconciles the results into a ranked list.
type Orchestrator struct {
	cfg      Config
	registry *Registry
	source   DestinationSource
	logger   *zap.Logger
	now      func() time.Time
}

func NewOrchestrator(cfg Config, registry *Registry, source DestinationSource, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cfg:      cfg.withDefaults(),
		registry: registry,
		source:   source,
		logger:   logger,
		now:      time.Now,
	}
}

// Search runs one stateless package search. Every run is idempotent given
// the same inputs and cache contents. Cancelling ctx abandons the run:
// in-flight provider calls finish on their own and their results are
// discarded (last-request-wins is the caller pairing each new request with
// the previous one's cancellation).
func (o *Orchestrator) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	mood := req.Mood
	if req.RelaxMood {
		mood = MoodRandom
	}
	dests := o.source.Destinations(mood)
	if req.Destination != "" {
		dests = filterByIATA(dests, req.Destination)
	}

	dates := req.FixedDates
	if len(dates) == 0 {
		dates = GenerateDateCandidates(o.now(), req.Nights)
	}

	stats := &runStats{}
	asm := &assembler{
		cfg:      o.cfg,
		registry: o.registry,
		source:   o.source,
		stats:    stats,
		logger:   o.logger,
		now:      o.now,
	}

	o.logger.Info("searching packages",
		zap.Int("destinations", len(dests)),
		zap.Int("dateCandidates", len(dates)),
		zap.Int("nights", req.Nights),
		zap.String("mood", string(mood)),
		zap.String("transport", string(req.TransportType)))

	results := MapWithLimit(ctx, dests, o.cfg.Concurrency, func(ctx context.Context, d Destination) *Package {
		return asm.assemble(ctx, req, d, dates)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found []*Package
	for _, p := range results {
		if p != nil {
			found = append(found, p)
		}
	}

	unbounded := req.MaxBudget == 0 || req.RelaxBudget
	packages, exact := reconcile(found, o.cfg.MinResults, unbounded)

	snap := stats.snapshot()
	o.logger.Info("search complete",
		zap.Int("packages", len(packages)),
		zap.Bool("exactMatch", exact),
		zap.Int64("transportFound", snap.TransportFound),
		zap.Int64("errors", snap.ErrorsCount))

	return &SearchResult{
		Query:      req,
		Packages:   packages,
		ExactMatch: exact,
		Stats:      snap,
		FetchedAt:  o.now().UTC(),
	}, nil
}

func filterByIATA(dests []Destination, iata string) []Destination {
	iata = strings.ToUpper(iata)
	var out []Destination
	for _, d := range dests {
		if d.IATA == iata {
			out = append(out, d)
		}
	}
	return out
}
