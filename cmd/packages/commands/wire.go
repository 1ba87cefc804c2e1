package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wanderpack/packages-cli/internal/adapters/estimate"
	"github.com/wanderpack/packages-cli/internal/adapters/live"
	"github.com/wanderpack/packages-cli/internal/cache"
	"github.com/wanderpack/packages-cli/internal/config"
	"github.com/wanderpack/packages-cli/internal/core"
	"github.com/wanderpack/packages-cli/internal/destinations"
	"github.com/wanderpack/packages-cli/internal/obs"
)

// cacheHooks carries the optional metric callbacks into the cached
// provider decorators. Nil hooks are fine for CLI runs.
type cacheHooks struct {
	transportHit func()
	hotelHit     func()
}

func metricHooks(m *obs.Metrics) cacheHooks {
	if m == nil {
		return cacheHooks{}
	}
	return cacheHooks{
		transportHit: func() { m.CacheHits.WithLabelValues("transport").Inc() },
		hotelHit:     func() { m.CacheHits.WithLabelValues("hotel").Inc() },
	}
}

func buildRegistry(cfg *config.Config, store cache.Store, hooks cacheHooks) *core.Registry {
	reg := core.NewRegistry(core.ProviderMode(cfg.Mode))
	catalog := destinations.NewCatalog()

	tTTL := cfg.Cache.TransportTTL()
	hTTL := cfg.Cache.HotelTTL()

	reg.RegisterFlight(core.NewCachedTransport(estimate.NewFlights(), store, tTTL, hooks.transportHit))
	reg.RegisterTrain(core.NewCachedTransport(estimate.NewTrains(), store, tTTL, hooks.transportHit))
	reg.RegisterHotel(core.NewCachedHotels(estimate.NewHotels(catalog), store, hTTL, hooks.hotelHit))

	reg.RegisterFlight(core.NewCachedTransport(live.NewAviasalesFlights(cfg.Search.ProviderTimeout()), store, tTTL, hooks.transportHit))
	reg.RegisterHotel(core.NewCachedHotels(live.NewBookingHotels(), store, hTTL, hooks.hotelHit))

	return reg
}

func buildStore(cfg *config.Config) cache.Store {
	if cfg.Cache.RedisAddr != "" {
		return cache.NewRedis(cfg.Cache.RedisAddr)
	}
	return cache.NewMemory()
}

func buildOrchestrator(cfg *config.Config, logger *zap.Logger, hooks cacheHooks) (*core.Orchestrator, error) {
	store := buildStore(cfg)
	reg := buildRegistry(cfg, store, hooks)
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	coreCfg := core.Config{
		Concurrency:       cfg.Search.Concurrency,
		MinResults:        cfg.Search.MinResults,
		DateSamples:       cfg.Search.DateSamples,
		ProviderTimeout:   cfg.Search.ProviderTimeout(),
		RequireHotelImage: cfg.Search.RequireHotelImage,
		RequireRealPrice:  cfg.Search.RequireRealPrice,
	}
	return core.NewOrchestrator(coreCfg, reg, destinations.NewCatalog(), logger), nil
}

// buildLogger keeps CLI stdout clean for JSON output; logs go to stderr,
// and only when --verbose is set.
func buildLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	stderrCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return zap.New(stderrCore)
}

func loadConfig(cmd *cobra.Command) *config.Config {
	modeFlag, _ := cmd.Flags().GetString("mode")
	return config.Load().WithMode(modeFlag)
}
