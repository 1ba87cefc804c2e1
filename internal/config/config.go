package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeEstimate Mode = "estimate"
	ModeLive     Mode = "live"
	ModeHybrid   Mode = "hybrid"
)

// SearchConfig carries the orchestration knobs. Defaults match what the
// upstream rate limits tolerate; deployments with partner agreements can
// raise them.
type SearchConfig struct {
	Concurrency            int  `yaml:"concurrency"`
	MinResults             int  `yaml:"minResults"`
	DateSamples            int  `yaml:"dateSamples"`
	ProviderTimeoutSeconds int  `yaml:"providerTimeoutSeconds"`
	RequireHotelImage      bool `yaml:"requireHotelImage"`
	RequireRealPrice       bool `yaml:"requireRealPrice"`
}

func (s SearchConfig) ProviderTimeout() time.Duration {
	return time.Duration(s.ProviderTimeoutSeconds) * time.Second
}

// CacheConfig sets the memoization TTLs. Transport pricing is volatile and
// gets the short TTL; hotel inventory moves slower. An empty RedisAddr
// keeps the cache in-process.
type CacheConfig struct {
	TransportTTLMinutes int    `yaml:"transportTTLMinutes"`
	HotelTTLMinutes     int    `yaml:"hotelTTLMinutes"`
	RedisAddr           string `yaml:"redisAddr"`
}

func (c CacheConfig) TransportTTL() time.Duration {
	return time.Duration(c.TransportTTLMinutes) * time.Minute
}

func (c CacheConfig) HotelTTL() time.Duration {
	return time.Duration(c.HotelTTLMinutes) * time.Minute
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Mode   Mode         `yaml:"mode"`
	Search SearchConfig `yaml:"search"`
	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode: ModeEstimate,
		Search: SearchConfig{
			Concurrency:            5,
			MinResults:             6,
			DateSamples:            5,
			ProviderTimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			TransportTTLMinutes: 15,
			HotelTTLMinutes:     30,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the config file if present and applies env overrides on top
// of the defaults.
func Load() *Config {
	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	if envMode := os.Getenv("PACKAGES_MODE"); envMode != "" {
		cfg.applyMode(envMode)
	}
	if v, ok := envInt("PACKAGES_CONCURRENCY"); ok {
		cfg.Search.Concurrency = v
	}
	if v, ok := envInt("PACKAGES_MIN_RESULTS"); ok {
		cfg.Search.MinResults = v
	}
	if v, ok := envInt("PACKAGES_DATE_SAMPLES"); ok {
		cfg.Search.DateSamples = v
	}
	if addr := os.Getenv("PACKAGES_REDIS_ADDR"); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
	if addr := os.Getenv("PACKAGES_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}

	return cfg
}

// WithMode overrides the provider mode from a flag, when non-empty.
func (c *Config) WithMode(mode string) *Config {
	if mode != "" {
		c.applyMode(mode)
	}
	return c
}

func (c *Config) applyMode(mode string) {
	switch strings.ToLower(mode) {
	case "estimate":
		c.Mode = ModeEstimate
	case "live":
		c.Mode = ModeLive
	case "hybrid":
		c.Mode = ModeHybrid
	}
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

func configPath() string {
	if p := os.Getenv("PACKAGES_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "wanderpack", "packages.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
