// Package config loads the application settings and per-league overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// DefaultConfigPaths are tried in order when no path is given.
var DefaultConfigPaths = []string{
	"configs/draft_assistant.toml",
	"../configs/draft_assistant.toml",
	"../../configs/draft_assistant.toml",
}

// Config represents the application configuration.
type Config struct {
	Sleeper  SleeperConfig  `toml:"sleeper"`
	Rankings RankingsConfig `toml:"rankings"`
	Cache    CacheConfig    `toml:"cache"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	Draft    DraftConfig    `toml:"draft"`
}

// SleeperConfig contains upstream API settings.
type SleeperConfig struct {
	BaseURL           string  `toml:"base_url"`
	Timeout           string  `toml:"timeout"`             // e.g. "10s"
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 disables limiting
	Burst             int     `toml:"burst"`
}

// RankingsConfig locates the ranking sheets.
type RankingsConfig struct {
	Dir            string `toml:"dir"`
	Watch          bool   `toml:"watch"` // reload on file changes
	DefaultScoring string `toml:"default_scoring"`
	DefaultLineup  string `toml:"default_lineup"`
}

// CacheConfig controls the on-disk player directory cache.
type CacheConfig struct {
	Dir       string `toml:"dir"` // empty keeps the directory in memory only
	PlayerTTL string `toml:"player_ttl"`
}

// StorageConfig locates the custom rankings database.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LogConfig sets logger level and output format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "text"
}

// DraftConfig holds request defaults.
type DraftConfig struct {
	DefaultLimit      int `toml:"default_limit"`
	DefaultLeagueSize int `toml:"default_league_size"`
	// DefaultRounds sizes the board when a draft's own settings are unavailable.
	DefaultRounds int `toml:"default_rounds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sleeper: SleeperConfig{
			BaseURL:           "https://api.sleeper.app/v1",
			Timeout:           "10s",
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Rankings: RankingsConfig{
			Dir:            "data",
			Watch:          false,
			DefaultScoring: string(model.HalfPPR),
			DefaultLineup:  string(model.LineupSuperflex),
		},
		Cache: CacheConfig{
			Dir:       "data/cache",
			PlayerTTL: "24h",
		},
		Storage: StorageConfig{
			Path: "data/draft_assistant.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Draft: DraftConfig{
			DefaultLimit:      50,
			DefaultLeagueSize: 12,
			DefaultRounds:     15,
		},
	}
}

// Load reads the TOML file at path over the defaults. With an empty path
// the default locations are tried and the defaults returned when none
// exists.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		for _, candidate := range DefaultConfigPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := time.ParseDuration(c.Sleeper.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid sleeper timeout %q: %w", c.Sleeper.Timeout, err))
	}
	if c.Sleeper.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("requests per second cannot be negative: %g", c.Sleeper.RequestsPerSecond))
	}
	if _, err := time.ParseDuration(c.Cache.PlayerTTL); err != nil {
		errs = append(errs, fmt.Errorf("invalid player cache TTL %q: %w", c.Cache.PlayerTTL, err))
	}
	if _, ok := model.ParseScoringFormat(c.Rankings.DefaultScoring); !ok {
		errs = append(errs, fmt.Errorf("unknown default scoring %q", c.Rankings.DefaultScoring))
	}
	if _, ok := model.ParseLineupFormat(c.Rankings.DefaultLineup); !ok {
		errs = append(errs, fmt.Errorf("unknown default lineup %q", c.Rankings.DefaultLineup))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.Draft.DefaultLimit < 0 {
		errs = append(errs, fmt.Errorf("default limit cannot be negative: %d", c.Draft.DefaultLimit))
	}
	if c.Draft.DefaultLeagueSize < 1 {
		errs = append(errs, fmt.Errorf("default league size must be at least 1: %d", c.Draft.DefaultLeagueSize))
	}
	if c.Draft.DefaultRounds < 1 {
		errs = append(errs, fmt.Errorf("default rounds must be at least 1: %d", c.Draft.DefaultRounds))
	}
	return errors.Join(errs...)
}

// SleeperTimeout returns the HTTP timeout as a duration.
func (c *Config) SleeperTimeout() time.Duration {
	d, err := time.ParseDuration(c.Sleeper.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// PlayerTTL returns the player cache TTL as a duration.
func (c *Config) PlayerTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.PlayerTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// DefaultFormat returns the ranking format used when a league gives none.
func (c *Config) DefaultFormat() model.FormatKey {
	scoring, ok := model.ParseScoringFormat(c.Rankings.DefaultScoring)
	if !ok {
		scoring = model.HalfPPR
	}
	lineup, ok := model.ParseLineupFormat(c.Rankings.DefaultLineup)
	if !ok {
		lineup = model.LineupSuperflex
	}
	return model.FormatKey{Scoring: scoring, Lineup: lineup}
}
