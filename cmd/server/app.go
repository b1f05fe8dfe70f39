package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/config"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/rankings"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// app holds everything built from the configuration for one command.
type app struct {
	cfg     *config.Config
	logger  *logrus.Logger
	repo    *rankings.Repository
	db      *storage.DB
	service *assistant.Service
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	// stdout carries the MCP protocol when serving
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func setup(cCtx *cli.Context) (*app, error) {
	cfg, err := config.Load(cCtx.String(configFlag))
	if err != nil {
		return nil, err
	}
	if dir := cCtx.String(rankingsDirFlag); dir != "" {
		cfg.Rankings.Dir = dir
	}
	if cCtx.Bool(verboseFlag) {
		cfg.Log.Level = "debug"
	}
	logger := newLogger(cfg.Log)

	leagues, err := config.LoadLeagueSettings(cCtx.String(leagueSettingsFlag))
	if err != nil {
		logger.WithError(err).Warn("Failed to load league settings, using defaults")
		leagues = config.DefaultLeagueConfig()
	}

	client := sleeper.NewHTTPClientWithOptions(sleeper.Options{
		BaseURL:           cfg.Sleeper.BaseURL,
		Timeout:           cfg.SleeperTimeout(),
		RequestsPerSecond: cfg.Sleeper.RequestsPerSecond,
		Burst:             cfg.Sleeper.Burst,
	}, logger)

	cache := sleeper.NewPlayerCache(client, cfg.Cache.Dir, cfg.PlayerTTL(), logger)
	players := identity.NewStore(assistant.PlayerLoader(cache, logger), cfg.PlayerTTL(), logger)

	a := &app{cfg: cfg, logger: logger}
	loaders := []rankings.Loader{rankings.NewDirLoader(cfg.Rankings.Dir, logger)}

	var custom *storage.CustomRankingStore
	if cfg.Storage.Path != "" {
		db, err := storage.Open(storage.DefaultConfig(cfg.Storage.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		a.db = db
		custom = storage.NewCustomRankingStore(db, logger)
		loaders = append(loaders, custom)
	}

	a.repo = rankings.NewRepository(logger, loaders...)
	if _, err := a.repo.Refresh(cCtx.Context); err != nil {
		logger.WithError(err).Warn("Failed to load rankings, starting with none")
	}

	a.service = assistant.New(assistant.Deps{
		Client:   client,
		Players:  players,
		Rankings: a.repo,
		Custom:   custom,
		Leagues:  leagues,
	}, assistant.Defaults{
		Format:     cfg.DefaultFormat(),
		Limit:      cfg.Draft.DefaultLimit,
		LeagueSize: cfg.Draft.DefaultLeagueSize,
		Rounds:     cfg.Draft.DefaultRounds,
	}, logger)
	return a, nil
}

func (a *app) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close storage")
	}
}

// watchRankings reloads rankings on file changes until ctx is done.
func (a *app) watchRankings(ctx context.Context) {
	if !a.cfg.Rankings.Watch {
		return
	}
	go func() {
		if err := a.repo.Watch(ctx, a.cfg.Rankings.Dir, rankings.DefaultDebounce); err != nil {
			a.logger.WithError(err).Warn("Rankings watcher stopped")
		}
	}()
}

// withApp builds the app for a command and closes it afterwards.
func withApp(run func(cCtx *cli.Context, a *app) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		a, err := setup(cCtx)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cCtx, a)
	}
}

// writeOutput prints v as indented JSON or as YAML. YAML goes through the
// JSON form so both outputs share the same field names.
func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		var doc interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to convert output: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding to YAML failed: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
