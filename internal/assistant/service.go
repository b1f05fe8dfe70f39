// Package assistant composes the draft engine with its data sources: the
// Sleeper client, the player directory, the rankings repository and the
// custom rankings store.
package assistant

import (
	"fmt"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/availability"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/config"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/league"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/rankings"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/storage"
	"github.com/sirupsen/logrus"
)

// Defaults fill in request values the caller leaves out.
type Defaults struct {
	Format     model.FormatKey
	Limit      int
	LeagueSize int
	// Rounds sizes the board when a draft cannot be fetched.
	Rounds int
}

// Deps are the collaborators a Service reads from. Custom may be nil; a nil
// Leagues means no per-league overrides.
type Deps struct {
	Client   sleeper.Client
	Players  *identity.Store
	Rankings *rankings.Repository
	Custom   *storage.CustomRankingStore
	Leagues  *config.LeagueConfig
}

// Service answers draft questions. It holds no per-request state.
type Service struct {
	client     sleeper.Client
	players    *identity.Store
	rankings   *rankings.Repository
	custom     *storage.CustomRankingStore
	leagues    *config.LeagueConfig
	classifier *league.Classifier
	resolver   *availability.Resolver
	defaults   Defaults
	logger     *logrus.Logger
}

// New creates a Service.
func New(deps Deps, defaults Defaults, logger *logrus.Logger) *Service {
	if deps.Leagues == nil {
		deps.Leagues = config.DefaultLeagueConfig()
	}
	if defaults.Format.IsZero() {
		defaults.Format = league.Fallback().Key()
	}
	if defaults.LeagueSize < 1 {
		defaults.LeagueSize = 12
	}
	if defaults.Rounds < 1 {
		defaults.Rounds = 15
	}
	classifier := league.NewClassifier(logger)
	return &Service{
		client:     deps.Client,
		players:    deps.Players,
		rankings:   deps.Rankings,
		custom:     deps.Custom,
		leagues:    deps.Leagues,
		classifier: classifier,
		resolver:   availability.NewResolver(deps.Client, classifier, logger),
		defaults:   defaults,
		logger:     logger,
	}
}

// PlayerLoader adapts the cached Sleeper player dump to the identity store.
func PlayerLoader(cache *sleeper.PlayerCache, logger *logrus.Logger) identity.Loader {
	return func() ([]model.Player, error) {
		raw, cacheHit, err := cache.Players()
		if err != nil {
			return nil, fmt.Errorf("failed to load players: %w", err)
		}
		players, rejected := sleeper.ToPlayers(raw)
		logger.WithFields(logrus.Fields{
			"players":   len(players),
			"rejected":  rejected,
			"cache_hit": cacheHit,
		}).Debug("Converted Sleeper players")
		return players, nil
	}
}

// Degradation collects notes from steps that fell back to partial data.
type Degradation struct {
	Degraded bool     `json:"degraded"`
	Notes    []string `json:"notes"`
}

func (d *Degradation) note(msg string) {
	d.Degraded = true
	d.Notes = append(d.Notes, msg)
}

func (d *Degradation) merge(degraded bool, notes []string) {
	d.Degraded = d.Degraded || degraded
	d.Notes = append(d.Notes, notes...)
}

// matcher returns the current identity matcher, or nil when the player
// directory cannot be loaded at all.
func (s *Service) matcher(d *Degradation) *identity.Matcher {
	if s.players == nil {
		d.note("player directory not configured; exclusion by name only")
		return nil
	}
	snap, err := s.players.Snapshot()
	if err != nil {
		s.logger.WithError(err).Warn("Player directory unavailable")
		d.note("player directory unavailable; exclusion by name only")
		return nil
	}
	return snap.Matcher
}

// parseFormat reads a "scoring_lineup" override. Empty means none.
func parseFormat(raw string) (model.FormatKey, bool, error) {
	if raw == "" {
		return model.FormatKey{}, false, nil
	}
	key, err := rankings.ParseFormatKey(raw)
	if err != nil {
		return model.FormatKey{}, false, err
	}
	return key, true, nil
}
