// Package league derives a LeagueProfile from Sleeper league settings.
package league

import (
	"fmt"
	"math"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sirupsen/logrus"
)

// DynastyLeagueType is the settings.type value Sleeper uses for dynasty leagues.
const DynastyLeagueType = 2

// Classifier labels leagues by scoring, lineup and keeper status.
type Classifier struct {
	logger *logrus.Logger
}

// NewClassifier creates a new classifier
func NewClassifier(logger *logrus.Logger) *Classifier {
	return &Classifier{logger: logger}
}

// Fallback is the profile used when league settings are unavailable.
func Fallback() model.LeagueProfile {
	return model.LeagueProfile{
		Scoring:           model.HalfPPR,
		Lineup:            model.LineupSuperflex,
		IsDynastyOrKeeper: false,
		Signals:           []string{},
	}
}

// Classify never fails. Rosters are optional; when supplied, any kept
// player on any roster marks the league as keeper regardless of settings.
func (c *Classifier) Classify(league *sleeper.League, rosters []sleeper.Roster) model.LeagueProfile {
	if league == nil {
		profile := Fallback()
		profile.Signals = append(profile.Signals, "anomaly: league settings missing")
		c.logger.Warn("League settings missing, using fallback profile")
		return profile
	}

	log := c.logger.WithField("league_id", league.LeagueID)
	profile := model.LeagueProfile{Signals: []string{}}

	profile.Scoring = c.scoringFormat(league, &profile, log)
	profile.Lineup = lineupFormat(league.RosterPositions, &profile)
	if len(league.RosterPositions) == 0 {
		log.Warn("League has no roster positions, assuming superflex")
	}

	profile.IsDynastyOrKeeper = dynastySignals(league, &profile)

	if kept := keptPlayers(rosters); kept > 0 {
		profile.Signals = append(profile.Signals, fmt.Sprintf("kept_players=%d", kept))
		profile.IsDynastyOrKeeper = true
	}

	log.WithFields(logrus.Fields{
		"scoring": profile.Scoring,
		"lineup":  profile.Lineup,
		"dynasty": profile.IsDynastyOrKeeper,
		"signals": profile.Signals,
	}).Debug("Classified league")

	return profile
}

func (c *Classifier) scoringFormat(league *sleeper.League, profile *model.LeagueProfile, log *logrus.Entry) model.ScoringFormat {
	rec, ok := league.ScoringSettings["rec"]
	if !ok {
		profile.Signals = append(profile.Signals, "anomaly: reception scoring missing")
		log.Warn("League has no reception scoring weight, assuming half PPR")
		return model.HalfPPR
	}

	switch {
	case nearly(rec, 0):
		return model.Standard
	case nearly(rec, 0.5):
		return model.HalfPPR
	case nearly(rec, 1.0):
		return model.PPR
	}

	profile.Signals = append(profile.Signals, fmt.Sprintf("anomaly: unusual reception weight %g", rec))
	log.WithField("rec", rec).Warn("Unusual reception weight, assuming half PPR")
	return model.HalfPPR
}

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func lineupFormat(positions []string, profile *model.LeagueProfile) model.LineupFormat {
	if len(positions) == 0 {
		profile.Signals = append(profile.Signals, "anomaly: roster positions missing")
		return model.LineupSuperflex
	}

	qbSlots := 0
	for _, slot := range positions {
		switch slot {
		case "QB":
			qbSlots++
		case "SUPER_FLEX":
			return model.LineupSuperflex
		}
	}
	if qbSlots > 1 {
		return model.LineupSuperflex
	}
	return model.LineupStandard
}

// dynastySignals evaluates the settings rules in priority order. A previous
// league link only counts alongside another signal, so it can never decide
// the outcome on its own and is recorded for context.
func dynastySignals(league *sleeper.League, profile *model.LeagueProfile) bool {
	s := league.Settings
	var fired string
	switch {
	case s.Type == DynastyLeagueType:
		fired = "league_type=dynasty"
	case s.TaxiSlots > 0:
		fired = fmt.Sprintf("taxi_slots=%d", s.TaxiSlots)
	case s.MaxKeepers > 1:
		fired = fmt.Sprintf("max_keepers=%d", s.MaxKeepers)
	}
	if fired == "" {
		return false
	}

	profile.Signals = append(profile.Signals, fired)
	if league.PreviousLeagueID != "" && league.PreviousLeagueID != "0" {
		profile.Signals = append(profile.Signals, "previous_league_link")
	}
	return true
}

func keptPlayers(rosters []sleeper.Roster) int {
	kept := 0
	for _, r := range rosters {
		kept += len(r.Keepers)
	}
	return kept
}

// NeedsRosters reports whether roster membership matters for availability:
// either the settings already say dynasty or keepers are allowed at all.
func NeedsRosters(league *sleeper.League, profile model.LeagueProfile) bool {
	if profile.IsDynastyOrKeeper {
		return true
	}
	return league != nil && league.Settings.MaxKeepers > 0
}
