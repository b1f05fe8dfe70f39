package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
)

// DefaultLeagueSettingsPaths are tried in order when no path is given.
var DefaultLeagueSettingsPaths = []string{
	"configs/league_settings.json",
	"../configs/league_settings.json",
	"../../configs/league_settings.json",
}

// LeagueSettings represents the configuration for a specific league
type LeagueSettings struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Scoring and Lineup replace the classified formats when set.
	Scoring string `json:"scoring_format,omitempty"`
	Lineup  string `json:"lineup_format,omitempty"`
	// RankingTable names the preferred ranking table id.
	RankingTable string `json:"ranking_table,omitempty"`
	// TeamNames labels draft slots, in slot order.
	TeamNames []string `json:"team_names,omitempty"`
}

// LeagueConfig represents the entire league configuration file
type LeagueConfig struct {
	Instructions    string                    `json:"_instructions,omitempty"`
	Leagues         map[string]LeagueSettings `json:"leagues"`
	DefaultSettings LeagueSettings            `json:"default_settings"`
	Template        map[string]LeagueSettings `json:"_template,omitempty"`
}

// DefaultLeagueConfig has no overrides.
func DefaultLeagueConfig() *LeagueConfig {
	return &LeagueConfig{
		Leagues: make(map[string]LeagueSettings),
		DefaultSettings: LeagueSettings{
			Name:        "Default League",
			Description: "Formats come from the league settings on Sleeper",
		},
	}
}

// LoadLeagueSettings loads league configuration from path, or from the
// first default location that exists when path is empty.
func LoadLeagueSettings(path string) (*LeagueConfig, error) {
	if path == "" {
		for _, candidate := range DefaultLeagueSettingsPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return DefaultLeagueConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league settings: %w", err)
	}

	config := DefaultLeagueConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse league settings from %s: %w", path, err)
	}
	if config.Leagues == nil {
		config.Leagues = make(map[string]LeagueSettings)
	}

	for id, s := range config.Leagues {
		if s.Scoring != "" {
			if _, ok := model.ParseScoringFormat(s.Scoring); !ok {
				return nil, fmt.Errorf("league %s: unknown scoring format %q", id, s.Scoring)
			}
		}
		if s.Lineup != "" {
			if _, ok := model.ParseLineupFormat(s.Lineup); !ok {
				return nil, fmt.Errorf("league %s: unknown lineup format %q", id, s.Lineup)
			}
		}
	}
	return config, nil
}

// GetLeagueSettings returns settings for a specific league ID
func (c *LeagueConfig) GetLeagueSettings(leagueID string) LeagueSettings {
	if settings, exists := c.Leagues[leagueID]; exists {
		return settings
	}

	// Return default settings if league not found
	return c.DefaultSettings
}

// ApplyOverride replaces the classified formats with any configured for
// the league and records each replacement as a signal.
func (c *LeagueConfig) ApplyOverride(leagueID string, profile model.LeagueProfile) model.LeagueProfile {
	settings := c.GetLeagueSettings(leagueID)
	profile.Signals = append([]string{}, profile.Signals...)
	if scoring, ok := model.ParseScoringFormat(settings.Scoring); ok && scoring != profile.Scoring {
		profile.Scoring = scoring
		profile.Signals = append(profile.Signals, "override: scoring="+string(scoring))
	}
	if lineup, ok := model.ParseLineupFormat(settings.Lineup); ok && lineup != profile.Lineup {
		profile.Lineup = lineup
		profile.Signals = append(profile.Signals, "override: lineup="+string(lineup))
	}
	return profile
}

// PreferredTable returns the ranking table id configured for a league.
func (c *LeagueConfig) PreferredTable(leagueID string) string {
	return c.GetLeagueSettings(leagueID).RankingTable
}

// TeamName labels a draft slot, falling back to "Team N".
func (c *LeagueConfig) TeamName(leagueID string, teamIndex int) string {
	names := c.GetLeagueSettings(leagueID).TeamNames
	if teamIndex >= 0 && teamIndex < len(names) && names[teamIndex] != "" {
		return names[teamIndex]
	}
	return fmt.Sprintf("Team %d", teamIndex+1)
}
