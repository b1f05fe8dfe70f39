package assistant

import (
	"fmt"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
)

// DraftSummary is one draft of a league.
type DraftSummary struct {
	DraftID string `json:"draft_id"`
	Status  string `json:"status"`
	Type    string `json:"type"`
	Teams   int    `json:"teams"`
	Rounds  int    `json:"rounds"`
}

// LeagueSummary is one league a user belongs to.
type LeagueSummary struct {
	LeagueID string         `json:"league_id"`
	Name     string         `json:"name"`
	Season   string         `json:"season"`
	Status   string         `json:"status"`
	Teams    int            `json:"teams"`
	Drafts   []DraftSummary `json:"drafts"`
}

// LeaguesReport lists a user's leagues for a season.
type LeaguesReport struct {
	UserID      string          `json:"user_id"`
	DisplayName string          `json:"display_name"`
	Season      string          `json:"season"`
	Leagues     []LeagueSummary `json:"leagues"`
	Degradation
}

// Leagues finds a user's NFL leagues and their drafts.
func (s *Service) Leagues(username, season string) (LeaguesReport, error) {
	if username == "" {
		return LeaguesReport{}, &model.ValidationError{Field: "username", Reason: "is required"}
	}
	if season == "" {
		return LeaguesReport{}, &model.ValidationError{Field: "season", Reason: "is required"}
	}

	user, err := s.client.GetUser(username)
	if err != nil {
		return LeaguesReport{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || user.UserID == "" {
		return LeaguesReport{}, &sleeper.SleeperError{Type: "not_found", Message: fmt.Sprintf("user %s not found", username)}
	}
	leagues, err := s.client.GetUserLeagues(user.UserID, "nfl", season)
	if err != nil {
		return LeaguesReport{}, fmt.Errorf("failed to get user leagues: %w", err)
	}

	report := LeaguesReport{
		UserID:      user.UserID,
		DisplayName: user.DisplayName,
		Season:      season,
		Leagues:     make([]LeagueSummary, 0, len(leagues)),
		Degradation: Degradation{Notes: []string{}},
	}
	for _, lg := range leagues {
		summary := LeagueSummary{
			LeagueID: lg.LeagueID,
			Name:     lg.Name,
			Season:   lg.Season,
			Status:   lg.Status,
			Teams:    lg.TotalRosters,
			Drafts:   []DraftSummary{},
		}
		drafts, err := s.client.GetLeagueDrafts(lg.LeagueID)
		if err != nil {
			s.logger.WithError(err).WithField("league_id", lg.LeagueID).Warn("Failed to get league drafts")
			report.note(fmt.Sprintf("drafts unavailable for league %s", lg.LeagueID))
		}
		for _, d := range drafts {
			summary.Drafts = append(summary.Drafts, DraftSummary{
				DraftID: d.DraftID,
				Status:  d.Status,
				Type:    d.Type,
				Teams:   d.Settings.Teams,
				Rounds:  d.Settings.Rounds,
			})
		}
		report.Leagues = append(report.Leagues, summary)
	}
	return report, nil
}
