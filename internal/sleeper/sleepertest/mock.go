// Package sleepertest provides a function-field sleeper.Client for tests.
package sleepertest

import (
	"errors"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
)

// ErrNotImplemented is returned by any method whose func field is nil.
var ErrNotImplemented = errors.New("not implemented")

// MockClient is a mock implementation of the sleeper.Client interface for testing
type MockClient struct {
	GetUserFunc          func(usernameOrID string) (*sleeper.User, error)
	GetUserLeaguesFunc   func(userID, sport, season string) ([]sleeper.League, error)
	GetLeagueFunc        func(leagueID string) (*sleeper.League, error)
	GetLeagueUsersFunc   func(leagueID string) ([]sleeper.User, error)
	GetLeagueRostersFunc func(leagueID string) ([]sleeper.Roster, error)
	GetLeagueDraftsFunc  func(leagueID string) ([]sleeper.Draft, error)
	GetDraftFunc         func(draftID string) (*sleeper.Draft, error)
	GetDraftPicksFunc    func(draftID string) ([]sleeper.DraftPick, error)
	GetAllPlayersFunc    func() (map[string]sleeper.Player, error)
}

var _ sleeper.Client = (*MockClient)(nil)

func (m *MockClient) GetUser(usernameOrID string) (*sleeper.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(usernameOrID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetUserLeagues(userID, sport, season string) ([]sleeper.League, error) {
	if m.GetUserLeaguesFunc != nil {
		return m.GetUserLeaguesFunc(userID, sport, season)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetLeague(leagueID string) (*sleeper.League, error) {
	if m.GetLeagueFunc != nil {
		return m.GetLeagueFunc(leagueID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetLeagueUsers(leagueID string) ([]sleeper.User, error) {
	if m.GetLeagueUsersFunc != nil {
		return m.GetLeagueUsersFunc(leagueID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetLeagueRosters(leagueID string) ([]sleeper.Roster, error) {
	if m.GetLeagueRostersFunc != nil {
		return m.GetLeagueRostersFunc(leagueID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetLeagueDrafts(leagueID string) ([]sleeper.Draft, error) {
	if m.GetLeagueDraftsFunc != nil {
		return m.GetLeagueDraftsFunc(leagueID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetDraft(draftID string) (*sleeper.Draft, error) {
	if m.GetDraftFunc != nil {
		return m.GetDraftFunc(draftID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetDraftPicks(draftID string) ([]sleeper.DraftPick, error) {
	if m.GetDraftPicksFunc != nil {
		return m.GetDraftPicksFunc(draftID)
	}
	return nil, ErrNotImplemented
}

func (m *MockClient) GetAllPlayers() (map[string]sleeper.Player, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, ErrNotImplemented
}
