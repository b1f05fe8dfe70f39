package sleeper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestHTTPClient_GetLeague(t *testing.T) {
	tests := []struct {
		name           string
		leagueID       string
		serverResponse string
		serverStatus   int
		wantError      bool
		wantLeague     *League
	}{
		{
			name:         "successful request",
			leagueID:     "123456789",
			serverStatus: http.StatusOK,
			serverResponse: `{
				"league_id": "123456789",
				"name": "Test League",
				"status": "in_season",
				"sport": "nfl",
				"season": "2024",
				"total_rosters": 12,
				"settings": {},
				"scoring_settings": {},
				"roster_positions": ["QB", "RB", "WR", "TE", "FLEX", "K", "DEF"]
			}`,
			wantError: false,
			wantLeague: &League{
				LeagueID:        "123456789",
				Name:            "Test League",
				Status:          "in_season",
				Sport:           "nfl",
				Season:          "2024",
				TotalRosters:    12,
				Settings:        LeagueSettings{},
				ScoringSettings: map[string]float64{},
				RosterPositions: []string{"QB", "RB", "WR", "TE", "FLEX", "K", "DEF"},
			},
		},
		{
			name:           "league not found",
			leagueID:       "invalid",
			serverStatus:   http.StatusNotFound,
			serverResponse: "null",
			wantError:      true,
			wantLeague:     nil,
		},
		{
			name:           "server error",
			leagueID:       "123456789",
			serverStatus:   http.StatusInternalServerError,
			serverResponse: "Internal Server Error",
			wantError:      true,
			wantLeague:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create test server
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/league/"+tt.leagueID {
					t.Errorf("Expected path /league/%s, got %s", tt.leagueID, r.URL.Path)
				}
				w.WriteHeader(tt.serverStatus)
				w.Write([]byte(tt.serverResponse))
			}))
			defer server.Close()

			// Create client with test server URL
			logger, _ := test.NewNullLogger()
			client := &HTTPClient{
				baseURL:    server.URL,
				httpClient: &http.Client{},
				logger:     logger,
			}

			// Call the method
			league, err := client.GetLeague(tt.leagueID)

			// Check error expectation
			if tt.wantError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			// Check league result
			if tt.wantLeague != nil {
				if league == nil {
					t.Error("Expected league but got nil")
				} else {
					if league.LeagueID != tt.wantLeague.LeagueID {
						t.Errorf("Expected league ID %s, got %s", tt.wantLeague.LeagueID, league.LeagueID)
					}
					if league.Name != tt.wantLeague.Name {
						t.Errorf("Expected league name %s, got %s", tt.wantLeague.Name, league.Name)
					}
				}
			} else if league != nil {
				t.Error("Expected nil league but got result")
			}
		})
	}
}

func TestHTTPClient_GetDraft(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse string
		serverStatus   int
		wantError      bool
		wantTeams      int
		wantRounds     int
	}{
		{
			name:         "successful request",
			serverStatus: http.StatusOK,
			serverResponse: `{
				"draft_id": "d1",
				"league_id": "l1",
				"type": "snake",
				"status": "drafting",
				"settings": {"teams": 12, "rounds": 15}
			}`,
			wantTeams:  12,
			wantRounds: 15,
		},
		{
			name:           "null body is not found",
			serverStatus:   http.StatusOK,
			serverResponse: "null",
			wantError:      true,
		},
		{
			name:           "server error",
			serverStatus:   http.StatusInternalServerError,
			serverResponse: "boom",
			wantError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/draft/d1" {
					t.Errorf("Expected path /draft/d1, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.serverStatus)
				w.Write([]byte(tt.serverResponse))
			}))
			defer server.Close()

			logger, _ := test.NewNullLogger()
			client := NewHTTPClientWithOptions(Options{BaseURL: server.URL}, logger)

			draft, err := client.GetDraft("d1")
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				var sleeperErr *SleeperError
				if !errors.As(err, &sleeperErr) {
					t.Errorf("Expected SleeperError in chain, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if draft.Settings.Teams != tt.wantTeams || draft.Settings.Rounds != tt.wantRounds {
				t.Errorf("Expected %dx%d board, got %dx%d", tt.wantTeams, tt.wantRounds, draft.Settings.Teams, draft.Settings.Rounds)
			}
		})
	}
}

func TestHTTPClient_GetDraftPicks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/draft/d1/picks" {
			t.Errorf("Expected path /draft/d1/picks, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[
			{"pick_no": 1, "round": 1, "player_id": "4046", "picked_by": "u1", "is_keeper": null,
			 "metadata": {"first_name": "Patrick", "last_name": "Mahomes", "position": "QB", "team": "KC"}},
			{"pick_no": 2, "round": 1, "player_id": "6794", "picked_by": "u2", "is_keeper": true,
			 "metadata": {"first_name": "Justin", "last_name": "Jefferson", "position": "WR", "team": "MIN"}}
		]`))
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	client := NewHTTPClientWithOptions(Options{BaseURL: server.URL, RequestsPerSecond: 100, Burst: 2}, logger)

	picks, err := client.GetDraftPicks("d1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("Expected 2 picks, got %d", len(picks))
	}
	if picks[0].IsKeeper != nil {
		t.Error("Expected null is_keeper to decode as nil")
	}
	if picks[1].IsKeeper == nil || !*picks[1].IsKeeper {
		t.Error("Expected second pick to be a keeper")
	}
	if picks[1].Metadata.Position != "WR" {
		t.Errorf("Expected metadata position WR, got %s", picks[1].Metadata.Position)
	}
}

func TestHTTPClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	logger, _ := test.NewNullLogger()
	client := NewHTTPClientWithOptions(Options{BaseURL: url}, logger)

	_, err := client.GetLeagueRosters("l1")
	var sleeperErr *SleeperError
	if !errors.As(err, &sleeperErr) {
		t.Fatalf("Expected SleeperError, got %v", err)
	}
	if sleeperErr.Type != "network_error" {
		t.Errorf("Expected network_error, got %s", sleeperErr.Type)
	}
}

func TestSleeperError_Error(t *testing.T) {
	err := &SleeperError{
		Type:    "api_error",
		Message: "League not found",
	}

	expected := "League not found"
	if err.Error() != expected {
		t.Errorf("Expected error message %s, got %s", expected, err.Error())
	}
}

func TestNewHTTPClient(t *testing.T) {
	logger := logrus.New()
	client := NewHTTPClient(logger)

	if client == nil {
		t.Error("Expected client to be created, got nil")
	}

	// Ensure it implements the Client interface
	var _ Client = client
}