package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/model"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/rankings"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper/sleepertest"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type staticLoader []model.RankingTable

func (s staticLoader) LoadTables(ctx context.Context) ([]model.RankingTable, error) {
	return s, nil
}

func testTable() model.RankingTable {
	return model.RankingTable{
		ID:     "half",
		Name:   "half",
		Key:    model.FormatKey{Scoring: model.HalfPPR, Lineup: model.LineupSuperflex},
		Source: rankings.SourceFile,
		Entries: []model.RankedEntry{
			{Name: "Christian McCaffrey", Position: model.RB, Team: "SF", OverallRank: 1, ProjectedPoints: 290},
			{Name: "Justin Jefferson", Position: model.WR, Team: "MIN", OverallRank: 2, ProjectedPoints: 270},
			{Name: "Josh Allen", Position: model.QB, Team: "BUF", OverallRank: 3, ProjectedPoints: 380},
			{Name: "Travis Kelce", Position: model.TE, Team: "KC", OverallRank: 4, ProjectedPoints: 200},
		},
	}
}

func testPlayers() ([]model.Player, error) {
	return []model.Player{
		{ID: "4034", DisplayName: "Christian McCaffrey", Position: model.RB, Team: "SF"},
		{ID: "6794", DisplayName: "Justin Jefferson", Position: model.WR, Team: "MIN"},
		{ID: "4984", DisplayName: "Josh Allen", Position: model.QB, Team: "BUF"},
		{ID: "1466", DisplayName: "Travis Kelce", Position: model.TE, Team: "KC"},
	}, nil
}

func mockDraftClient() *sleepertest.MockClient {
	return &sleepertest.MockClient{
		GetDraftFunc: func(draftID string) (*sleeper.Draft, error) {
			return &sleeper.Draft{DraftID: draftID, LeagueID: "L1", Type: "snake", Settings: sleeper.DraftSettings{Teams: 2, Rounds: 2}}, nil
		},
		GetDraftPicksFunc: func(draftID string) ([]sleeper.DraftPick, error) {
			return []sleeper.DraftPick{{PickNo: 1, Round: 1, PlayerID: "4034", Metadata: sleeper.DraftPickMetadata{Position: "RB"}}}, nil
		},
		GetLeagueFunc: func(leagueID string) (*sleeper.League, error) {
			return &sleeper.League{
				LeagueID:        leagueID,
				Name:            "Test League",
				TotalRosters:    2,
				ScoringSettings: map[string]float64{"rec": 0.5},
				RosterPositions: []string{"QB", "RB", "WR", "TE", "SUPER_FLEX"},
			}, nil
		},
	}
}

func newTestService(t *testing.T, client sleeper.Client, logger *logrus.Logger) *assistant.Service {
	t.Helper()

	db, err := storage.Open(storage.DefaultConfig(filepath.Join(t.TempDir(), "handlers.db")))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	custom := storage.NewCustomRankingStore(db, logger)

	repo := rankings.NewRepository(logger, staticLoader{testTable()}, custom)
	if _, err := repo.Refresh(context.Background()); err != nil {
		t.Fatalf("Failed to load rankings: %v", err)
	}

	return assistant.New(assistant.Deps{
		Client:   client,
		Players:  identity.NewStore(testPlayers, time.Hour, logger),
		Rankings: repo,
		Custom:   custom,
	}, assistant.Defaults{Limit: 50}, logger)
}

type envelope struct {
	Success  bool             `json:"success"`
	Data     json.RawMessage  `json:"data"`
	Summary  string           `json:"summary"`
	Metadata sleeper.Metadata `json:"metadata"`
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) envelope {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result but got nil")
	}
	if result.IsError {
		t.Fatalf("Expected successful result, got error: %v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("Expected content in result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content")
	}
	var env envelope
	if err := json.Unmarshal([]byte(text.Text), &env); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !env.Success {
		t.Error("Expected success to be true")
	}
	return env
}

func TestDraftHandler_Tools(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewDraftHandler(nil, logger)

	tools := []struct {
		tool     mcp.Tool
		name     string
		required string
	}{
		{handler.LeagueProfileTool(), "get_league_profile", "league_id"},
		{handler.UnavailablePlayersTool(), "get_unavailable_players", "draft_id"},
		{handler.BestAvailableTool(), "get_best_available", "draft_id"},
		{handler.VBDRankingsTool(), "get_vbd_rankings", "draft_id"},
		{handler.TeamNeedsTool(), "get_team_needs", "draft_id"},
		{handler.RecommendationsTool(), "get_draft_recommendations", "draft_id"},
		{handler.DraftSeatTool(), "get_draft_seat", ""},
		{handler.UserLeaguesTool(), "get_user_leagues", "username"},
	}

	for _, tt := range tools {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.name {
				t.Errorf("Expected tool name '%s', got '%s'", tt.name, tt.tool.Name)
			}
			if tt.tool.Description == "" {
				t.Error("Expected tool description to be set")
			}
			if tt.tool.InputSchema.Type != "object" {
				t.Errorf("Expected input schema type 'object', got '%s'", tt.tool.InputSchema.Type)
			}
			if tt.required == "" {
				return
			}
			prop, ok := tt.tool.InputSchema.Properties[tt.required].(map[string]interface{})
			if !ok {
				t.Fatalf("Expected %s property in input schema", tt.required)
			}
			if prop["required"] != true {
				t.Errorf("Expected %s to be required", tt.required)
			}
		})
	}
}

func TestPoolProperties_RankBounds(t *testing.T) {
	props := poolProperties()
	for key, want := range map[string]string{"min_rank": ">=", "max_rank": "<="} {
		prop, ok := props[key].(map[string]interface{})
		if !ok {
			t.Fatalf("Expected %s property", key)
		}
		desc, _ := prop["description"].(string)
		if !strings.Contains(desc, "overall rank "+want) {
			t.Errorf("Expected %s description to bound overall rank with %s, got %q", key, want, desc)
		}
	}
}

func TestDraftHandler_HandleBestAvailable(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		wantError bool
		wantNames []string
	}{
		{
			name:      "drafted player excluded",
			args:      map[string]interface{}{"draft_id": "D1"},
			wantNames: []string{"Justin Jefferson", "Josh Allen", "Travis Kelce"},
		},
		{
			name:      "position and limit",
			args:      map[string]interface{}{"draft_id": "D1", "position": "WR", "limit": float64(1)},
			wantNames: []string{"Justin Jefferson"},
		},
		{
			name:      "missing draft_id",
			args:      map[string]interface{}{},
			wantError: true,
		},
		{
			name:      "invalid limit type",
			args:      map[string]interface{}{"draft_id": "D1", "limit": true},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			handler := NewDraftHandler(newTestService(t, mockDraftClient(), logger), logger)

			result, err := handler.HandleBestAvailable(context.Background(), tt.args)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			env := decodeResult(t, result)
			var report struct {
				Players []struct {
					Name string `json:"name"`
				} `json:"players"`
			}
			if err := json.Unmarshal(env.Data, &report); err != nil {
				t.Fatalf("Failed to decode data: %v", err)
			}
			var got []string
			for _, p := range report.Players {
				got = append(got, p.Name)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantNames, ",") {
				t.Errorf("Expected players %v, got %v", tt.wantNames, got)
			}
			if env.Metadata.DraftID != "D1" {
				t.Errorf("Expected draft_id 'D1' in metadata, got '%s'", env.Metadata.DraftID)
			}
			if len(hook.Entries) == 0 {
				t.Error("Expected log entries for successful request")
			}
		})
	}
}

func TestDraftHandler_HandleBestAvailable_Degraded(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := mockDraftClient()
	client.GetDraftPicksFunc = func(draftID string) ([]sleeper.DraftPick, error) {
		return nil, errors.New("connection reset")
	}
	handler := NewDraftHandler(newTestService(t, client, logger), logger)

	result, err := handler.HandleBestAvailable(context.Background(), map[string]interface{}{"draft_id": "D1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	env := decodeResult(t, result)
	if !env.Metadata.FallbackMode {
		t.Error("Expected fallback mode when picks are unavailable")
	}
	if len(env.Metadata.Notes) == 0 {
		t.Error("Expected degradation notes")
	}
}

func TestDraftHandler_HandleLeagueProfile(t *testing.T) {
	tests := []struct {
		name           string
		args           map[string]interface{}
		wantError      bool
		expectErrorMsg bool
	}{
		{name: "successful request", args: map[string]interface{}{"league_id": "L1"}},
		{name: "missing league_id", args: map[string]interface{}{}, wantError: true},
		{name: "invalid league_id type", args: map[string]interface{}{"league_id": 123}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			handler := NewDraftHandler(newTestService(t, mockDraftClient(), logger), logger)

			result, err := handler.HandleLeagueProfile(context.Background(), tt.args)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			env := decodeResult(t, result)
			if !strings.Contains(env.Summary, "half_ppr superflex") {
				t.Errorf("Expected summary to name the formats, got '%s'", env.Summary)
			}
		})
	}
}

func TestDraftHandler_HandleUnavailablePlayers(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewDraftHandler(newTestService(t, mockDraftClient(), logger), logger)

	result, err := handler.HandleUnavailablePlayers(context.Background(), map[string]interface{}{"draft_id": "D1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	env := decodeResult(t, result)
	var data struct {
		UnavailableIDs []string `json:"unavailable_ids"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(data.UnavailableIDs) != 1 || data.UnavailableIDs[0] != "4034" {
		t.Errorf("Expected unavailable [4034], got %v", data.UnavailableIDs)
	}
	if env.Metadata.LeagueID != "L1" {
		t.Errorf("Expected league_id 'L1', got '%s'", env.Metadata.LeagueID)
	}
}

func TestDraftHandler_HandleVBDRankings(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewDraftHandler(newTestService(t, mockDraftClient(), logger), logger)

	result, err := handler.HandleVBDRankings(context.Background(), map[string]interface{}{"draft_id": "D1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	env := decodeResult(t, result)
	var data struct {
		LeagueSize int `json:"league_size"`
		Players    []struct {
			VBDRank int `json:"vbd_rank"`
		} `json:"players"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if data.LeagueSize != 2 {
		t.Errorf("Expected league size 2, got %d", data.LeagueSize)
	}
	if len(data.Players) != 3 {
		t.Errorf("Expected 3 valued players, got %d", len(data.Players))
	}
}

func TestDraftHandler_HandleTeamNeeds(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := mockDraftClient()
	handler := NewDraftHandler(newTestService(t, client, logger), logger)

	result, err := handler.HandleTeamNeeds(context.Background(), map[string]interface{}{"draft_id": "D1", "team_index": float64(1)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decodeResult(t, result)
	var data struct {
		Teams []struct {
			Name string `json:"name"`
		} `json:"teams"`
		NextPick int `json:"next_pick"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if len(data.Teams) != 1 || data.Teams[0].Name != "Team 2" {
		t.Errorf("Expected only 'Team 2', got %+v", data.Teams)
	}
	if data.NextPick != 2 {
		t.Errorf("Expected next pick 2, got %d", data.NextPick)
	}

	result, err = handler.HandleTeamNeeds(context.Background(), map[string]interface{}{"draft_id": "D1", "team_index": float64(5)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected result to indicate error for a slot outside the board")
	}
}

func TestDraftHandler_HandleTeamNeeds_DraftUnavailable(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := mockDraftClient()
	client.GetDraftFunc = func(draftID string) (*sleeper.Draft, error) {
		return nil, &sleeper.SleeperError{Type: "api_error", Message: "sleeper is down", StatusCode: 503}
	}
	handler := NewDraftHandler(newTestService(t, client, logger), logger)

	result, err := handler.HandleTeamNeeds(context.Background(), map[string]interface{}{"draft_id": "D1", "league_id": "L1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decodeResult(t, result)
	if !env.Metadata.FallbackMode {
		t.Error("Expected fallback_mode to be set")
	}
	if len(env.Metadata.Notes) == 0 {
		t.Error("Expected a note explaining the fallback")
	}
	var data struct {
		Topology struct {
			TeamCount int `json:"team_count"`
		} `json:"topology"`
		Teams []struct {
			Name string `json:"name"`
		} `json:"teams"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if data.Topology.TeamCount != 2 || len(data.Teams) != 2 {
		t.Errorf("Expected a 2-team board from the league settings, got %d teams (%d reported)", data.Topology.TeamCount, len(data.Teams))
	}
}

func TestDraftHandler_HandleRecommendations(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewDraftHandler(newTestService(t, mockDraftClient(), logger), logger)

	result, err := handler.HandleRecommendations(context.Background(), map[string]interface{}{"draft_id": "D1"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decodeResult(t, result)
	var data struct {
		Team *struct {
			Name string `json:"name"`
		} `json:"team"`
		Recommendations []struct {
			Rank      int    `json:"rank"`
			Reasoning string `json:"reasoning"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if data.Team == nil || data.Team.Name != "Team 2" {
		t.Errorf("Expected recommendations for the team on the clock, got %+v", data.Team)
	}
	for i, r := range data.Recommendations {
		if r.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, r.Rank)
		}
	}
}

func TestDraftHandler_HandleDraftSeat(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		wantError bool
		wantTeam  string
	}{
		{
			name:     "explicit board",
			args:     map[string]interface{}{"pick_number": float64(12), "teams": float64(10), "rounds": float64(15)},
			wantTeam: "Team 9",
		},
		{
			name:     "linear board",
			args:     map[string]interface{}{"pick_number": "12", "teams": "10", "rounds": "15", "draft_type": "linear"},
			wantTeam: "Team 2",
		},
		{
			name:     "next pick from draft",
			args:     map[string]interface{}{"draft_id": "D1"},
			wantTeam: "Team 2",
		},
		{
			name:      "no board",
			args:      map[string]interface{}{"pick_number": float64(3)},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			handler := NewDraftHandler(newTestService(t, mockDraftClient(), logger), logger)

			result, err := handler.HandleDraftSeat(context.Background(), tt.args)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			env := decodeResult(t, result)
			var data struct {
				TeamName string `json:"team_name"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil {
				t.Fatalf("Failed to decode data: %v", err)
			}
			if data.TeamName != tt.wantTeam {
				t.Errorf("Expected team '%s', got '%s'", tt.wantTeam, data.TeamName)
			}
		})
	}
}

func TestDraftHandler_HandleUserLeagues(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := &sleepertest.MockClient{
		GetUserFunc: func(usernameOrID string) (*sleeper.User, error) {
			return &sleeper.User{UserID: "u1", DisplayName: "Tester"}, nil
		},
		GetUserLeaguesFunc: func(userID, sport, season string) ([]sleeper.League, error) {
			return []sleeper.League{{LeagueID: "L1", Name: "Test League", Season: season}}, nil
		},
		GetLeagueDraftsFunc: func(leagueID string) ([]sleeper.Draft, error) {
			return []sleeper.Draft{{DraftID: "D1", Type: "snake"}}, nil
		},
	}
	handler := NewDraftHandler(newTestService(t, client, logger), logger)

	result, err := handler.HandleUserLeagues(context.Background(), map[string]interface{}{"username": "tester", "season": "2025"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decodeResult(t, result)
	if !strings.Contains(env.Summary, "Test League") {
		t.Errorf("Expected league name in summary, got '%s'", env.Summary)
	}

	if _, err := handler.HandleUserLeagues(context.Background(), map[string]interface{}{"username": "tester"}); err == nil {
		t.Error("Expected error for missing season")
	}
}
