package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

func TestRankingsHandler_Tools(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewRankingsHandler(nil, logger)

	names := map[string]string{
		handler.ListRankingsTool().Name:    "list_rankings",
		handler.RefreshRankingsTool().Name: "refresh_rankings",
		handler.UploadRankingTool().Name:   "upload_custom_ranking",
		handler.DeleteRankingTool().Name:   "delete_custom_ranking",
		handler.MatchPlayerTool().Name:     "match_player_name",
	}
	for got, want := range names {
		if got != want {
			t.Errorf("Expected tool name '%s', got '%s'", want, got)
		}
	}
	if len(names) != 5 {
		t.Errorf("Expected 5 distinct tool names, got %d", len(names))
	}
}

func TestRankingsHandler_UploadListDelete(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewRankingsHandler(newTestService(t, mockDraftClient(), logger), logger)
	ctx := context.Background()

	content := "Rank,Player,Pos,Team,FPTS\n1,Josh Allen,QB,BUF,380\n2,Travis Kelce,TE,KC,210\n"
	result, err := handler.HandleUploadRanking(ctx, map[string]interface{}{
		"name":    "Week 0",
		"content": content,
		"format":  "ppr_standard",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env := decodeResult(t, result)
	var uploaded struct {
		Ranking struct {
			TableID string `json:"table_id"`
			Players int    `json:"players"`
		} `json:"ranking"`
	}
	if err := json.Unmarshal(env.Data, &uploaded); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
	if uploaded.Ranking.Players != 2 {
		t.Errorf("Expected 2 stored players, got %d", uploaded.Ranking.Players)
	}
	tableID := uploaded.Ranking.TableID
	if !strings.HasPrefix(tableID, "custom-") {
		t.Fatalf("Expected a custom table id, got '%s'", tableID)
	}

	result, err = handler.HandleListRankings(ctx, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env = decodeResult(t, result)
	if !strings.Contains(env.Summary, "2 ranking tables") {
		t.Errorf("Expected two tables after upload, got '%s'", env.Summary)
	}

	result, err = handler.HandleUploadRanking(ctx, map[string]interface{}{"name": "Week 0", "content": content})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected duplicate name to be rejected")
	}

	result, err = handler.HandleDeleteRanking(ctx, map[string]interface{}{"table_id": tableID})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	decodeResult(t, result)

	result, err = handler.HandleDeleteRanking(ctx, map[string]interface{}{"table_id": tableID})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected deleting a missing ranking to fail")
	}

	result, err = handler.HandleRefreshRankings(ctx, map[string]interface{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	env = decodeResult(t, result)
	if !strings.Contains(env.Summary, "1 ranking tables") {
		t.Errorf("Expected one table after delete, got '%s'", env.Summary)
	}
}

func TestRankingsHandler_UploadRequiresContent(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := NewRankingsHandler(newTestService(t, mockDraftClient(), logger), logger)

	if _, err := handler.HandleUploadRanking(context.Background(), map[string]interface{}{"name": "x"}); err == nil {
		t.Error("Expected error for missing content")
	}
	if _, err := handler.HandleUploadRanking(context.Background(), map[string]interface{}{"content": "a,b"}); err == nil {
		t.Error("Expected error for missing name")
	}
}

func TestRankingsHandler_HandleMatchPlayer(t *testing.T) {
	tests := []struct {
		name        string
		args        map[string]interface{}
		wantError   bool
		wantSummary string
	}{
		{
			name:        "exact name",
			args:        map[string]interface{}{"name": "Josh Allen", "position": "QB"},
			wantSummary: "Matched Josh Allen (QB, 4984) by exact match",
		},
		{
			name:        "reverse lookup",
			args:        map[string]interface{}{"player_id": "1466"},
			wantSummary: "Matched Travis Kelce",
		},
		{
			name:        "unknown name",
			args:        map[string]interface{}{"name": "Nobody Special"},
			wantSummary: "No unique Sleeper player matches 'Nobody Special'",
		},
		{
			name:      "no arguments",
			args:      map[string]interface{}{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			handler := NewRankingsHandler(newTestService(t, mockDraftClient(), logger), logger)

			result, err := handler.HandleMatchPlayer(context.Background(), tt.args)
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
			if !strings.HasPrefix(env.Summary, tt.wantSummary) {
				t.Errorf("Expected summary starting '%s', got '%s'", tt.wantSummary, env.Summary)
			}
		})
	}
}
