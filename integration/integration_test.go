//go:build integration
// +build integration

package main

import (
	"context"
	"os"
	"testing"

	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/handlers"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/identity"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/league"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/rankings"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sirupsen/logrus/hooks/test"
)

// Integration tests that actually call the Sleeper API
// Run with: go test -tags=integration ./...

func TestIntegration_SleeperAPI_GetLeague(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Use environment variable for league ID to avoid hardcoding
	leagueID := os.Getenv("TEST_LEAGUE_ID")
	if leagueID == "" {
		t.Skip("TEST_LEAGUE_ID environment variable not set, skipping integration test")
	}

	logger, _ := test.NewNullLogger()
	client := sleeper.NewHTTPClient(logger)

	lg, err := client.GetLeague(leagueID)
	if err != nil {
		t.Fatalf("Failed to get league: %v", err)
	}
	if lg.LeagueID != leagueID {
		t.Errorf("Expected league ID %s, got %s", leagueID, lg.LeagueID)
	}

	profile := league.NewClassifier(logger).Classify(lg, nil)
	if profile.Scoring == "" || profile.Lineup == "" {
		t.Errorf("Expected a complete profile, got %+v", profile)
	}
	t.Logf("League %s classified as %s %s (dynasty/keeper: %v, signals: %v)",
		lg.Name, profile.Scoring, profile.Lineup, profile.IsDynastyOrKeeper, profile.Signals)
}

func TestIntegration_DraftHandler_WithRealDraft(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	draftID := os.Getenv("TEST_DRAFT_ID")
	if draftID == "" {
		t.Skip("TEST_DRAFT_ID environment variable not set, skipping integration test")
	}

	logger, _ := test.NewNullLogger()
	client := sleeper.NewHTTPClient(logger)
	cache := sleeper.NewPlayerCache(client, t.TempDir(), sleeper.DefaultPlayerTTL, logger)

	repo := rankings.NewRepository(logger)
	service := assistant.New(assistant.Deps{
		Client:   client,
		Players:  identity.NewStore(assistant.PlayerLoader(cache, logger), sleeper.DefaultPlayerTTL, logger),
		Rankings: repo,
	}, assistant.Defaults{}, logger)
	handler := handlers.NewDraftHandler(service, logger)

	result, err := handler.HandleTeamNeeds(context.Background(), map[string]interface{}{"draft_id": draftID})
	if err != nil {
		t.Fatalf("Failed to handle get_team_needs: %v", err)
	}
	if result == nil {
		t.Fatal("Expected result but got nil")
	}
	if result.IsError {
		t.Errorf("Expected successful result but got error: %v", result.Content)
	}

	result, err = handler.HandleUnavailablePlayers(context.Background(), map[string]interface{}{"draft_id": draftID})
	if err != nil {
		t.Fatalf("Failed to handle get_unavailable_players: %v", err)
	}
	if result.IsError {
		t.Errorf("Expected successful result but got error: %v", result.Content)
	}
}

func TestIntegration_PlayerDirectory(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("TEST_PLAYER_DIRECTORY") == "" {
		t.Skip("TEST_PLAYER_DIRECTORY not set, skipping the full player download")
	}

	logger, _ := test.NewNullLogger()
	client := sleeper.NewHTTPClient(logger)
	cache := sleeper.NewPlayerCache(client, t.TempDir(), sleeper.DefaultPlayerTTL, logger)

	store := identity.NewStore(assistant.PlayerLoader(cache, logger), sleeper.DefaultPlayerTTL, logger)
	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Failed to load player directory: %v", err)
	}
	if snap.Directory.Len() < 1000 {
		t.Errorf("Expected a full player directory, got %d players", snap.Directory.Len())
	}

	res := snap.Matcher.ResolveName("Patrick Mahomes")
	if !res.Resolved() {
		t.Error("Expected Patrick Mahomes to resolve")
	}
}
