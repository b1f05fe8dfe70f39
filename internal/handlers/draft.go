package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sirupsen/logrus"
)

// DraftHandler handles draft-related MCP tools
type DraftHandler struct {
	service *assistant.Service
	logger  *logrus.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(service *assistant.Service, logger *logrus.Logger) *DraftHandler {
	return &DraftHandler{service: service, logger: logger}
}

// poolProperties are the arguments shared by every tool that reads the
// available player pool.
func poolProperties() map[string]interface{} {
	return map[string]interface{}{
		"draft_id":      stringProperty("The Sleeper draft ID", true),
		"league_id":     stringProperty("The Sleeper league ID (optional, taken from the draft when omitted)", false),
		"format":        stringProperty("Ranking format override, e.g. 'ppr_standard' or 'half_ppr_superflex'", false),
		"table_id":      stringProperty("Ranking table ID to use instead of the format match (see list_rankings)", false),
		"position":      stringProperty("Only return players at this position: QB, RB, WR, TE, K, DEF", false),
		"limit":         numberProperty("Maximum number of players to return", false),
		"name_contains": stringProperty("Only return players whose name contains this text", false),
		"team":          stringProperty("Only return players on this NFL team (abbreviation)", false),
		"tier":          numberProperty("Only return players in this tier", false),
		"bye_week":      numberProperty("Only return players with this bye week", false),
		"min_rank":      numberProperty("Only return players with overall rank >= this number", false),
		"max_rank":      numberProperty("Only return players with overall rank <= this number", false),
	}
}

func parsePoolArgs(args map[string]interface{}) (assistant.AvailableRequest, error) {
	draftID, err := requiredString(args, "draft_id")
	if err != nil {
		return assistant.AvailableRequest{}, err
	}
	req := assistant.AvailableRequest{
		DraftID:      draftID,
		LeagueID:     stringArg(args, "league_id"),
		Format:       stringArg(args, "format"),
		TableID:      stringArg(args, "table_id"),
		Position:     stringArg(args, "position"),
		NameContains: stringArg(args, "name_contains"),
		Team:         stringArg(args, "team"),
	}
	for key, dst := range map[string]*int{
		"limit":    &req.Limit,
		"tier":     &req.Tier,
		"bye_week": &req.ByeWeek,
		"min_rank": &req.MinRank,
		"max_rank": &req.MaxRank,
	} {
		n, _, err := intArg(args, key)
		if err != nil {
			return assistant.AvailableRequest{}, err
		}
		*dst = n
	}
	return req, nil
}

// LeagueProfileTool returns the MCP tool definition for get_league_profile
func (h *DraftHandler) LeagueProfileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_league_profile",
		Description: "Classify a league's scoring format (standard, half PPR, PPR), lineup format (standard or superflex) and whether it is a dynasty or keeper league",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"league_id": stringProperty("The Sleeper league ID", true),
			},
		},
	}
}

// HandleLeagueProfile handles the get_league_profile tool call
func (h *DraftHandler) HandleLeagueProfile(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_league_profile")

	leagueID, err := requiredString(args, "league_id")
	if err != nil {
		return nil, err
	}

	report, err := h.service.Profile(leagueID)
	if err != nil {
		return errorResult(h.logger, "get_league_profile", "Failed to classify league", err), nil
	}

	kind := "redraft"
	if report.Profile.IsDynastyOrKeeper {
		kind = "dynasty/keeper"
	}
	summary := fmt.Sprintf("League '%s' is a %s %s %s league", report.LeagueName, kind,
		report.Profile.Scoring, report.Profile.Lineup)
	return jsonResult(h.logger, report, summary, degradedMetadata(report.Degradation, "", leagueID)), nil
}

// UnavailablePlayersTool returns the MCP tool definition for get_unavailable_players
func (h *DraftHandler) UnavailablePlayersTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_unavailable_players",
		Description: "List player IDs that can no longer be drafted: everyone already picked, plus every rostered player in dynasty and keeper leagues",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"draft_id":  stringProperty("The Sleeper draft ID", true),
				"league_id": stringProperty("The Sleeper league ID (optional, taken from the draft when omitted)", false),
			},
		},
	}
}

// HandleUnavailablePlayers handles the get_unavailable_players tool call
func (h *DraftHandler) HandleUnavailablePlayers(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_unavailable_players")

	draftID, err := requiredString(args, "draft_id")
	if err != nil {
		return nil, err
	}

	res, err := h.service.Unavailable(draftID, stringArg(args, "league_id"))
	if err != nil {
		return errorResult(h.logger, "get_unavailable_players", "Failed to resolve unavailable players", err), nil
	}

	summary := fmt.Sprintf("%d players unavailable (%d drafted, %d rostered)",
		len(res.UnavailableIDs), res.DraftedCount, res.RosteredCount)
	meta := sleeper.Metadata{
		Source:       "sleeper_api",
		DraftID:      res.DraftID,
		LeagueID:     res.LeagueID,
		FallbackMode: res.Degraded,
		Notes:        res.Notes,
	}
	return jsonResult(h.logger, res, summary, meta), nil
}

// BestAvailableTool returns the MCP tool definition for get_best_available
func (h *DraftHandler) BestAvailableTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_best_available",
		Description: "Get the highest ranked players still available in a draft, using the ranking table that matches the league's format",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: poolProperties(),
		},
	}
}

// HandleBestAvailable handles the get_best_available tool call
func (h *DraftHandler) HandleBestAvailable(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_best_available")

	req, err := parsePoolArgs(args)
	if err != nil {
		return nil, err
	}

	report, err := h.service.BestAvailable(req)
	if err != nil {
		return errorResult(h.logger, "get_best_available", "Failed to get best available players", err), nil
	}

	summary := fmt.Sprintf("%d available players from table '%s' (%s)", len(report.Players), report.Table, report.Format)
	if len(report.Players) > 0 {
		top := report.Players[0]
		summary += fmt.Sprintf(", top: %s (%s)", top.Name, top.Position)
	}
	return jsonResult(h.logger, report, summary, degradedMetadata(report.Degradation, report.DraftID, report.LeagueID)), nil
}

// VBDRankingsTool returns the MCP tool definition for get_vbd_rankings
func (h *DraftHandler) VBDRankingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_vbd_rankings",
		Description: "Rank available players by value based drafting: projected points over a replacement-level baseline, weighted by positional scarcity",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: poolProperties(),
		},
	}
}

// HandleVBDRankings handles the get_vbd_rankings tool call
func (h *DraftHandler) HandleVBDRankings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_vbd_rankings")

	req, err := parsePoolArgs(args)
	if err != nil {
		return nil, err
	}

	report, err := h.service.Values(req)
	if err != nil {
		return errorResult(h.logger, "get_vbd_rankings", "Failed to compute VBD rankings", err), nil
	}

	summary := fmt.Sprintf("VBD rankings for %d players in a %d-team %s league", len(report.Players), report.LeagueSize, report.Format)
	if len(report.Players) > 0 {
		top := report.Players[0]
		summary += fmt.Sprintf(", top value: %s (%.1f)", top.Name, top.ScarcityAdjustedVBD)
	}
	return jsonResult(h.logger, report, summary, degradedMetadata(report.Degradation, report.DraftID, report.LeagueID)), nil
}

// TeamNeedsTool returns the MCP tool definition for get_team_needs
func (h *DraftHandler) TeamNeedsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_team_needs",
		Description: "Reconstruct every team's roster from the draft picks and report positional needs, strategy and roster strength",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"draft_id":   stringProperty("The Sleeper draft ID", true),
				"league_id":  stringProperty("The Sleeper league ID (optional, sizes the board if the draft cannot be fetched)", false),
				"team_index": numberProperty("Zero-based draft slot of a single team to report (optional, all teams when omitted)", false),
			},
		},
	}
}

// HandleTeamNeeds handles the get_team_needs tool call
func (h *DraftHandler) HandleTeamNeeds(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_team_needs")

	draftID, err := requiredString(args, "draft_id")
	if err != nil {
		return nil, err
	}
	team, set, err := intArg(args, "team_index")
	if err != nil {
		return nil, err
	}
	if !set {
		team = -1
	}

	report, err := h.service.TeamNeeds(draftID, stringArg(args, "league_id"), team)
	if err != nil {
		return errorResult(h.logger, "get_team_needs", "Failed to analyze team needs", err), nil
	}

	summary := fmt.Sprintf("%d teams analyzed after %d picks", len(report.Teams), report.Summary.TotalPicks)
	if report.OnTheClock != nil {
		summary += fmt.Sprintf(", pick %d is on the clock (team %d, round %d)",
			report.NextPick, report.OnTheClock.TeamIndex+1, report.OnTheClock.Round)
	}
	meta := degradedMetadata(report.Degradation, report.DraftID, report.LeagueID)
	meta.Source = "sleeper_api"
	return jsonResult(h.logger, report, summary, meta), nil
}

// RecommendationsTool returns the MCP tool definition for get_draft_recommendations
func (h *DraftHandler) RecommendationsTool() mcp.Tool {
	props := poolProperties()
	props["team_index"] = numberProperty("Zero-based draft slot of the team to advise (optional, the team on the clock when omitted)", false)
	props["limit"] = numberProperty("Number of recommendations to return (default 5)", false)
	return mcp.Tool{
		Name:        "get_draft_recommendations",
		Description: "Recommend the next pick for a team by weighing value over replacement against the team's positional needs and scarcity",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
		},
	}
}

// HandleRecommendations handles the get_draft_recommendations tool call
func (h *DraftHandler) HandleRecommendations(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_draft_recommendations")

	pool, err := parsePoolArgs(args)
	if err != nil {
		return nil, err
	}
	req := assistant.RecommendRequest{AvailableRequest: pool}
	if team, set, err := intArg(args, "team_index"); err != nil {
		return nil, err
	} else if set {
		req.TeamIndex = &team
	}

	report, err := h.service.Recommendations(req)
	if err != nil {
		return errorResult(h.logger, "get_draft_recommendations", "Failed to build recommendations", err), nil
	}

	summary := fmt.Sprintf("%d recommendations", len(report.Recommendations))
	if report.Team != nil {
		summary += " for " + report.Team.Name
	}
	if len(report.Recommendations) > 0 {
		top := report.Recommendations[0]
		summary += fmt.Sprintf(", top: %s (%s)", top.Player.Name, top.Reasoning)
	}
	return jsonResult(h.logger, report, summary, degradedMetadata(report.Degradation, report.DraftID, "")), nil
}

// DraftSeatTool returns the MCP tool definition for get_draft_seat
func (h *DraftHandler) DraftSeatTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_draft_seat",
		Description: "Map an overall pick number to the team and round that own it, for snake or linear drafts. Pass a draft_id to read the board size from Sleeper, or teams and rounds directly",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"draft_id":    stringProperty("The Sleeper draft ID (optional)", false),
				"league_id":   stringProperty("The Sleeper league ID (optional, sizes the board if the draft cannot be fetched)", false),
				"pick_number": numberProperty("Overall pick number starting at 1 (optional with draft_id: the next pick)", false),
				"teams":       numberProperty("Number of teams (without draft_id, or if the draft cannot be fetched)", false),
				"rounds":      numberProperty("Number of rounds (without draft_id, or if the draft cannot be fetched)", false),
				"draft_type":  stringProperty("'snake' or 'linear' (without draft_id, default snake)", false),
			},
		},
	}
}

// HandleDraftSeat handles the get_draft_seat tool call
func (h *DraftHandler) HandleDraftSeat(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_draft_seat")

	req := assistant.SeatRequest{
		DraftID:   stringArg(args, "draft_id"),
		LeagueID:  stringArg(args, "league_id"),
		DraftType: stringArg(args, "draft_type"),
	}
	for key, dst := range map[string]*int{
		"pick_number": &req.PickNumber,
		"teams":       &req.Teams,
		"rounds":      &req.Rounds,
	} {
		n, _, err := intArg(args, key)
		if err != nil {
			return nil, err
		}
		*dst = n
	}
	if req.DraftID == "" && (req.Teams == 0 || req.PickNumber == 0) {
		return nil, fmt.Errorf("either draft_id or pick_number and teams are required")
	}

	report, err := h.service.Seat(req)
	if err != nil {
		return errorResult(h.logger, "get_draft_seat", "Failed to locate pick", err), nil
	}

	summary := fmt.Sprintf("Pick %d belongs to %s in round %d", report.PickNumber, report.TeamName, report.Seat.Round)
	return jsonResult(h.logger, report, summary, degradedMetadata(report.Degradation, req.DraftID, req.LeagueID)), nil
}

// UserLeaguesTool returns the MCP tool definition for get_user_leagues
func (h *DraftHandler) UserLeaguesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_user_leagues",
		Description: "Find a Sleeper user's NFL leagues for a season along with their draft IDs",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": stringProperty("Sleeper username or user ID", true),
				"season":   stringProperty("Season year, e.g. '2025'", true),
			},
		},
	}
}

// HandleUserLeagues handles the get_user_leagues tool call
func (h *DraftHandler) HandleUserLeagues(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling get_user_leagues")

	username, err := requiredString(args, "username")
	if err != nil {
		return nil, err
	}
	season, err := requiredString(args, "season")
	if err != nil {
		return nil, err
	}

	report, err := h.service.Leagues(username, season)
	if err != nil {
		return errorResult(h.logger, "get_user_leagues", "Failed to get user leagues", err), nil
	}

	names := make([]string, 0, len(report.Leagues))
	for _, lg := range report.Leagues {
		names = append(names, lg.Name)
	}
	summary := fmt.Sprintf("%s has %d leagues in %s", report.DisplayName, len(report.Leagues), season)
	if len(names) > 0 {
		summary += ": " + strings.Join(names, ", ")
	}
	meta := degradedMetadata(report.Degradation, "", "")
	meta.Source = "sleeper_api"
	return jsonResult(h.logger, report, summary, meta), nil
}
