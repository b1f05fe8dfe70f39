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

// RankingsHandler handles ranking table and player matching tools
type RankingsHandler struct {
	service *assistant.Service
	logger  *logrus.Logger
}

// NewRankingsHandler creates a new rankings handler
func NewRankingsHandler(service *assistant.Service, logger *logrus.Logger) *RankingsHandler {
	return &RankingsHandler{service: service, logger: logger}
}

// ListRankingsTool returns the MCP tool definition for list_rankings
func (h *RankingsHandler) ListRankingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_rankings",
		Description: "List the loaded ranking tables with their format and player counts, including uploaded custom rankings",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleListRankings handles the list_rankings tool call
func (h *RankingsHandler) HandleListRankings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling list_rankings")

	report := h.service.ListRankings()
	summary := fmt.Sprintf("%d ranking tables loaded", len(report.Tables))
	return jsonResult(h.logger, report, summary, sleeper.Metadata{}), nil
}

// RefreshRankingsTool returns the MCP tool definition for refresh_rankings
func (h *RankingsHandler) RefreshRankingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "refresh_rankings",
		Description: "Reload ranking tables from the rankings directory and the custom rankings database",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// HandleRefreshRankings handles the refresh_rankings tool call
func (h *RankingsHandler) HandleRefreshRankings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.Info("Handling refresh_rankings")

	report, err := h.service.RefreshRankings(ctx)
	if err != nil {
		return errorResult(h.logger, "refresh_rankings", "Failed to reload rankings", err), nil
	}
	summary := fmt.Sprintf("Reloaded %d ranking tables", len(report.Tables))
	return jsonResult(h.logger, report, summary, sleeper.Metadata{}), nil
}

// UploadRankingTool returns the MCP tool definition for upload_custom_ranking
func (h *RankingsHandler) UploadRankingTool() mcp.Tool {
	return mcp.Tool{
		Name:        "upload_custom_ranking",
		Description: "Store a custom ranking sheet. The content is CSV with a header row naming at least the player and position columns, or an HTML cheat sheet table",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name":    stringProperty("Unique name for the ranking", true),
				"content": stringProperty("The ranking sheet contents", true),
				"format":  stringProperty("Format the ranking applies to, e.g. 'ppr_superflex' (optional; without it the table is only used by table_id)", false),
				"html": map[string]interface{}{
					"type":        "boolean",
					"description": "Parse content as an HTML table instead of CSV",
					"required":    false,
				},
			},
		},
	}
}

// HandleUploadRanking handles the upload_custom_ranking tool call
func (h *RankingsHandler) HandleUploadRanking(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	name, err := requiredString(args, "name")
	if err != nil {
		return nil, err
	}
	content, ok := args["content"].(string)
	if !ok || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required and must be a string")
	}
	h.logger.WithFields(logrus.Fields{"name": name, "bytes": len(content)}).Info("Handling upload_custom_ranking")

	report, err := h.service.ImportRanking(ctx, assistant.ImportRequest{
		Name:   name,
		Format: stringArg(args, "format"),
		HTML:   boolArg(args, "html"),
		Body:   strings.NewReader(content),
	})
	if err != nil {
		return errorResult(h.logger, "upload_custom_ranking", "Failed to store ranking", err), nil
	}

	summary := fmt.Sprintf("Stored '%s' as %s with %d players (%d rows rejected)",
		report.Ranking.Name, report.Ranking.TableID, report.Ranking.Players, report.Rejected)
	return jsonResult(h.logger, report, summary, sleeper.Metadata{}), nil
}

// DeleteRankingTool returns the MCP tool definition for delete_custom_ranking
func (h *RankingsHandler) DeleteRankingTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_custom_ranking",
		Description: "Delete an uploaded custom ranking by its table ID",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"table_id": stringProperty("Table ID of the custom ranking, e.g. 'custom-3'", true),
			},
		},
	}
}

// HandleDeleteRanking handles the delete_custom_ranking tool call
func (h *RankingsHandler) HandleDeleteRanking(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling delete_custom_ranking")

	tableID, err := requiredString(args, "table_id")
	if err != nil {
		return nil, err
	}
	if err := h.service.DeleteRanking(ctx, tableID); err != nil {
		return errorResult(h.logger, "delete_custom_ranking", "Failed to delete ranking", err), nil
	}
	return jsonResult(h.logger, map[string]string{"deleted": tableID}, "Deleted "+tableID, sleeper.Metadata{}), nil
}

// MatchPlayerTool returns the MCP tool definition for match_player_name
func (h *RankingsHandler) MatchPlayerTool() mcp.Tool {
	return mcp.Tool{
		Name:        "match_player_name",
		Description: "Resolve a player name as written on a ranking sheet to a Sleeper player ID, or find a Sleeper player's entry in a ranking table",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name":      stringProperty("Player name to resolve", false),
				"position":  stringProperty("Position hint for disambiguation", false),
				"team":      stringProperty("NFL team hint for disambiguation", false),
				"player_id": stringProperty("Sleeper player ID for the reverse lookup", false),
				"format":    stringProperty("Ranking format for the reverse lookup, e.g. 'ppr_standard'", false),
				"table_id":  stringProperty("Ranking table ID for the reverse lookup", false),
			},
		},
	}
}

// HandleMatchPlayer handles the match_player_name tool call
func (h *RankingsHandler) HandleMatchPlayer(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	h.logger.WithField("args", args).Info("Handling match_player_name")

	req := assistant.MatchRequest{
		Name:     stringArg(args, "name"),
		Position: stringArg(args, "position"),
		Team:     stringArg(args, "team"),
		PlayerID: stringArg(args, "player_id"),
		Format:   stringArg(args, "format"),
		TableID:  stringArg(args, "table_id"),
	}
	if req.Name == "" && req.PlayerID == "" {
		return nil, fmt.Errorf("name or player_id is required")
	}

	report, err := h.service.MatchName(req)
	if err != nil {
		return errorResult(h.logger, "match_player_name", "Failed to match player", err), nil
	}

	var summary string
	switch {
	case report.Player != nil && report.Resolution.Resolved():
		summary = fmt.Sprintf("Matched %s (%s, %s) by %s match", report.Player.DisplayName, report.Player.Position, report.Resolution.PlayerID, report.Resolution.Method)
	case req.PlayerID != "":
		summary = fmt.Sprintf("No entry for player %s in table '%s'", req.PlayerID, report.Table)
	default:
		summary = fmt.Sprintf("No unique Sleeper player matches '%s'", req.Name)
	}
	return jsonResult(h.logger, report, summary, sleeper.Metadata{}), nil
}
