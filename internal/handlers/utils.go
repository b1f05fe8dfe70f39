package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/assistant"
	"github.com/sam-maryland/sleeper-draft-assistant/internal/sleeper"
	"github.com/sirupsen/logrus"
)

const sourceDraftEngine = "draft_engine"

// formatJSONResponse converts a response struct to a formatted JSON string
func formatJSONResponse(response interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}

	return string(jsonBytes), nil
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
		IsError: isError,
	}
}

// errorResult reports a failed call back to the model instead of the transport.
func errorResult(logger *logrus.Logger, tool, message string, err error) *mcp.CallToolResult {
	logger.WithError(err).WithField("tool", tool).Error(message)
	return textResult(fmt.Sprintf("%s: %s", message, err.Error()), true)
}

// jsonResult wraps data in the standard response envelope.
func jsonResult(logger *logrus.Logger, data interface{}, summary string, meta sleeper.Metadata) *mcp.CallToolResult {
	meta.Timestamp = time.Now()
	if meta.Source == "" {
		meta.Source = sourceDraftEngine
	}
	response := sleeper.APIResponse{
		Success:  true,
		Data:     data,
		Summary:  summary,
		Metadata: meta,
	}

	jsonResponse, err := formatJSONResponse(response)
	if err != nil {
		logger.WithError(err).Error("Failed to format response")
		return textResult(fmt.Sprintf("Error formatting response: %s", err.Error()), true)
	}
	return textResult(jsonResponse, false)
}

func degradedMetadata(d assistant.Degradation, draftID, leagueID string) sleeper.Metadata {
	return sleeper.Metadata{
		DraftID:      draftID,
		LeagueID:     leagueID,
		FallbackMode: d.Degraded,
		Notes:        d.Notes,
	}
}

// stringArg reads an optional string argument.
func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// requiredString reads a string argument that must be present.
func requiredString(args map[string]interface{}, key string) (string, error) {
	v := stringArg(args, key)
	if v == "" {
		return "", fmt.Errorf("%s is required and must be a string", key)
	}
	return v, nil
}

// intArg reads a numeric argument. JSON numbers arrive as float64; numeric
// strings are accepted too.
func intArg(args map[string]interface{}, key string) (int, bool, error) {
	switch v := args[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return int(v), true, nil
	case int:
		return v, true, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false, fmt.Errorf("%s must be a number", key)
		}
		return n, true, nil
	}
	return 0, false, fmt.Errorf("%s must be a number", key)
}

func boolArg(args map[string]interface{}, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func stringProperty(description string, required bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"required":    required,
	}
}

func numberProperty(description string, required bool) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
		"required":    required,
	}
}
