package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/viajo-ai/viajo/internal/actions"
)

// invoke runs an action and converts its result into a tool result.
// Status codes at or above 400 come back as tool errors so the agent
// can recover; everything else is the JSON body as text.
func (s *Server) invoke(ctx context.Context, action string, params actions.Params) (*mcp.CallToolResult, error) {
	result := s.router.Invoke(ctx, action, params)

	body, err := json.Marshal(result.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	if result.StatusCode >= 400 {
		return mcp.NewToolResultError(string(body)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) handleGetTripContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: userId"), nil
	}
	return s.invoke(ctx, actions.ActionGetTripContext, actions.Params{
		"userId": userID,
		"tripId": request.GetString("tripId", ""),
	})
}

func (s *Server) handleSaveTripInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: userId"), nil
	}
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: field"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}
	return s.invoke(ctx, actions.ActionSaveTripInfo, actions.Params{
		"userId": userID,
		"tripId": request.GetString("tripId", ""),
		"field":  field,
		"value":  value,
	})
}

func (s *Server) handleCreateTrip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: userId"), nil
	}
	return s.invoke(ctx, actions.ActionCreateTrip, actions.Params{
		"userId":             userID,
		"name":               request.GetString("name", ""),
		"initialDestination": request.GetString("initialDestination", ""),
	})
}

func (s *Server) handleUpdateTripPhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tripID, err := request.RequireString("tripId")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: tripId"), nil
	}
	newPhase, err := request.RequireString("newPhase")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: newPhase"), nil
	}
	return s.invoke(ctx, actions.ActionUpdateTripPhase, actions.Params{
		"tripId":   tripID,
		"newPhase": newPhase,
	})
}

func (s *Server) handleGetUserProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := request.RequireString("userId")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: userId"), nil
	}
	return s.invoke(ctx, actions.ActionGetUserProfile, actions.Params{"userId": userID})
}
