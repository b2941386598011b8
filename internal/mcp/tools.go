package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getTripContextTool defines the get_trip_context MCP tool.
var getTripContextTool = mcp.NewTool("get_trip_context",
	mcp.WithDescription("Get the current state of a user's trip: destinations, dates, travelers, budget, knowledge score and what is still missing."),
	mcp.WithString("userId",
		mcp.Required(),
		mcp.Description("The user whose trip to look up"),
	),
	mcp.WithString("tripId",
		mcp.Description("A specific trip to look up; defaults to the user's active trip"),
	),
)

// saveTripInfoTool defines the save_trip_info MCP tool.
var saveTripInfoTool = mcp.NewTool("save_trip_info",
	mcp.WithDescription("Save one piece of trip information extracted from the conversation. Creates a trip automatically if the user has none."),
	mcp.WithString("userId",
		mcp.Required(),
		mcp.Description("The user the information belongs to"),
	),
	mcp.WithString("tripId",
		mcp.Description("The trip to update; defaults to the user's active trip"),
	),
	mcp.WithString("field",
		mcp.Required(),
		mcp.Description("Which field to update"),
		mcp.Enum("destination", "startDate", "endDate", "durationDays",
			"travelersCount", "adultsCount", "childrenCount",
			"totalBudget", "perPersonBudget", "tripStyle", "interests",
			"accommodationType", "foodRestrictions", "specialOccasion", "tripName"),
	),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The value to store; JSON is accepted for lists and numbers"),
	),
)

// createTripTool defines the create_trip MCP tool.
var createTripTool = mcp.NewTool("create_trip",
	mcp.WithDescription("Create a new trip for a user and make it their active trip."),
	mcp.WithString("userId",
		mcp.Required(),
		mcp.Description("The trip owner"),
	),
	mcp.WithString("name",
		mcp.Description("Optional trip name"),
	),
	mcp.WithString("initialDestination",
		mcp.Description("Optional first destination"),
	),
)

// updateTripPhaseTool defines the update_trip_phase MCP tool.
var updateTripPhaseTool = mcp.NewTool("update_trip_phase",
	mcp.WithDescription("Advance a trip to a new phase. Moving to PLANNING requires enough collected information."),
	mcp.WithString("tripId",
		mcp.Required(),
		mcp.Description("The trip to advance"),
	),
	mcp.WithString("newPhase",
		mcp.Required(),
		mcp.Description("The target phase"),
		mcp.Enum("KNOWLEDGE", "PLANNING", "BOOKING", "CONCIERGE", "MEMORIES"),
	),
)

// getUserProfileTool defines the get_user_profile MCP tool.
var getUserProfileTool = mcp.NewTool("get_user_profile",
	mcp.WithDescription("Get a user's standing profile and preferences, with sensible defaults for new users."),
	mcp.WithString("userId",
		mcp.Required(),
		mcp.Description("The user to look up"),
	),
)
