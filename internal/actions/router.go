// Package actions exposes trip store operations as named actions for a
// tool-calling agent. Every invocation resolves to a structured result
// with a status code; errors never escape the router.
package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/viajo-ai/viajo/internal/profile"
	"github.com/viajo-ai/viajo/internal/trip"
)

// Action identifiers.
const (
	ActionGetTripContext  = "get-trip-context"
	ActionSaveTripInfo    = "save-trip-info"
	ActionCreateTrip      = "create-trip"
	ActionUpdateTripPhase = "update-trip-phase"
	ActionGetUserProfile  = "get-user-profile"
)

// Params is the flat parameter bag an action receives.
type Params map[string]string

// Result is the structured outcome of an action invocation.
type Result struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// Router dispatches action invocations to the stores.
type Router struct {
	trips    *trip.Store
	profiles *profile.Store
}

// NewRouter creates an action router.
func NewRouter(trips *trip.Store, profiles *profile.Store) *Router {
	return &Router{trips: trips, profiles: profiles}
}

// Invoke runs the named action with the given parameters. Unknown
// actions produce a not-found result; internal failures a generic 500.
func (r *Router) Invoke(ctx context.Context, action string, params Params) Result {
	switch action {
	case ActionGetTripContext:
		return r.getTripContext(ctx, params)
	case ActionSaveTripInfo:
		return r.saveTripInfo(ctx, params)
	case ActionCreateTrip:
		return r.createTrip(ctx, params)
	case ActionUpdateTripPhase:
		return r.updateTripPhase(ctx, params)
	case ActionGetUserProfile:
		return r.getUserProfile(ctx, params)
	case "search-weather", "search-places":
		return Result{StatusCode: 501, Body: map[string]any{
			"error":   "not implemented yet",
			"message": "this capability arrives in a later phase",
		}}
	default:
		log.Printf("actions: unknown action %q", action)
		return Result{StatusCode: 404, Body: map[string]any{"error": "unknown action: " + action}}
	}
}

func badRequest(msg string) Result {
	return Result{StatusCode: 400, Body: map[string]any{"error": msg}}
}

func internalError(op string, err error) Result {
	log.Printf("actions: %s: %v", op, err)
	return Result{StatusCode: 500, Body: map[string]any{"error": "internal server error"}}
}

func (r *Router) getTripContext(ctx context.Context, params Params) Result {
	userID := params["userId"]
	if userID == "" {
		return badRequest("userId is required")
	}

	t, err := r.trips.GetContext(ctx, userID, params["tripId"])
	if err != nil {
		return internalError("get-trip-context", err)
	}

	if t == nil {
		return Result{StatusCode: 200, Body: map[string]any{
			"tripId":         nil,
			"phase":          string(trip.PhaseKnowledge),
			"status":         "NEW_USER",
			"knowledgeScore": 0,
			"destinations":   []trip.Destination{},
			"dates":          trip.Dates{},
			"travelers":      trip.Travelers{},
			"budget":         trip.Budget{},
			"preferences":    trip.Preferences{},
			"pendingQuestions": []string{
				"Where would you like to travel?",
				"When are you planning to go?",
				"How many people are going?",
			},
			"summary": "New user with no trip in planning. Start by collecting the basics.",
		}}
	}

	return Result{StatusCode: 200, Body: map[string]any{
		"tripId":           t.ID,
		"phase":            string(t.CurrentPhase),
		"status":           string(t.Status),
		"knowledgeScore":   t.KnowledgeScore,
		"destinations":     t.Destinations,
		"dates":            t.Dates,
		"travelers":        t.Travelers,
		"budget":           t.Budget,
		"preferences":      t.Preferences,
		"pendingQuestions": trip.PendingQuestions(t),
		"summary":          summarize(t),
	}}
}

// summarize produces a one-line textual digest of the trip for the
// agent's benefit.
func summarize(t *trip.Trip) string {
	var parts []string
	if len(t.Destinations) > 0 {
		names := make([]string, len(t.Destinations))
		for i, d := range t.Destinations {
			names[i] = d.Name
		}
		parts = append(parts, "Destination: "+strings.Join(names, ", "))
	}
	if t.Dates.StartDate != "" {
		s := "Dates: " + t.Dates.StartDate
		if t.Dates.EndDate != "" {
			s += " to " + t.Dates.EndDate
		}
		parts = append(parts, s)
	}
	if t.Travelers.Count > 0 {
		parts = append(parts, fmt.Sprintf("Travelers: %d", t.Travelers.Count))
	}
	if t.Budget.TotalAmount > 0 {
		parts = append(parts, fmt.Sprintf("Budget: %s %.2f", t.Budget.Currency, t.Budget.TotalAmount))
	}
	if len(parts) == 0 {
		return "Trip created but no information collected yet."
	}
	return fmt.Sprintf("Trip in planning: %s. Score: %d%%", strings.Join(parts, ". "), t.KnowledgeScore)
}

func (r *Router) saveTripInfo(ctx context.Context, params Params) Result {
	userID := params["userId"]
	field := params["field"]
	valueStr, hasValue := params["value"]
	if userID == "" || field == "" || !hasValue {
		return badRequest("userId, field, and value are required")
	}

	// The raw value is JSON when possible, a literal string otherwise.
	var value any
	if err := json.Unmarshal([]byte(valueStr), &value); err != nil {
		value = valueStr
	}

	tripID := params["tripId"]
	if tripID == "" {
		activeID, err := r.trips.ActiveTripID(ctx, userID)
		if err != nil {
			return internalError("save-trip-info", err)
		}
		tripID = activeID
	}
	if tripID == "" {
		created, err := r.trips.Create(ctx, userID, "", "")
		if err != nil {
			return internalError("save-trip-info", err)
		}
		tripID = created.ID
	}

	if err := r.trips.UpdateField(ctx, tripID, trip.Field(field), value); err != nil {
		return internalError("save-trip-info", err)
	}
	if _, err := r.trips.RecomputeScore(ctx, tripID); err != nil {
		return internalError("save-trip-info", err)
	}

	t, err := r.trips.GetByID(ctx, tripID)
	if err != nil || t == nil {
		return internalError("save-trip-info", err)
	}

	var nextQuestion any
	if pending := trip.PendingQuestions(t); len(pending) > 0 {
		nextQuestion = pending[0]
	}

	return Result{StatusCode: 200, Body: map[string]any{
		"success":               true,
		"tripId":                tripID,
		"updatedField":          field,
		"newKnowledgeScore":     t.KnowledgeScore,
		"canAdvanceToPlanning":  trip.CanAdvanceToPlanning(t),
		"nextSuggestedQuestion": nextQuestion,
	}}
}

func (r *Router) createTrip(ctx context.Context, params Params) Result {
	userID := params["userId"]
	if userID == "" {
		return badRequest("userId is required")
	}

	t, err := r.trips.Create(ctx, userID, params["name"], params["initialDestination"])
	if err != nil {
		return internalError("create-trip", err)
	}

	return Result{StatusCode: 201, Body: map[string]any{
		"tripId":    t.ID,
		"status":    string(t.Status),
		"phase":     string(t.CurrentPhase),
		"createdAt": t.CreatedAt,
	}}
}

func (r *Router) updateTripPhase(ctx context.Context, params Params) Result {
	tripID := params["tripId"]
	newPhase := trip.Phase(params["newPhase"])
	if tripID == "" || newPhase == "" {
		return badRequest("tripId and newPhase are required")
	}
	if !trip.ValidPhase(newPhase) {
		return badRequest("invalid phase: " + string(newPhase))
	}

	t, err := r.trips.GetByID(ctx, tripID)
	if err != nil {
		return internalError("update-trip-phase", err)
	}
	if t == nil {
		return Result{StatusCode: 404, Body: map[string]any{"error": "trip not found"}}
	}
	previous := t.CurrentPhase

	if newPhase == trip.PhasePlanning && !trip.CanAdvanceToPlanning(t) {
		return Result{StatusCode: 400, Body: map[string]any{
			"error":        "cannot advance to PLANNING phase",
			"message":      "insufficient information collected",
			"minimumScore": trip.MinimumKnowledgeScore,
			"currentScore": t.KnowledgeScore,
		}}
	}

	if err := r.trips.UpdatePhase(ctx, tripID, newPhase); err != nil {
		return internalError("update-trip-phase", err)
	}

	return Result{StatusCode: 200, Body: map[string]any{
		"success":       true,
		"tripId":        tripID,
		"previousPhase": string(previous),
		"currentPhase":  string(newPhase),
		"message":       "trip advanced from " + string(previous) + " to " + string(newPhase),
	}}
}

func (r *Router) getUserProfile(ctx context.Context, params Params) Result {
	userID := params["userId"]
	if userID == "" {
		return badRequest("userId is required")
	}

	p, err := r.profiles.Get(ctx, userID)
	if err != nil {
		return internalError("get-user-profile", err)
	}
	return Result{StatusCode: 200, Body: p}
}
