package trip

import (
	"context"
	"testing"

	"github.com/viajo-ai/viajo/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database, "")
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("created trip not found")
	}

	if got.Status != StatusDraft {
		t.Errorf("status = %s, want DRAFT", got.Status)
	}
	if got.CurrentPhase != PhaseKnowledge {
		t.Errorf("phase = %s, want KNOWLEDGE", got.CurrentPhase)
	}
	if got.KnowledgeScore != 0 {
		t.Errorf("score = %d, want 0", got.KnowledgeScore)
	}
	if !got.Dates.IsFlexible {
		t.Error("dates should default to flexible")
	}
	if got.Budget.Currency != "BRL" {
		t.Errorf("currency = %s, want BRL", got.Budget.Currency)
	}
	if got.Budget.Flexibility != "moderate" {
		t.Errorf("budget flexibility = %s, want moderate", got.Budget.Flexibility)
	}
	if got.Preferences.PacePreference != "moderate" {
		t.Errorf("pace = %s, want moderate", got.Preferences.PacePreference)
	}
}

func TestCreateSeedsNameAndDestination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "Honeymoon", "Paris")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v (trip=%v)", err, got)
	}
	if got.Name != "Honeymoon" {
		t.Errorf("name = %q, want Honeymoon", got.Name)
	}
	if len(got.Destinations) != 1 || got.Destinations[0].Name != "Paris" {
		t.Fatalf("destinations = %+v, want one entry named Paris", got.Destinations)
	}
	if !got.Destinations[0].IsPrimary || got.Destinations[0].Priority != 1 {
		t.Errorf("seeded destination should be primary with priority 1, got %+v", got.Destinations[0])
	}
	// name (5) + destinations (25)
	if got.KnowledgeScore != 30 {
		t.Errorf("seeded score = %d, want 30", got.KnowledgeScore)
	}
}

func TestCreateSetsActiveTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	activeID, err := store.ActiveTripID(ctx, "user-1")
	if err != nil {
		t.Fatalf("ActiveTripID: %v", err)
	}
	if activeID != created.ID {
		t.Errorf("active trip = %s, want %s", activeID, created.ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetByID(context.Background(), "trip_missing")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing trip, got %+v", got)
	}
}

func TestGetContextNewUser(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetContext(context.Background(), "stranger", "")
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil context for a new user, got %+v", got)
	}
}

func TestGetContextResolvesActiveTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetContext(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("GetContext resolved %v, want trip %s", got, created.ID)
	}
}

func TestSetActiveTripIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.SetActiveTrip(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("first SetActiveTrip: %v", err)
	}
	if err := store.SetActiveTrip(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("second SetActiveTrip: %v", err)
	}

	activeID, err := store.ActiveTripID(ctx, "user-1")
	if err != nil {
		t.Fatalf("ActiveTripID: %v", err)
	}
	if activeID != created.ID {
		t.Errorf("active trip = %s, want %s", activeID, created.ID)
	}
}

func TestSetActiveTripLastWriteWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	activeID, err := store.ActiveTripID(ctx, "user-1")
	if err != nil {
		t.Fatalf("ActiveTripID: %v", err)
	}
	if activeID != second.ID {
		t.Errorf("active trip = %s, want the later trip %s (first was %s)", activeID, second.ID, first.ID)
	}
}

func TestUpdateFieldDestinationThenRescore(t *testing.T) {
	// Scenario: destination on an otherwise-empty trip scores 25.
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.UpdateField(ctx, created.ID, FieldDestination, "Paris"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	// Rescoring is separate from the field write.
	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.KnowledgeScore != 0 {
		t.Errorf("score before recompute = %d, want 0", got.KnowledgeScore)
	}

	score, err := store.RecomputeScore(ctx, created.ID)
	if err != nil {
		t.Fatalf("RecomputeScore: %v", err)
	}
	if score != 25 {
		t.Errorf("score = %d, want 25", score)
	}
}

func TestUpdateFieldProgressionToPlanningGate(t *testing.T) {
	// Scenario: destination(25) + startDate(20) = 45, + travelers(20) = 65,
	// at which point the planning gate opens.
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	steps := []struct {
		field Field
		value any
		want  int
	}{
		{FieldDestination, "Paris", 25},
		{FieldStartDate, "2025-06-01", 45},
		{FieldTravelersCount, "2", 65},
	}
	for _, step := range steps {
		if err := store.UpdateField(ctx, created.ID, step.field, step.value); err != nil {
			t.Fatalf("UpdateField(%s): %v", step.field, err)
		}
		score, err := store.RecomputeScore(ctx, created.ID)
		if err != nil {
			t.Fatalf("RecomputeScore after %s: %v", step.field, err)
		}
		if score != step.want {
			t.Errorf("score after %s = %d, want %d", step.field, score, step.want)
		}
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !CanAdvanceToPlanning(got) {
		t.Error("expected planning gate open at score 65 with destination, date and travelers")
	}
}

func TestUpdateFieldDestinationAppends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, name := range []string{"Paris", "Paris", "Lyon"} {
		if err := store.UpdateField(ctx, created.ID, FieldDestination, name); err != nil {
			t.Fatalf("UpdateField: %v", err)
		}
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	// Destinations are a log of mentions: no dedup.
	if len(got.Destinations) != 3 {
		t.Errorf("destinations = %d entries, want 3", len(got.Destinations))
	}
}

func TestUpdateFieldListAppendAndReplace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// tripStyle accepts a scalar or a list and always appends.
	if err := store.UpdateField(ctx, created.ID, FieldTripStyle, "relaxation"); err != nil {
		t.Fatalf("UpdateField tripStyle: %v", err)
	}
	if err := store.UpdateField(ctx, created.ID, FieldTripStyle, []any{"cultural", "gastronomy"}); err != nil {
		t.Fatalf("UpdateField tripStyle list: %v", err)
	}

	// foodRestrictions replaces.
	if err := store.UpdateField(ctx, created.ID, FieldFoodRestrictions, []any{"vegetarian"}); err != nil {
		t.Fatalf("UpdateField foodRestrictions: %v", err)
	}
	if err := store.UpdateField(ctx, created.ID, FieldFoodRestrictions, []any{"vegan", "no nuts"}); err != nil {
		t.Fatalf("UpdateField foodRestrictions replace: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Preferences.Style) != 3 {
		t.Errorf("style = %v, want 3 appended entries", got.Preferences.Style)
	}
	if len(got.Preferences.FoodRestrictions) != 2 || got.Preferences.FoodRestrictions[0] != "vegan" {
		t.Errorf("foodRestrictions = %v, want replaced list [vegan, no nuts]", got.Preferences.FoodRestrictions)
	}
}

func TestUpdateFieldUnknownIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.UpdateField(ctx, created.ID, Field("favoriteColor"), "blue"); err != nil {
		t.Errorf("unknown field should not error, got %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.CollectedFields) != 0 {
		t.Errorf("unknown field recorded in collectedFields: %v", got.CollectedFields)
	}
}

func TestUpdateFieldNumericParsing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.UpdateField(ctx, created.ID, FieldDurationDays, "10"); err != nil {
		t.Fatalf("UpdateField durationDays: %v", err)
	}
	if err := store.UpdateField(ctx, created.ID, FieldTotalBudget, "12500.50"); err != nil {
		t.Fatalf("UpdateField totalBudget: %v", err)
	}
	if err := store.UpdateField(ctx, created.ID, FieldAdultsCount, float64(2)); err != nil {
		t.Fatalf("UpdateField adultsCount: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Dates.DurationDays != 10 {
		t.Errorf("durationDays = %d, want 10", got.Dates.DurationDays)
	}
	if got.Budget.TotalAmount != 12500.50 {
		t.Errorf("totalAmount = %v, want 12500.50", got.Budget.TotalAmount)
	}
	if got.Travelers.Adults != 2 {
		t.Errorf("adults = %d, want 2", got.Travelers.Adults)
	}
}

func TestUpdatePhase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.UpdatePhase(ctx, created.ID, PhasePlanning); err != nil {
		t.Fatalf("UpdatePhase: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentPhase != PhasePlanning {
		t.Errorf("phase = %s, want PLANNING", got.CurrentPhase)
	}

	if err := store.UpdatePhase(ctx, "trip_missing", PhaseBooking); err == nil {
		t.Error("expected error updating phase of a missing trip")
	}
}

func TestRecordInteraction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.RecordInteraction(ctx, created.ID); err != nil {
		t.Fatalf("RecordInteraction: %v", err)
	}
	if err := store.RecordInteraction(ctx, created.ID); err != nil {
		t.Fatalf("RecordInteraction: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.InteractionCount != 2 {
		t.Errorf("interactionCount = %d, want 2", got.InteractionCount)
	}
}

func TestListByOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, "user-1", "A", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, "user-1", "B", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, "user-2", "C", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	trips, err := store.ListByOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(trips) != 2 {
		t.Errorf("got %d trips for user-1, want 2", len(trips))
	}
}
