package trip

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/viajo-ai/viajo/internal/db"
)

const defaultCurrency = "BRL"

// Store is the sole authority for creating and mutating trips and the
// per-user active-trip pointer.
type Store struct {
	db       *db.DB
	currency string
}

// NewStore creates a new trip store. currency seeds the budget currency of
// new trips; empty means BRL.
func NewStore(database *db.DB, currency string) *Store {
	if currency == "" {
		currency = defaultCurrency
	}
	return &Store{db: database, currency: currency}
}

// newEmptyTrip builds a trip with all substructures at their defaults.
func (s *Store) newEmptyTrip(ownerID string, now time.Time) *Trip {
	return &Trip{
		ID:           "trip_" + uuid.New().String(),
		OwnerID:      ownerID,
		Status:       StatusDraft,
		CurrentPhase: PhaseKnowledge,
		Destinations: []Destination{},
		Dates: Dates{
			IsFlexible: true,
		},
		Travelers: Travelers{
			Travelers: []Traveler{},
		},
		Budget: Budget{
			Currency:    s.currency,
			Flexibility: "moderate",
		},
		Preferences: Preferences{
			Style:            []string{},
			Accommodation:    []string{},
			Interests:        []string{},
			MustSee:          []string{},
			MustAvoid:        []string{},
			PacePreference:   "moderate",
			FoodPriority:     "medium",
			ShoppingPriority: "low",
		},
		CollectedFields: []string{},
		LastInteraction: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Create builds and persists a new trip for ownerID, optionally seeded with
// a name and a first destination, and records it as the owner's active trip.
func (s *Store) Create(ctx context.Context, ownerID, name, initialDestination string) (*Trip, error) {
	now := time.Now().UTC()
	t := s.newEmptyTrip(ownerID, now)

	if name != "" {
		t.Name = name
		markCollected(t, FieldTripName)
	}
	if initialDestination != "" {
		t.Destinations = append(t.Destinations, Destination{
			ID:        "dest_" + uuid.New().String(),
			Name:      initialDestination,
			IsPrimary: true,
			Priority:  1,
		})
		markCollected(t, FieldDestination)
	}
	t.KnowledgeScore = CalculateKnowledgeScore(t)

	cols, err := marshalTripColumns(t)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO trips (id, owner_id, name, status, current_phase,
		    destinations, dates, travelers, budget, preferences, special_occasions, bookings,
		    knowledge_score, collected_fields, last_interaction, interaction_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Name, t.Status, t.CurrentPhase,
		cols.destinations, cols.dates, cols.travelers, cols.budget, cols.preferences, cols.specialOccasions, cols.bookings,
		t.KnowledgeScore, cols.collectedFields, t.LastInteraction, t.InteractionCount, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting trip: %w", err)
	}

	if err := s.SetActiveTrip(ctx, ownerID, t.ID); err != nil {
		return nil, err
	}

	return t, nil
}

// GetByID retrieves a trip by its ID. Returns (nil, nil) when not found.
func (s *Store) GetByID(ctx context.Context, id string) (*Trip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, status, current_phase,
		    destinations, dates, travelers, budget, preferences, special_occasions, itinerary, bookings,
		    knowledge_score, collected_fields, last_interaction, interaction_count, created_at, updated_at
		 FROM trips WHERE id = ?`, id,
	)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting trip: %w", err)
	}
	return t, nil
}

// GetContext resolves the trip the conversation concerns: a direct lookup
// when tripID is given, otherwise the owner's active trip. Returns
// (nil, nil) when nothing is found, which callers treat as a new user.
func (s *Store) GetContext(ctx context.Context, ownerID, tripID string) (*Trip, error) {
	if tripID != "" {
		return s.GetByID(ctx, tripID)
	}

	activeID, err := s.ActiveTripID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if activeID == "" {
		return nil, nil
	}
	return s.GetByID(ctx, activeID)
}

// ActiveTripID returns the user's active trip pointer, or "" if none is set.
func (s *Store) ActiveTripID(ctx context.Context, userID string) (string, error) {
	var tripID string
	err := s.db.QueryRowContext(ctx,
		`SELECT trip_id FROM active_trips WHERE user_id = ?`, userID,
	).Scan(&tripID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting active trip pointer: %w", err)
	}
	return tripID, nil
}

// SetActiveTrip records tripID as the user's active trip. Idempotent
// overwrite: the latest call wins.
func (s *Store) SetActiveTrip(ctx context.Context, userID, tripID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO active_trips (user_id, trip_id, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET trip_id = excluded.trip_id, updated_at = excluded.updated_at`,
		userID, tripID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting active trip: %w", err)
	}
	return nil
}

// UpdateField applies a single field update to the trip. Unknown field names
// are logged and ignored so that new field types introduced on the
// conversation side degrade gracefully. Rescoring is the caller's job
// (RecomputeScore), so that a burst of updates costs one score write.
func (s *Store) UpdateField(ctx context.Context, tripID string, field Field, value any) error {
	t, err := s.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("trip not found: %s", tripID)
	}

	known, err := ApplyField(t, field, value)
	if err != nil {
		return err
	}
	if !known {
		log.Printf("warning: unknown trip field %q ignored (trip=%s)", field, tripID)
		return nil
	}

	t.UpdatedAt = time.Now().UTC()
	cols, err := marshalTripColumns(t)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE trips SET name = ?, destinations = ?, dates = ?, travelers = ?, budget = ?,
		    preferences = ?, special_occasions = ?, collected_fields = ?, updated_at = ?
		 WHERE id = ?`,
		t.Name, cols.destinations, cols.dates, cols.travelers, cols.budget,
		cols.preferences, cols.specialOccasions, cols.collectedFields, t.UpdatedAt, tripID,
	)
	if err != nil {
		return fmt.Errorf("updating trip field: %w", err)
	}
	return nil
}

// RecomputeScore recalculates the knowledge score from the latest persisted
// state and writes it back along with updatedAt.
func (s *Store) RecomputeScore(ctx context.Context, tripID string) (int, error) {
	t, err := s.GetByID(ctx, tripID)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, fmt.Errorf("trip not found: %s", tripID)
	}

	score := CalculateKnowledgeScore(t)
	_, err = s.db.ExecContext(ctx,
		`UPDATE trips SET knowledge_score = ?, updated_at = ? WHERE id = ?`,
		score, time.Now().UTC(), tripID,
	)
	if err != nil {
		return 0, fmt.Errorf("persisting knowledge score: %w", err)
	}
	return score, nil
}

// UpdatePhase sets the trip's conversational phase. Gating (the
// KNOWLEDGE to PLANNING transition) is enforced by callers; later
// transitions are caller-driven.
func (s *Store) UpdatePhase(ctx context.Context, tripID string, phase Phase) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE trips SET current_phase = ?, updated_at = ? WHERE id = ?`,
		phase, time.Now().UTC(), tripID,
	)
	if err != nil {
		return fmt.Errorf("updating trip phase: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("trip not found: %s", tripID)
	}
	return nil
}

// UpdateStatus sets the trip's lifecycle status.
func (s *Store) UpdateStatus(ctx context.Context, tripID string, status Status) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE trips SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), tripID,
	)
	if err != nil {
		return fmt.Errorf("updating trip status: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("trip not found: %s", tripID)
	}
	return nil
}

// RecordInteraction bumps the trip's interaction bookkeeping.
func (s *Store) RecordInteraction(ctx context.Context, tripID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE trips SET last_interaction = ?, interaction_count = interaction_count + 1 WHERE id = ?`,
		time.Now().UTC(), tripID,
	)
	if err != nil {
		return fmt.Errorf("recording interaction: %w", err)
	}
	return nil
}

// ListByOwner returns all trips owned by ownerID, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, name, status, current_phase,
		    destinations, dates, travelers, budget, preferences, special_occasions, itinerary, bookings,
		    knowledge_score, collected_fields, last_interaction, interaction_count, created_at, updated_at
		 FROM trips WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning trip: %w", err)
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// tripColumns holds the JSON-encoded substructure columns of a trip row.
type tripColumns struct {
	destinations     string
	dates            string
	travelers        string
	budget           string
	preferences      string
	specialOccasions string
	bookings         string
	collectedFields  string
}

func marshalTripColumns(t *Trip) (*tripColumns, error) {
	var cols tripColumns
	var err error

	if cols.destinations, err = marshalJSON(t.Destinations); err != nil {
		return nil, err
	}
	if cols.dates, err = marshalJSON(t.Dates); err != nil {
		return nil, err
	}
	if cols.travelers, err = marshalJSON(t.Travelers); err != nil {
		return nil, err
	}
	if cols.budget, err = marshalJSON(t.Budget); err != nil {
		return nil, err
	}
	if cols.preferences, err = marshalJSON(t.Preferences); err != nil {
		return nil, err
	}
	if cols.specialOccasions, err = marshalJSON(orEmpty(t.SpecialOccasions)); err != nil {
		return nil, err
	}
	if cols.bookings, err = marshalJSON(orEmptyBookings(t.Bookings)); err != nil {
		return nil, err
	}
	if cols.collectedFields, err = marshalJSON(orEmpty(t.CollectedFields)); err != nil {
		return nil, err
	}
	return &cols, nil
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding trip substructure: %w", err)
	}
	return string(data), nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyBookings(b []Booking) []Booking {
	if b == nil {
		return []Booking{}
	}
	return b
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*Trip, error) {
	var t Trip
	var destinations, dates, travelers, budget, preferences, specialOccasions, bookings, collectedFields string
	var itinerary sql.NullString

	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.Status, &t.CurrentPhase,
		&destinations, &dates, &travelers, &budget, &preferences, &specialOccasions, &itinerary, &bookings,
		&t.KnowledgeScore, &collectedFields, &t.LastInteraction, &t.InteractionCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(destinations), &t.Destinations); err != nil {
		return nil, fmt.Errorf("decoding destinations: %w", err)
	}
	if err := json.Unmarshal([]byte(dates), &t.Dates); err != nil {
		return nil, fmt.Errorf("decoding dates: %w", err)
	}
	if err := json.Unmarshal([]byte(travelers), &t.Travelers); err != nil {
		return nil, fmt.Errorf("decoding travelers: %w", err)
	}
	if err := json.Unmarshal([]byte(budget), &t.Budget); err != nil {
		return nil, fmt.Errorf("decoding budget: %w", err)
	}
	if err := json.Unmarshal([]byte(preferences), &t.Preferences); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}
	if err := json.Unmarshal([]byte(specialOccasions), &t.SpecialOccasions); err != nil {
		return nil, fmt.Errorf("decoding special occasions: %w", err)
	}
	if err := json.Unmarshal([]byte(bookings), &t.Bookings); err != nil {
		return nil, fmt.Errorf("decoding bookings: %w", err)
	}
	if err := json.Unmarshal([]byte(collectedFields), &t.CollectedFields); err != nil {
		return nil, fmt.Errorf("decoding collected fields: %w", err)
	}
	if itinerary.Valid && itinerary.String != "" {
		t.Itinerary = &Itinerary{}
		if err := json.Unmarshal([]byte(itinerary.String), t.Itinerary); err != nil {
			return nil, fmt.Errorf("decoding itinerary: %w", err)
		}
	}

	return &t, nil
}
