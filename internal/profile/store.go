package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viajo-ai/viajo/internal/db"
)

// Store persists user profiles.
type Store struct {
	db *db.DB
}

// NewStore creates a profile store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// CreateIfAbsent records a profile for the user unless one already
// exists. Concurrent first contacts are idempotent: only the first
// write lands, later ones are silently ignored.
func (s *Store) CreateIfAbsent(ctx context.Context, userID, name string) error {
	prefs, err := json.Marshal(Preferences{})
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, name, preferences, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, name, string(prefs), now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// Get returns the user's profile, or a default profile when none is
// stored. It never returns nil alongside a nil error.
func (s *Store) Get(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	var prefsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, preferences, past_trips_count, last_trip_destination, created_at, updated_at
		 FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.Name, &prefsJSON, &p.PastTripsCount, &p.LastTripDestination, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return DefaultProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	if err := json.Unmarshal([]byte(prefsJSON), &p.Preferences); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}
	return &p, nil
}

// Exists reports whether the user has a stored profile.
func (s *Store) Exists(ctx context.Context, userID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_profiles WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("counting profiles: %w", err)
	}
	return n > 0, nil
}

// UpdatePreferences replaces the user's standing preferences.
func (s *Store) UpdatePreferences(ctx context.Context, userID string, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_profiles SET preferences = ?, updated_at = ? WHERE user_id = ?`,
		string(raw), time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("updating preferences: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s not found", userID)
	}
	return nil
}

// RecordTripCompleted bumps the trip counter and remembers the last
// destination visited.
func (s *Store) RecordTripCompleted(ctx context.Context, userID, destination string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE user_profiles
		 SET past_trips_count = past_trips_count + 1, last_trip_destination = ?, updated_at = ?
		 WHERE user_id = ?`,
		destination, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("recording completed trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s not found", userID)
	}
	return nil
}
