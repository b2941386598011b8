package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/viajo-ai/viajo/internal/db"
)

// Store persists sessions and their messages.
type Store struct {
	db *db.DB
}

// NewStore creates a session store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// GetOrCreate returns the session with the given ID if one is supplied
// and found, otherwise mints a fresh session for the user. A supplied
// but unknown ID also results in a fresh session, so stale IDs from
// clients degrade gracefully.
func (s *Store) GetOrCreate(ctx context.Context, userID, sessionID string, platform Platform) (*Session, error) {
	if sessionID != "" {
		sess, err := s.GetByID(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}

	if !ValidPlatform(platform) {
		platform = PlatformAPI
	}
	now := time.Now().UTC()
	sess := &Session{
		ID:             "sess_" + uuid.New().String(),
		UserID:         userID,
		Platform:       platform,
		IsActive:       true,
		StartedAt:      now,
		LastActivityAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, trip_id, platform, is_active, started_at, last_activity_at, message_count)
		 VALUES (?, ?, ?, ?, 1, ?, ?, 0)`,
		sess.ID, sess.UserID, sess.TripID, sess.Platform, sess.StartedAt, sess.LastActivityAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// GetByID retrieves a session by its ID. Returns nil if not found.
func (s *Store) GetByID(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, trip_id, platform, is_active, started_at, last_activity_at, message_count
		 FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return sess, nil
}

// AttachTrip links the session to the trip under discussion.
func (s *Store) AttachTrip(ctx context.Context, sessionID, tripID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET trip_id = ? WHERE id = ?`, tripID, sessionID)
	if err != nil {
		return fmt.Errorf("attaching trip to session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// Append records one message in the session. Messages are append-only;
// session counters are updated separately via Touch.
func (s *Store) Append(ctx context.Context, sessionID string, role Role, content string) (*Message, error) {
	msg := &Message{
		ID:        "msg_" + uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}
	return msg, nil
}

// Touch bumps the session's activity timestamp and adds messagesAdded
// to its message count. Callers handling one full exchange pass 2, one
// user turn plus one assistant turn.
func (s *Store) Touch(ctx context.Context, sessionID string, messagesAdded int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET message_count = message_count + ?, last_activity_at = ? WHERE id = ?`,
		messagesAdded, time.Now().UTC(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("touching session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// Recent returns up to limit messages from the session, most recent
// first. Messages created in the same instant order by ID.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, role, content, created_at
		 FROM messages WHERE session_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Close marks the session inactive. The record itself is kept;
// expiration is not the store's concern.
func (s *Store) Close(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET is_active = 0 WHERE id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var sess Session
	var tripID sql.NullString
	err := row.Scan(&sess.ID, &sess.UserID, &tripID, &sess.Platform, &sess.IsActive,
		&sess.StartedAt, &sess.LastActivityAt, &sess.MessageCount)
	if err != nil {
		return nil, err
	}
	sess.TripID = tripID.String
	return &sess, nil
}
