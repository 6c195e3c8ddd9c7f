package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventType represents the type of synthesis event
type EventType string

const (
	EventEngineInitialized      EventType = "engine_initialized"
	EventEngineInitializeFailed EventType = "engine_initialize_failed"
	EventSpeechGenerated        EventType = "speech_generated"
	EventSpeechFailed           EventType = "speech_failed"
	EventOutputWriteFailed      EventType = "output_write_failed"
	EventEngineReleased         EventType = "engine_released"
	EventLeaseReleased          EventType = "lease_released" // engine still held by another facade
)

// Event is one stored row of synthesis_events
type Event struct {
	ID        int64           `json:"id"`
	SessionID string          `json:"session_id"`
	EventType EventType       `json:"event_type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// Logger provides async event logging to the database
type Logger struct {
	db *pgxpool.Pool
}

// New creates a new event logger
func New(db *pgxpool.Pool) *Logger {
	return &Logger{db: db}
}

// Enabled reports whether events are persisted
func (l *Logger) Enabled() bool {
	return l != nil && l.db != nil
}

// Log writes an event to the database synchronously
func (l *Logger) Log(ctx context.Context, sessionID string, eventType EventType, data map[string]any) error {
	if !l.Enabled() || sessionID == "" {
		return nil // Silently skip if no DB or session ID
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		dataJSON = []byte("{}")
	}

	_, err = l.db.Exec(ctx, `
		INSERT INTO synthesis_events (session_id, event_type, event_data)
		VALUES ($1, $2, $3)
	`, sessionID, string(eventType), dataJSON)

	return err
}

// LogAsync logs an event without blocking the caller
func (l *Logger) LogAsync(sessionID string, eventType EventType, data map[string]any) {
	if !l.Enabled() || sessionID == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.Log(ctx, sessionID, eventType, data)
	}()
}

// List returns the most recent events of a session, newest first
func (l *Logger) List(ctx context.Context, sessionID string, limit int) ([]Event, error) {
	if !l.Enabled() {
		return []Event{}, nil
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	rows, err := l.db.Query(ctx, `
		SELECT id, session_id, event_type, event_data, created_at
		FROM synthesis_events
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		var eventType string
		if err := rows.Scan(&e.ID, &e.SessionID, &eventType, &e.Data, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.EventType = EventType(eventType)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Purge deletes events created before cutoff and returns how many were removed
func (l *Logger) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	if !l.Enabled() {
		return 0, nil
	}

	tag, err := l.db.Exec(ctx, `DELETE FROM synthesis_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
