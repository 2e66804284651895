package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kushagra0526/VoiceNotebook-QA/internal/event"
)

// Filter narrows an event query. Zero values mean "no constraint".
type Filter struct {
	From      time.Time
	To        time.Time
	Types     []event.Type
	SessionID string
	Limit     int
	Offset    int
}

// AppendEvent appends a single event. Appends are idempotent by event ID, so
// redelivery from the collector's retry path cannot duplicate state.
func (db *DB) AppendEvent(ev event.Event) error {
	if !ev.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownEventType, ev.Type)
	}

	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("marshaling event data: %w", err)
	}
	meta, err := json.Marshal(ev.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling event metadata: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO events (id, type, timestamp, session_id, data, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		ev.ID, string(ev.Type), ev.Timestamp.UTC().Format(time.RFC3339),
		ev.SessionID, string(data), string(meta),
	)
	return err
}

// AppendEvents writes a batch of events in a single transaction. Events with
// unknown types are skipped rather than aborting the batch; the number of
// skipped events is returned.
func (db *DB) AppendEvents(events []event.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO events (id, type, timestamp, session_id, data, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
	)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	skipped := 0
	for _, ev := range events {
		if !ev.Type.Valid() {
			skipped++
			continue
		}
		data, err := json.Marshal(ev.Data)
		if err != nil {
			skipped++
			continue
		}
		meta, err := json.Marshal(ev.Metadata)
		if err != nil {
			skipped++
			continue
		}
		if _, err := stmt.Exec(
			ev.ID, string(ev.Type), ev.Timestamp.UTC().Format(time.RFC3339),
			ev.SessionID, string(data), string(meta),
		); err != nil {
			return skipped, err
		}
	}

	return skipped, tx.Commit()
}

// QueryEvents returns events matching the filter, ordered by timestamp
// ascending (insertion order breaks ties).
func (db *DB) QueryEvents(f Filter) ([]event.Event, error) {
	var (
		where []string
		args  []any
	)

	if !f.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		where = append(where, "timestamp < ?")
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	if len(f.Types) > 0 {
		placeholders := make([]string, len(f.Types))
		for i, t := range f.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		where = append(where, "type IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, f.SessionID)
	}

	query := "SELECT id, type, timestamp, session_id, data, metadata FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp, rowid"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
		if f.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, f.Offset)
		}
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountEvents returns the number of stored events of the given type, or of
// all types when t is empty.
func (db *DB) CountEvents(t event.Type) (int, error) {
	var (
		count int
		err   error
	)
	if t == "" {
		err = db.conn.QueryRow("SELECT COUNT(*) FROM events").Scan(&count)
	} else {
		err = db.conn.QueryRow("SELECT COUNT(*) FROM events WHERE type = ?", string(t)).Scan(&count)
	}
	return count, err
}

// PurgeBefore deletes events older than the cutoff and daily usage rows for
// dates before it. Returns the number of events removed.
func (db *DB) PurgeBefore(cutoff time.Time) (int64, error) {
	res, err := db.conn.Exec(
		"DELETE FROM events WHERE timestamp < ?",
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()

	_, err = db.conn.Exec(
		"DELETE FROM analytics_records WHERE kind = 'daily_usage' AND key < ?",
		dailyUsageKey(cutoff.UTC().Format(DateFormat)),
	)
	return n, err
}

func scanEvent(rows *sql.Rows) (event.Event, error) {
	var (
		ev         event.Event
		typ        string
		ts         string
		data, meta sql.NullString
	)
	if err := rows.Scan(&ev.ID, &typ, &ts, &ev.SessionID, &data, &meta); err != nil {
		return ev, err
	}
	ev.Type = event.Type(typ)
	ev.Timestamp, _ = time.Parse(time.RFC3339, ts)
	if data.Valid && data.String != "" && data.String != "null" {
		if err := json.Unmarshal([]byte(data.String), &ev.Data); err != nil {
			return ev, fmt.Errorf("unmarshaling event %s data: %w", ev.ID, err)
		}
	}
	if meta.Valid && meta.String != "" && meta.String != "null" {
		if err := json.Unmarshal([]byte(meta.String), &ev.Metadata); err != nil {
			return ev, fmt.Errorf("unmarshaling event %s metadata: %w", ev.ID, err)
		}
	}
	return ev, nil
}
