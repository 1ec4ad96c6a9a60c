package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Store is the query layer over the journal database. It backs the export
// quota window and the activity trail.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ActivityEntry is one row of the durable action trail.
type ActivityEntry struct {
	ID        string
	Action    string
	ObjectID  string
	Succeeded int
	Failed    int
	Detail    string
	CreatedAt time.Time
}

// AddExportStamp records one allowed export attempt.
func (s *Store) AddExportStamp(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO export_stamps (id, stamped_at) VALUES (?, ?)`,
		uuid.NewString(), at.UTC().Unix())
	return err
}

// ExportStampsSince returns stamps strictly after cutoff, oldest first.
func (s *Store) ExportStampsSince(ctx context.Context, cutoff time.Time) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stamped_at FROM export_stamps WHERE stamped_at > ? ORDER BY stamped_at`,
		cutoff.UTC().Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var unix int64
		if err := rows.Scan(&unix); err != nil {
			return nil, err
		}
		out = append(out, time.Unix(unix, 0).UTC())
	}
	return out, rows.Err()
}

// PruneExportStamps drops stamps at or before cutoff.
func (s *Store) PruneExportStamps(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM export_stamps WHERE stamped_at <= ?`, cutoff.UTC().Unix())
	return err
}

// LogActivity appends one action to the trail.
func (s *Store) LogActivity(ctx context.Context, action, objectID string, succeeded, failed int, detail string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_log (id, action, object_id, succeeded, failed, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), action, objectID, succeeded, failed, detail, Now().Unix())
	return err
}

// RecentActivity returns the latest entries, newest first.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, object_id, succeeded, failed, detail, created_at
		 FROM activity_log ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var unix int64
		if err := rows.Scan(&e.ID, &e.Action, &e.ObjectID, &e.Succeeded, &e.Failed, &e.Detail, &unix); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(unix, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
