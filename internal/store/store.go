// Package store handles SQLite persistence of dataset snapshots.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/chartab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for dataset snapshots.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			row_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_rows (
			snapshot_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			payment TEXT NOT NULL,
			PRIMARY KEY (snapshot_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source, fetched_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot stores the records fetched from source and drops older
// snapshots of the same source.
func (s *Store) SaveSnapshot(ctx context.Context, source string, records []string, fetchedAt time.Time) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (source, fetched_at, row_count) VALUES (?, ?, ?)`,
		source,
		fetchedAt.UTC().Format(time.RFC3339Nano),
		len(records),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(records) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO snapshot_rows (snapshot_id, position, payment) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, rec := range records {
			if _, err = stmt.ExecContext(ctx, id, i, rec); err != nil {
				return 0, err
			}
		}
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM snapshot_rows WHERE snapshot_id IN (SELECT id FROM snapshots WHERE source = ? AND id <> ?)`,
		source, id); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM snapshots WHERE source = ? AND id <> ?`, source, id); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// LatestSnapshot returns the most recent snapshot for source. The boolean
// is false when none exists.
func (s *Store) LatestSnapshot(ctx context.Context, source string) (model.Snapshot, bool, error) {
	var snap model.Snapshot
	var fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, fetched_at FROM snapshots
		WHERE source = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1`, source).Scan(&snap.ID, &snap.Source, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("failed to parse snapshot time: %w", err)
	}
	snap.FetchedAt = parsed

	rows, err := s.db.QueryContext(ctx,
		`SELECT payment FROM snapshot_rows WHERE snapshot_id = ? ORDER BY position ASC`, snap.ID)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var payment string
		if err := rows.Scan(&payment); err != nil {
			return model.Snapshot{}, false, err
		}
		snap.Records = append(snap.Records, payment)
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, false, err
	}
	return snap, true, nil
}
