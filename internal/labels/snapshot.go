package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS labels (
	category TEXT NOT NULL,
	address  TEXT NOT NULL,
	PRIMARY KEY (category, address)
);
CREATE INDEX IF NOT EXISTS idx_labels_address ON labels(address);
CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value TEXT);
`

// ErrNoSnapshot is returned by Load when nothing was saved yet.
var ErrNoSnapshot = errors.New("no label snapshot")

// Snapshot keeps the last successfully fetched label set in a local sqlite file, so a restart while every
// remote list is unreachable still has more than the seeds.
type Snapshot struct {
	db *sql.DB
}

func OpenSnapshot(ctx context.Context, path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open label snapshot %s: %w", path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping label snapshot %s: %w", path, err)
	}

	_, err = db.ExecContext(ctx, snapshotSchema)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create label snapshot schema: %w", err)
	}

	return &Snapshot{db: db}, nil
}

// Save replaces the stored snapshot with set.
func (s *Snapshot) Save(ctx context.Context, set Set, savedAt time.Time) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM labels")
	if err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO labels(category, address) VALUES(?, ?)")
	if err != nil {
		return fmt.Errorf("prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for category, addrs := range set {
		for addr := range addrs {
			_, err = stmt.ExecContext(ctx, category, addr)
			if err != nil {
				return fmt.Errorf("insert snapshot label %s/%s: %w", category, addr, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, "INSERT OR REPLACE INTO metadata(key, value) VALUES('saved_at', ?)",
		strconv.FormatInt(savedAt.Unix(), 10))
	if err != nil {
		return fmt.Errorf("store snapshot time: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot and when it was saved, or ErrNoSnapshot.
func (s *Snapshot) Load(ctx context.Context) (Set, time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = 'saved_at'").Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read snapshot time: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse snapshot time %q: %w", raw, err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT category, address FROM labels")
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query snapshot labels: %w", err)
	}
	defer rows.Close()

	set := Set{}
	for rows.Next() {
		var category, addr string
		err = rows.Scan(&category, &addr)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("scan snapshot label: %w", err)
		}
		set.add(category, addr)
	}
	err = rows.Err()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate snapshot labels: %w", err)
	}

	return set, time.Unix(unix, 0).UTC(), nil
}

func (s *Snapshot) Close() error {
	return s.db.Close()
}
