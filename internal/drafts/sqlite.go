package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS drafts (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	adc_champion  TEXT NOT NULL,
	ally_support  TEXT,
	enemy_adc     TEXT,
	enemy_support TEXT,
	enemy_threat  TEXT,
	notes         TEXT,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drafts_created_at ON drafts(created_at DESC);
`

// SQLiteStore keeps drafts in a local SQLite file. Timestamps are stored as
// Unix nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("drafts: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("drafts: open database: %w", err)
	}
	// One connection serializes writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("drafts: %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("drafts: create tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+draftColumns+` FROM drafts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("drafts: list: %w", err)
	}
	defer rows.Close()

	list := []Draft{}
	for rows.Next() {
		d, err := scanSQLite(rows)
		if err != nil {
			return nil, fmt.Errorf("drafts: scan: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Draft, bool, error) {
	d, err := scanSQLite(s.db.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: get %s: %w", id, err)
	}
	return d, true, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, d Draft) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (`+draftColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.ADCChampion,
		nullString(d.AllySupport), nullString(d.EnemyADC), nullString(d.EnemySupport),
		nullString(d.EnemyThreat), nullString(d.Notes),
		d.CreatedAt.UnixNano(), d.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("drafts: insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, apply func(*Draft) error) (Draft, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: begin: %w", err)
	}
	defer tx.Rollback()

	d, err := scanSQLite(tx.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: get %s: %w", id, err)
	}
	if err := apply(&d); err != nil {
		return Draft{}, true, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE drafts SET name = ?, adc_champion = ?, ally_support = ?, enemy_adc = ?,
		 enemy_support = ?, enemy_threat = ?, notes = ?, updated_at = ? WHERE id = ?`,
		d.Name, d.ADCChampion,
		nullString(d.AllySupport), nullString(d.EnemyADC), nullString(d.EnemySupport),
		nullString(d.EnemyThreat), nullString(d.Notes),
		d.UpdatedAt.UnixNano(), id,
	)
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: update %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return Draft{}, false, fmt.Errorf("drafts: commit: %w", err)
	}
	return d, true, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("drafts: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("drafts: delete %s: %w", id, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanSQLite(sc scanner) (Draft, error) {
	var (
		r                row
		created, updated int64
	)
	if err := sc.Scan(r.dest(&created, &updated)...); err != nil {
		return Draft{}, err
	}
	d := r.draft()
	d.CreatedAt = fromUnixNano(created)
	d.UpdatedAt = fromUnixNano(updated)
	return d, nil
}
