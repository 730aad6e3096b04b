package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore keeps drafts in the drafts table created by
// platform.AutoMigrate.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an open database handle. The caller
// keeps ownership of db; Close is a no-op.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+draftColumns+` FROM drafts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("drafts: list: %w", err)
	}
	defer rows.Close()

	list := []Draft{}
	for rows.Next() {
		d, err := scanPostgres(rows)
		if err != nil {
			return nil, fmt.Errorf("drafts: scan: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Draft, bool, error) {
	d, err := scanPostgres(s.db.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: get %s: %w", id, err)
	}
	return d, true, nil
}

func (s *PostgresStore) Insert(ctx context.Context, d Draft) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO drafts (`+draftColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.Name, d.ADCChampion,
		nullString(d.AllySupport), nullString(d.EnemyADC), nullString(d.EnemySupport),
		nullString(d.EnemyThreat), nullString(d.Notes),
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("drafts: insert: %w", err)
	}
	return nil
}

// Update locks the row for the read-modify-write.
func (s *PostgresStore) Update(ctx context.Context, id string, apply func(*Draft) error) (Draft, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: begin: %w", err)
	}
	defer tx.Rollback()

	d, err := scanPostgres(tx.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = $1 FOR UPDATE`, id))
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
		`UPDATE drafts SET name = $2, adc_champion = $3, ally_support = $4, enemy_adc = $5,
		 enemy_support = $6, enemy_threat = $7, notes = $8, updated_at = $9 WHERE id = $1`,
		id, d.Name, d.ADCChampion,
		nullString(d.AllySupport), nullString(d.EnemyADC), nullString(d.EnemySupport),
		nullString(d.EnemyThreat), nullString(d.Notes),
		d.UpdatedAt,
	)
	if err != nil {
		return Draft{}, false, fmt.Errorf("drafts: update %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return Draft{}, false, fmt.Errorf("drafts: commit: %w", err)
	}
	return d, true, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("drafts: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("drafts: delete %s: %w", id, err)
	}
	return n > 0, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error { return nil }

func scanPostgres(sc scanner) (Draft, error) {
	var (
		r                row
		created, updated time.Time
	)
	if err := sc.Scan(r.dest(&created, &updated)...); err != nil {
		return Draft{}, err
	}
	d := r.draft()
	d.CreatedAt = created.UTC()
	d.UpdatedAt = updated.UTC()
	return d, nil
}
