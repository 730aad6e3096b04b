package drafts

import (
	"database/sql"
	"time"
)

type scanner interface {
	Scan(dest ...any) error
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// row is the column layout shared by the SQL stores. Timestamps are decoded
// by the caller since the SQLite and Postgres encodings differ.
type row struct {
	d Draft

	allySupport  sql.NullString
	enemyADC     sql.NullString
	enemySupport sql.NullString
	threat       sql.NullString
	notes        sql.NullString
}

func (r *row) dest(created, updated any) []any {
	return []any{
		&r.d.ID, &r.d.Name, &r.d.ADCChampion,
		&r.allySupport, &r.enemyADC, &r.enemySupport, &r.threat, &r.notes,
		created, updated,
	}
}

func (r *row) draft() Draft {
	d := r.d
	d.AllySupport = stringPtr(r.allySupport)
	d.EnemyADC = stringPtr(r.enemyADC)
	d.EnemySupport = stringPtr(r.enemySupport)
	d.EnemyThreat = stringPtr(r.threat)
	d.Notes = stringPtr(r.notes)
	return d
}

const draftColumns = `id, name, adc_champion, ally_support, enemy_adc, enemy_support, enemy_threat, notes, created_at, updated_at`

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
