package database

import (
	"context"
	"fmt"
)

// O mesmo DDL serve para postgres e sqlite: DOUBLE PRECISION tem afinidade
// REAL no sqlite e as listas são gravadas como JSON em TEXT.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS weekly_records (
		id                  TEXT PRIMARY KEY,
		schema_version      INTEGER NOT NULL DEFAULT 2,
		rep                 TEXT NOT NULL DEFAULT '',
		week                TEXT NOT NULL DEFAULT '',
		calls               DOUBLE PRECISION NOT NULL DEFAULT 0,
		new_contacts        DOUBLE PRECISION NOT NULL DEFAULT 0,
		emails              DOUBLE PRECISION NOT NULL DEFAULT 0,
		meetings            DOUBLE PRECISION NOT NULL DEFAULT 0,
		leads               DOUBLE PRECISION NOT NULL DEFAULT 0,
		opportunities_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		revenue_eur         DOUBLE PRECISION NOT NULL DEFAULT 0,
		gross_margin_pct    DOUBLE PRECISION NOT NULL DEFAULT 0,
		prospects           TEXT NOT NULL DEFAULT '[]',
		quotes              TEXT NOT NULL DEFAULT '[]',
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weekly_records_week ON weekly_records (week)`,
	`CREATE INDEX IF NOT EXISTS idx_weekly_records_rep ON weekly_records (rep)`,
	`CREATE INDEX IF NOT EXISTS idx_weekly_records_created_at ON weekly_records (created_at)`,
}

// Migrate cria as tabelas e índices que ainda não existem
func Migrate(ctx context.Context, conn *Connection) error {
	for _, statement := range schemaStatements {
		if _, err := conn.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("erro ao aplicar schema: %w", err)
		}
	}
	return nil
}
