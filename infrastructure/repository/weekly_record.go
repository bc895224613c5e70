// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/sales-kpi-api/infrastructure/database"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

//go:generate mockgen -source=weekly_record.go -destination=mocks/weekly_record.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	weeklyRecordsTable = "weekly_records"
	// linhas por INSERT em lote, abaixo do limite de variáveis do sqlite
	insertBatchSize = 500
)

var weeklyRecordColumns = []string{
	"id",
	"schema_version",
	"rep",
	"week",
	"calls",
	"new_contacts",
	"emails",
	"meetings",
	"leads",
	"opportunities_value",
	"revenue_eur",
	"gross_margin_pct",
	"prospects",
	"quotes",
	"notes",
	"created_at",
}

const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	schema_version = EXCLUDED.schema_version,
	rep = EXCLUDED.rep,
	week = EXCLUDED.week,
	calls = EXCLUDED.calls,
	new_contacts = EXCLUDED.new_contacts,
	emails = EXCLUDED.emails,
	meetings = EXCLUDED.meetings,
	leads = EXCLUDED.leads,
	opportunities_value = EXCLUDED.opportunities_value,
	revenue_eur = EXCLUDED.revenue_eur,
	gross_margin_pct = EXCLUDED.gross_margin_pct,
	prospects = EXCLUDED.prospects,
	quotes = EXCLUDED.quotes,
	notes = EXCLUDED.notes,
	created_at = EXCLUDED.created_at`

type WeeklyRecordRepository interface {
	List(ctx context.Context) ([]domain.WeeklyRecord, error)
	Save(ctx context.Context, record domain.WeeklyRecord) error
	SaveAll(ctx context.Context, records []domain.WeeklyRecord) error
	ReplaceAll(ctx context.Context, records []domain.WeeklyRecord) error
	Delete(ctx context.Context, id string) (bool, error)
}

type weeklyRecordRepository struct {
	conn *database.Connection
}

func NewWeeklyRecordRepository(conn *database.Connection) WeeklyRecordRepository {
	return &weeklyRecordRepository{
		conn: conn,
	}
}

// List devolve todos os registros, do mais recente para o mais antigo
func (r *weeklyRecordRepository) List(ctx context.Context) ([]domain.WeeklyRecord, error) {
	query, args, err := r.conn.StatementBuilder().
		Select(weeklyRecordColumns...).
		From(weeklyRecordsTable).
		OrderBy("created_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.WeeklyRecord, 0)
	for rows.Next() {
		record, err := scanWeeklyRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

// Save insere ou atualiza um único registro
func (r *weeklyRecordRepository) Save(ctx context.Context, record domain.WeeklyRecord) error {
	return r.SaveAll(ctx, []domain.WeeklyRecord{record})
}

// SaveAll insere ou atualiza os registros em uma única transação
func (r *weeklyRecordRepository) SaveAll(ctx context.Context, records []domain.WeeklyRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return r.upsert(ctx, tx, records)
	})
}

// ReplaceAll substitui o conjunto inteiro de registros
func (r *weeklyRecordRepository) ReplaceAll(ctx context.Context, records []domain.WeeklyRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		query, args, err := r.conn.StatementBuilder().Delete(weeklyRecordsTable).ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de remoção: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao limpar registros: %w", err)
		}

		return r.upsert(ctx, tx, records)
	})
}

// Delete remove o registro e indica se ele existia
func (r *weeklyRecordRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := r.conn.StatementBuilder().
		Delete(weeklyRecordsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover registro: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *weeklyRecordRepository) upsert(ctx context.Context, tx *sql.Tx, records []domain.WeeklyRecord) error {
	// um mesmo INSERT não pode atualizar a mesma linha duas vezes
	records = dedupeByID(records)

	for start := 0; start < len(records); start += insertBatchSize {
		end := min(start+insertBatchSize, len(records))

		query := r.conn.StatementBuilder().
			Insert(weeklyRecordsTable).
			Columns(weeklyRecordColumns...)

		for _, record := range records[start:end] {
			values, err := recordValues(record)
			if err != nil {
				return err
			}
			query = query.Values(values...)
		}

		sqlQuery, args, err := query.Suffix(upsertSuffix).ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("erro ao executar query de inserção: %w", err)
		}
	}

	return nil
}

// dedupeByID mantém a última ocorrência de cada id, preservando a ordem
func dedupeByID(records []domain.WeeklyRecord) []domain.WeeklyRecord {
	last := make(map[string]int, len(records))
	for i, record := range records {
		last[record.ID] = i
	}
	if len(last) == len(records) {
		return records
	}

	out := make([]domain.WeeklyRecord, 0, len(last))
	for i, record := range records {
		if last[record.ID] == i {
			out = append(out, record)
		}
	}
	return out
}

func recordValues(record domain.WeeklyRecord) ([]any, error) {
	prospects, err := encodeList(record.Prospects)
	if err != nil {
		return nil, err
	}
	quotes, err := encodeList(record.Quotes)
	if err != nil {
		return nil, err
	}

	return []any{
		record.ID,
		record.SchemaVersion,
		record.Rep,
		record.Week,
		record.Calls,
		record.NewContacts,
		record.Emails,
		record.Meetings,
		record.Leads,
		record.OpportunitiesValue,
		record.RevenueEUR,
		record.GrossMarginPct,
		prospects,
		quotes,
		record.Notes,
		record.CreatedAt,
	}, nil
}

func scanWeeklyRecord(rows *sql.Rows) (domain.WeeklyRecord, error) {
	var (
		record    domain.WeeklyRecord
		prospects string
		quotes    string
	)

	err := rows.Scan(
		&record.ID,
		&record.SchemaVersion,
		&record.Rep,
		&record.Week,
		&record.Calls,
		&record.NewContacts,
		&record.Emails,
		&record.Meetings,
		&record.Leads,
		&record.OpportunitiesValue,
		&record.RevenueEUR,
		&record.GrossMarginPct,
		&prospects,
		&quotes,
		&record.Notes,
		&record.CreatedAt,
	)
	if err != nil {
		return record, err
	}

	if record.Prospects, err = decodeList(prospects); err != nil {
		return record, err
	}
	if record.Quotes, err = decodeList(quotes); err != nil {
		return record, err
	}

	return record, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar lista: %w", err)
	}
	return string(encoded), nil
}

func decodeList(encoded string) ([]string, error) {
	items := make([]string, 0)
	if encoded == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, fmt.Errorf("erro ao decodificar lista: %w", err)
	}
	return items, nil
}
