package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vfg2006/sales-kpi-api/internal/csvcodec"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

const (
	RecordsSheet = "Records"
	ByRepSheet   = "Par commercial"
)

var byRepColumns = []string{"rep", "records", "calls", "new_contacts", "emails", "meetings", "leads", "opportunities_value", "revenue_eur", "gross_margin_pct"}

// WriteWorkbook gera a planilha XLSX com os registros e o resumo por comercial
func WriteWorkbook(w io.Writer, records []domain.WeeklyRecord, byRep []domain.RepSummary) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), RecordsSheet); err != nil {
		return err
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeHeader(file, RecordsSheet, csvcodec.Columns, headerStyle); err != nil {
		return err
	}
	for i, record := range records {
		if err := writeRow(file, RecordsSheet, i+2, recordRow(record)); err != nil {
			return err
		}
	}

	if _, err := file.NewSheet(ByRepSheet); err != nil {
		return err
	}
	if err := writeHeader(file, ByRepSheet, byRepColumns, headerStyle); err != nil {
		return err
	}
	for i, summary := range byRep {
		row := []any{
			summary.Rep,
			summary.Records,
			summary.Calls,
			summary.NewContacts,
			summary.Emails,
			summary.Meetings,
			summary.Leads,
			summary.OpportunitiesValue,
			summary.RevenueEUR,
			summary.GrossMarginPct,
		}
		if err := writeRow(file, ByRepSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := file.SetColWidth(RecordsSheet, "A", "O", 16); err != nil {
		return err
	}

	return file.Write(w)
}

// ReadRecords lê a primeira aba de uma planilha XLSX e devolve novos registros
func ReadRecords(r io.Reader, now func() time.Time, newID func() (string, error)) ([]domain.WeeklyRecord, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, csvcodec.ErrEmptyCSV
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler planilha: %w", err)
	}
	if len(rows) == 0 {
		return nil, csvcodec.ErrEmptyCSV
	}

	return csvcodec.FromRows(rows[0], rows[1:], now, newID)
}

func recordRow(record domain.WeeklyRecord) []any {
	return []any{
		record.ID,
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
		domain.JoinList(record.Prospects),
		domain.JoinList(record.Quotes),
		record.Notes,
		record.CreatedAt,
	}
}

func writeHeader(file *excelize.File, sheet string, columns []string, style int) error {
	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := writeRow(file, sheet, 1, header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	return file.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(file *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return file.SetSheetRow(sheet, cell, &values)
}
