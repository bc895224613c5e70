// Package csvcodec exporta e importa registros semanais em CSV.
//
// A importação é propositalmente ingênua: linhas são separadas por quebra de
// linha e células por vírgula, sem suporte a aspas. A exportação coloca entre
// aspas os campos que contêm vírgula.
package csvcodec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

var (
	ErrEmptyCSV      = errors.New("arquivo CSV vazio")
	ErrUnknownHeader = errors.New("cabeçalho CSV sem colunas conhecidas")
)

// Columns é a ordem das colunas exportadas
var Columns = []string{
	"id",
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

// FileName devolve o nome do arquivo de download, ex.: kpi_2025-08-22.csv
func FileName(now time.Time, extension string) string {
	return fmt.Sprintf("kpi_%s.%s", now.Format(time.DateOnly), extension)
}

// Row devolve as células de um registro na ordem de Columns
func Row(record domain.WeeklyRecord) []string {
	return []string{
		record.ID,
		record.Rep,
		record.Week,
		formatNumber(record.Calls),
		formatNumber(record.NewContacts),
		formatNumber(record.Emails),
		formatNumber(record.Meetings),
		formatNumber(record.Leads),
		formatNumber(record.OpportunitiesValue),
		formatNumber(record.RevenueEUR),
		formatNumber(record.GrossMarginPct),
		domain.JoinList(record.Prospects),
		domain.JoinList(record.Quotes),
		record.Notes,
		record.CreatedAt,
	}
}

// Export escreve o cabeçalho e uma linha por registro
func Export(w io.Writer, records []domain.WeeklyRecord) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(Columns, ",") + "\n"); err != nil {
		return err
	}

	for _, record := range records {
		cells := Row(record)
		for i, cell := range cells {
			cells[i] = escape(cell)
		}
		if _, err := bw.WriteString(strings.Join(cells, ",") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Import lê um CSV exportado (ou editado à mão) e devolve novos registros.
// Cada linha recebe id e created_at novos.
func Import(r io.Reader, now func() time.Time, newID func() (string, error)) ([]domain.WeeklyRecord, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler CSV: %w", err)
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCSV
	}

	header := strings.Split(strings.TrimPrefix(lines[0], "\ufeff"), ",")
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, strings.Split(line, ","))
	}

	return FromRows(header, rows, now, newID)
}

// FromRows converte linhas tabulares (CSV ou planilha) em registros novos.
// O cabeçalho é comparado sem diferenciar maiúsculas; colunas ausentes
// recebem os valores padrão da normalização.
func FromRows(header []string, rows [][]string, now func() time.Time, newID func() (string, error)) ([]domain.WeeklyRecord, error) {
	columns := make([]string, len(header))
	known := false
	for i, column := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(column))
		if name, ok := domain.CanonicalField(columns[i]); ok {
			columns[i] = name
			known = true
		}
	}
	if !known {
		return nil, ErrUnknownHeader
	}

	records := make([]domain.WeeklyRecord, 0, len(rows))
	for _, cells := range rows {
		if isBlank(cells) {
			continue
		}

		raw := make(domain.RawRecord, len(columns))
		for i, column := range columns {
			if i >= len(cells) || column == "" {
				continue
			}
			value := strings.TrimSpace(cells[i])
			// colunas alternativas do mesmo campo não apagam um valor já lido
			if current, ok := raw[column]; ok && value == "" && current != "" {
				continue
			}
			raw[column] = value
		}

		record := domain.Normalize(raw)

		id, err := newID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id: %w", err)
		}
		record.ID = id
		record.CreatedAt = domain.FormatTimestamp(now())

		records = append(records, record)
	}

	return records, nil
}

func isBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func escape(cell string) string {
	if !strings.Contains(cell, ",") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
