// Package cli formata a saída de terminal do kpictl.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

// Separator é a linha que vira divisória na tabela
const Separator = "---"

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorMuted  = lipgloss.Color("#6F6E69")
	ColorWarn   = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorBorder)
)

type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// Colors colore a primeira célula da linha pelo seu valor (ex.: cor do comercial)
	Colors map[string]string
}

func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(48).
		Align(lipgloss.Center).
		Padding(0, 1)

	return box.Render(titleStyle.Render(title))
}

func RenderMuted(text string) string {
	return mutedStyle.Render(text)
}

func RenderWarning(text string) string {
	return warnStyle.Render(text)
}

// RenderTable desenha uma tabela com bordas. A primeira coluna é alinhada à
// esquerda e as demais à direita.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 {
		for _, row := range t.Rows {
			if len(row) > numCols {
				numCols = len(row)
			}
		}
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(border("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], i == 0) + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(border("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(border("├", "┼", "┤", widths))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			style := valueStyle
			if i == 0 {
				if color, ok := t.Colors[cell]; ok {
					style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
				}
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], i == 0) + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(border("╰", "┴", "╯", widths))

	return b.String()
}

// SummaryTable monta a tabela de KPIs por comercial com a linha de total
func SummaryTable(dashboard *domain.Dashboard) Table {
	rows := make([][]string, 0, len(dashboard.ByRep)+2)
	for _, rep := range dashboard.ByRep {
		rows = append(rows, kpiRow(rep.Rep, rep.Records, rep.Counters, rep.GrossMarginPct))
	}
	rows = append(rows, []string{Separator})
	rows = append(rows, kpiRow("Total", dashboard.Totals.Records, dashboard.Totals.Counters, dashboard.Totals.GrossMarginPct))

	return Table{
		Title:   "Por comercial",
		Headers: []string{"Comercial", "Registros", "Chamadas", "Contatos", "E-mails", "Reuniões", "Leads", "Oportunidades", "Faturamento", "Margem"},
		Rows:    rows,
		Colors:  dashboard.Colors,
	}
}

// RankingTable monta o ranking por faturamento
func RankingTable(ranking []domain.RankingItem, colors map[string]string) Table {
	rows := make([][]string, 0, len(ranking))
	for _, item := range ranking {
		rows = append(rows, []string{
			item.Rep,
			fmt.Sprintf("%dº", item.Position),
			item.RevenueFormatted,
			utils.FormatPercent(item.SharePct),
		})
	}

	return Table{
		Title:   "Ranking",
		Headers: []string{"Comercial", "Posição", "Faturamento", "Participação"},
		Rows:    rows,
		Colors:  colors,
	}
}

// WeekTable monta a evolução semanal
func WeekTable(byWeek []domain.WeekSummary) Table {
	rows := make([][]string, 0, len(byWeek))
	for _, week := range byWeek {
		rows = append(rows, []string{
			week.Week,
			FormatCount(float64(week.Records)),
			FormatCount(week.Leads),
			utils.FormatCurrency(week.RevenueEUR),
			utils.FormatPercent(week.GrossMarginPct),
		})
	}

	return Table{
		Title:   "Por semana",
		Headers: []string{"Semana", "Registros", "Leads", "Faturamento", "Margem"},
		Rows:    rows,
	}
}

func kpiRow(name string, records int, counters domain.Counters, margin float64) []string {
	return []string{
		name,
		FormatCount(float64(records)),
		FormatCount(counters.Calls),
		FormatCount(counters.NewContacts),
		FormatCount(counters.Emails),
		FormatCount(counters.Meetings),
		FormatCount(counters.Leads),
		utils.FormatCurrency(counters.OpportunitiesValue),
		utils.FormatCurrency(counters.RevenueEUR),
		utils.FormatPercent(margin),
	}
}

func border(left, middle, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, middle)+right) + "\n"
}

func pad(cell string, width int, left bool) string {
	gap := width - lipgloss.Width(cell)
	if gap <= 0 {
		return cell
	}
	if left {
		return cell + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + cell
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == Separator
}
