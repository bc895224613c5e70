package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

// FormatCount formata um contador com separador de milhares do fr-FR.
// Valores fracionários mantêm as casas com vírgula decimal.
// Ex.: 1234 -> "1\u202f234", 2.5 -> "2,5"
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	formatted := strconv.FormatFloat(v, 'f', -1, 64)
	whole, fraction, hasFraction := strings.Cut(formatted, ".")

	var b strings.Builder
	b.WriteString(sign)
	head := len(whole) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(whole[:min(head, len(whole))])
	for i := head; i < len(whole); i += 3 {
		b.WriteString("\u202f")
		b.WriteString(whole[i : i+3])
	}
	if hasFraction {
		b.WriteString(",")
		b.WriteString(fraction)
	}

	return b.String()
}

// FormatLoadSummary resume uma carga em uma linha
func FormatLoadSummary(summary domain.LoadSummary) string {
	line := fmt.Sprintf("%d locais, %d remotos, %d no total", summary.Local, summary.Remote, summary.Total)
	if summary.Seeded > 0 {
		line += fmt.Sprintf(", %d de exemplo", summary.Seeded)
	}
	if summary.RemoteFailed {
		line += " (planilha remota indisponível)"
	}
	return line
}

// FormatTimestamp formata um horário para o terminal, no fuso local
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04")
}
