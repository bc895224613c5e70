// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

const (
	// CurrentSchemaVersion é a versão gravada em todo registro normalizado
	CurrentSchemaVersion = 2
	// LegacySchemaVersion identifica registros antigos com chaves em francês
	LegacySchemaVersion = 1

	// TimestampLayout é o formato ISO de created_at (milissegundos, UTC)
	TimestampLayout = "2006-01-02T15:04:05.000Z"

	// UnknownRep é usado quando o registro não informa o comercial
	UnknownRep = "N/A"

	// ListSeparator separa itens das listas na forma achatada
	ListSeparator = " | "
)

// Counters agrupa os contadores somáveis de atividade
type Counters struct {
	Calls              float64 `json:"calls"`
	NewContacts        float64 `json:"new_contacts"`
	Emails             float64 `json:"emails"`
	Meetings           float64 `json:"meetings"`
	Leads              float64 `json:"leads"`
	OpportunitiesValue float64 `json:"opportunities_value"`
	RevenueEUR         float64 `json:"revenue_eur"`
}

// Add soma outro conjunto de contadores
func (c *Counters) Add(other Counters) {
	c.Calls += other.Calls
	c.NewContacts += other.NewContacts
	c.Emails += other.Emails
	c.Meetings += other.Meetings
	c.Leads += other.Leads
	c.OpportunitiesValue += other.OpportunitiesValue
	c.RevenueEUR += other.RevenueEUR
}

// WeeklyRecord é o relatório de atividade de um comercial em uma semana ISO
type WeeklyRecord struct {
	ID            string `json:"id"`
	SchemaVersion int    `json:"schema_version"`
	Rep           string `json:"rep"`
	Week          string `json:"week"` // Formato AAAA-Www (ex: 2025-W34)
	Counters
	GrossMarginPct float64  `json:"gross_margin_pct"` // 0 a 100
	Prospects      []string `json:"prospects"`
	Quotes         []string `json:"quotes"`
	Notes          string   `json:"notes"`
	CreatedAt      string   `json:"created_at"`
}

// RawRecord é um registro ainda não normalizado, vindo de JSON, CSV ou da planilha
type RawRecord map[string]any

// Submission são os valores do formulário semanal, ainda sem coerção
type Submission struct {
	Rep                any `json:"rep"`
	Week               any `json:"week"`
	Calls              any `json:"calls"`
	NewContacts        any `json:"new_contacts"`
	Emails             any `json:"emails"`
	Meetings           any `json:"meetings"`
	Leads              any `json:"leads"`
	OpportunitiesValue any `json:"opportunities_value"`
	RevenueEUR         any `json:"revenue_eur"`
	GrossMarginPct     any `json:"gross_margin_pct"`
	Prospects          any `json:"prospects"`
	Quotes             any `json:"quotes"`
	Notes              any `json:"notes"`
}

// FormatTimestamp formata o instante no layout de created_at
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ToRaw converte o registro para a forma crua com as chaves canônicas
func (r WeeklyRecord) ToRaw() RawRecord {
	return RawRecord{
		"id":                  r.ID,
		"schema_version":      float64(r.SchemaVersion),
		"rep":                 r.Rep,
		"week":                r.Week,
		"calls":               r.Calls,
		"new_contacts":        r.NewContacts,
		"emails":              r.Emails,
		"meetings":            r.Meetings,
		"leads":               r.Leads,
		"opportunities_value": r.OpportunitiesValue,
		"revenue_eur":         r.RevenueEUR,
		"gross_margin_pct":    r.GrossMarginPct,
		"prospects":           stringsToAny(r.Prospects),
		"quotes":              stringsToAny(r.Quotes),
		"notes":               r.Notes,
		"created_at":          r.CreatedAt,
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
