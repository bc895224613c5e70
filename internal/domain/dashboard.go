package domain

import "github.com/golang-jwt/jwt/v5"

// Filter restringe os registros por semana e/ou comercial. Campos vazios
// aceitam tudo.
type Filter struct {
	Week string `json:"week,omitempty"`
	Rep  string `json:"rep,omitempty"`
}

// Matches indica se o registro passa pelo filtro
func (f Filter) Matches(record WeeklyRecord) bool {
	if f.Week != "" && record.Week != f.Week {
		return false
	}
	if f.Rep != "" && record.Rep != f.Rep {
		return false
	}
	return true
}

type RepSummary struct {
	Rep string `json:"rep"`
	Counters
	GrossMarginPct float64 `json:"gross_margin_pct"`
	Records        int     `json:"records"`
	Color          string  `json:"color"`
}

type WeekSummary struct {
	Week string `json:"week"`
	Counters
	GrossMarginPct float64 `json:"gross_margin_pct"`
	Records        int     `json:"records"`
}

type Totals struct {
	Counters
	GrossMarginPct   float64 `json:"gross_margin_pct"`
	Records          int     `json:"records"`
	RevenueFormatted string  `json:"revenue_formatted"`
}

type RankingItem struct {
	Rep              string  `json:"rep"`
	Position         int     `json:"position"`
	RevenueEUR       float64 `json:"revenue_eur"`
	RevenueFormatted string  `json:"revenue_formatted"`
	SharePct         float64 `json:"share_pct"`
}

// ChartDataItem é um ponto de gráfico (nome e valor)
type ChartDataItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

type Dashboard struct {
	Filter       Filter            `json:"filter"`
	Records      []WeeklyRecord    `json:"records"`
	ByRep        []RepSummary      `json:"by_rep"`
	ByWeek       []WeekSummary     `json:"by_week"`
	Totals       Totals            `json:"totals"`
	Ranking      []RankingItem     `json:"ranking"`
	RevenueShare []ChartDataItem   `json:"revenue_share"`
	Colors       map[string]string `json:"colors"`
}

type FilterOptions struct {
	Weeks []string `json:"weeks"`
	Reps  []string `json:"reps"`
}

// DashboardClaims são as claims do token de acesso ao painel
type DashboardClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}
