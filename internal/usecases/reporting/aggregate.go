package reporting

import (
	"sort"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

// FilterRecords devolve o subconjunto que passa pelo filtro, na ordem original
func FilterRecords(records []domain.WeeklyRecord, filter domain.Filter) []domain.WeeklyRecord {
	out := make([]domain.WeeklyRecord, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			out = append(out, record)
		}
	}
	return out
}

// margin acumula a margem bruta ponderada pelo faturamento
type margin struct {
	weighted float64
	revenue  float64
}

func (m *margin) add(record domain.WeeklyRecord) {
	m.weighted += record.GrossMarginPct * record.RevenueEUR
	m.revenue += record.RevenueEUR
}

func (m margin) value() float64 {
	if m.revenue == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(m.weighted / m.revenue)
}

// ByRep soma os contadores por comercial, na ordem da primeira aparição
func ByRep(records []domain.WeeklyRecord, colors map[string]string) []domain.RepSummary {
	index := make(map[string]int)
	margins := make([]margin, 0)
	out := make([]domain.RepSummary, 0)

	for _, record := range records {
		i, ok := index[record.Rep]
		if !ok {
			i = len(out)
			index[record.Rep] = i
			out = append(out, domain.RepSummary{Rep: record.Rep, Color: colors[record.Rep]})
			margins = append(margins, margin{})
		}

		out[i].Counters.Add(record.Counters)
		out[i].Records++
		margins[i].add(record)
	}

	for i := range out {
		out[i].GrossMarginPct = margins[i].value()
	}

	return out
}

// ByWeek soma os contadores por semana, em ordem crescente de rótulo
func ByWeek(records []domain.WeeklyRecord) []domain.WeekSummary {
	index := make(map[string]int)
	margins := make([]margin, 0)
	out := make([]domain.WeekSummary, 0)

	for _, record := range records {
		i, ok := index[record.Week]
		if !ok {
			i = len(out)
			index[record.Week] = i
			out = append(out, domain.WeekSummary{Week: record.Week})
			margins = append(margins, margin{})
		}

		out[i].Counters.Add(record.Counters)
		out[i].Records++
		margins[i].add(record)
	}

	for i := range out {
		out[i].GrossMarginPct = margins[i].value()
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Week < out[j].Week
	})

	return out
}

// Total soma todos os contadores do subconjunto
func Total(records []domain.WeeklyRecord) domain.Totals {
	var totals domain.Totals
	var m margin

	for _, record := range records {
		totals.Counters.Add(record.Counters)
		m.add(record)
	}

	totals.Records = len(records)
	totals.GrossMarginPct = m.value()
	totals.RevenueFormatted = utils.FormatCurrency(totals.RevenueEUR)

	return totals
}

// Ranking ordena os comerciais por faturamento decrescente. Empates são
// desfeitos pelo nome.
func Ranking(byRep []domain.RepSummary, totalRevenue float64) []domain.RankingItem {
	ranking := make([]domain.RankingItem, 0, len(byRep))
	for _, summary := range byRep {
		item := domain.RankingItem{
			Rep:              summary.Rep,
			RevenueEUR:       summary.RevenueEUR,
			RevenueFormatted: utils.FormatCurrency(summary.RevenueEUR),
		}
		if totalRevenue > 0 {
			item.SharePct = utils.RoundWithTwoDecimalPlace(summary.RevenueEUR / totalRevenue * 100)
		}
		ranking = append(ranking, item)
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].RevenueEUR != ranking[j].RevenueEUR {
			return ranking[i].RevenueEUR > ranking[j].RevenueEUR
		}
		return ranking[i].Rep < ranking[j].Rep
	})

	for i := range ranking {
		ranking[i].Position = i + 1
	}

	return ranking
}

// RevenueShare monta os dados do gráfico de pizza de faturamento
func RevenueShare(byRep []domain.RepSummary) []domain.ChartDataItem {
	data := make([]domain.ChartDataItem, 0, len(byRep))
	for _, summary := range byRep {
		data = append(data, domain.ChartDataItem{
			Name:  summary.Rep,
			Value: summary.RevenueEUR,
			Color: summary.Color,
		})
	}
	return data
}

// Weeks devolve as semanas distintas em ordem crescente
func Weeks(records []domain.WeeklyRecord) []string {
	seen := make(map[string]bool)
	weeks := make([]string, 0)
	for _, record := range records {
		if record.Week == "" || seen[record.Week] {
			continue
		}
		seen[record.Week] = true
		weeks = append(weeks, record.Week)
	}
	sort.Strings(weeks)
	return weeks
}

// Reps devolve a equipe configurada seguida dos comerciais encontrados nos registros
func Reps(team []string, records []domain.WeeklyRecord) []string {
	seen := make(map[string]bool)
	reps := make([]string, 0, len(team))

	add := func(rep string) {
		if rep == "" || seen[rep] {
			return
		}
		seen[rep] = true
		reps = append(reps, rep)
	}

	for _, rep := range team {
		add(rep)
	}
	for _, record := range records {
		add(record.Rep)
	}

	return reps
}
