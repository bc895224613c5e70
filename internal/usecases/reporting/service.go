package reporting

import (
	"context"

	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/reporter.go -package=mocks

// RecordSource fornece o snapshot atual dos registros
type RecordSource interface {
	Records() []domain.WeeklyRecord
}

type Reporter interface {
	Dashboard(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error)
	Filters(ctx context.Context) (*domain.FilterOptions, error)
}

type Service struct {
	source RecordSource
	team   []string
}

func NewService(cfg *config.Config, source RecordSource) Reporter {
	return &Service{
		source: source,
		team:   cfg.Team.Members,
	}
}

// Dashboard agrega o subconjunto filtrado. As cores são atribuídas sobre
// todos os comerciais conhecidos para não mudarem conforme o filtro.
func (s *Service) Dashboard(ctx context.Context, filter domain.Filter) (*domain.Dashboard, error) {
	records := s.source.Records()
	colors := domain.ColorsByRep(Reps(s.team, records))

	filtered := FilterRecords(records, filter)
	byRep := ByRep(filtered, colors)
	totals := Total(filtered)

	log.ForContext(ctx).WithFields(log.Fields{
		"records_total":    len(records),
		"records_filtered": len(filtered),
	}).Debug("Painel calculado")

	return &domain.Dashboard{
		Filter:       filter,
		Records:      filtered,
		ByRep:        byRep,
		ByWeek:       ByWeek(filtered),
		Totals:       totals,
		Ranking:      Ranking(byRep, totals.RevenueEUR),
		RevenueShare: RevenueShare(byRep),
		Colors:       colors,
	}, nil
}

func (s *Service) Filters(ctx context.Context) (*domain.FilterOptions, error) {
	records := s.source.Records()

	return &domain.FilterOptions{
		Weeks: Weeks(records),
		Reps:  Reps(s.team, records),
	}, nil
}
