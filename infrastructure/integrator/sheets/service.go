package sheets

import (
	"context"

	"github.com/pkg/errors"

	sheetsdomain "github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/integrator.go -package=mocks

// ErrDisabled é devolvido quando nenhuma planilha remota está configurada
var ErrDisabled = errors.New("sincronização remota desativada")

type Integrator interface {
	Enabled() bool
	ListRecords(ctx context.Context) ([]domain.RawRecord, error)
	AppendRecord(ctx context.Context, record domain.WeeklyRecord) error
	DeleteRecord(ctx context.Context, id string) error
}

type SheetsService struct {
	enabled bool
	Client  sheetsclient.Client
}

func New(cfg *config.Config, client sheetsclient.Client) Integrator {
	return &SheetsService{
		enabled: cfg.Remote.Enabled(),
		Client:  client,
	}
}

func (s *SheetsService) Enabled() bool {
	return s.enabled
}

func (s *SheetsService) ListRecords(ctx context.Context) ([]domain.RawRecord, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}

	records, err := s.Client.ListRecords(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar registros da planilha")
	}

	return records, nil
}

func (s *SheetsService) AppendRecord(ctx context.Context, record domain.WeeklyRecord) error {
	if !s.enabled {
		return ErrDisabled
	}

	if err := s.Client.AppendRecord(ctx, ToPayload(record)); err != nil {
		return errors.Wrapf(err, "erro ao enviar registro %s", record.ID)
	}

	return nil
}

func (s *SheetsService) DeleteRecord(ctx context.Context, id string) error {
	if !s.enabled {
		return ErrDisabled
	}

	if err := s.Client.DeleteRecord(ctx, id); err != nil {
		return errors.Wrapf(err, "erro ao remover registro %s", id)
	}

	return nil
}

// ToPayload achata o registro no formato esperado pela planilha
func ToPayload(record domain.WeeklyRecord) sheetsdomain.RecordPayload {
	prospects := record.Prospects
	if prospects == nil {
		prospects = []string{}
	}
	quotes := record.Quotes
	if quotes == nil {
		quotes = []string{}
	}

	return sheetsdomain.RecordPayload{
		ID:                 record.ID,
		SchemaVersion:      record.SchemaVersion,
		Rep:                record.Rep,
		Week:               record.Week,
		Calls:              record.Calls,
		NewContacts:        record.NewContacts,
		Emails:             record.Emails,
		Meetings:           record.Meetings,
		Leads:              record.Leads,
		OpportunitiesValue: record.OpportunitiesValue,
		RevenueEUR:         record.RevenueEUR,
		GrossMarginPct:     record.GrossMarginPct,
		Notes:              record.Notes,
		Prospects:          prospects,
		Quotes:             quotes,
		ProspectsFlat:      domain.JoinList(prospects),
		QuotesFlat:         domain.JoinList(quotes),
		CreatedAt:          record.CreatedAt,
	}
}
