package recording

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/sales-kpi-api/infrastructure/events"
	"github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/sales-kpi-api/infrastructure/repository"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/observability"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/recorder.go -package=mocks

// Recorder é o dono da lista de registros semanais
type Recorder interface {
	Load(ctx context.Context) (domain.LoadSummary, error)
	Submit(ctx context.Context, submission domain.Submission) (domain.WeeklyRecord, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, records []domain.WeeklyRecord) (int, error)
	Records() []domain.WeeklyRecord
}

// Store mantém o snapshot em memória dos registros. O snapshot nunca é
// alterado no lugar, apenas substituído por inteiro sob o mutex.
type Store struct {
	repo      repository.WeeklyRecordRepository
	remote    sheets.Integrator
	publisher events.Publisher
	team      []string
	seed      bool

	now      func() time.Time
	newID    func() (string, error)
	observer func(domain.SyncOutcome)

	// writeMu serializa as escritas na base (Load, Submit, Delete, Import)
	writeMu sync.Mutex
	mu      sync.RWMutex
	records []domain.WeeklyRecord

	tasks sync.WaitGroup
}

type Option func(*Store)

// WithClock substitui o relógio usado para created_at e semana padrão
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator substitui o gerador de ids
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithOutcomeObserver recebe cada resultado das tarefas em segundo plano
func WithOutcomeObserver(observer func(domain.SyncOutcome)) Option {
	return func(s *Store) {
		s.observer = observer
	}
}

func NewStore(
	cfg *config.Config,
	repo repository.WeeklyRecordRepository,
	remote sheets.Integrator,
	publisher events.Publisher,
	opts ...Option,
) *Store {
	s := &Store{
		repo:      repo,
		remote:    remote,
		publisher: publisher,
		team:      cfg.Team.Members,
		seed:      cfg.Team.SeedSample,
		now:       time.Now,
		newID:     utils.GenerateID,
		records:   []domain.WeeklyRecord{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load busca a planilha remota (melhor esforço) e, com as escritas
// bloqueadas, lê a base local, mescla, persiste o conjunto mesclado e
// substitui o snapshot. Registros gravados durante a busca remota entram na
// mescla.
func (s *Store) Load(ctx context.Context) (domain.LoadSummary, error) {
	logger := log.ForContext(ctx)

	summary := domain.LoadSummary{}

	var remote []domain.RawRecord
	fetched := false
	if s.remote.Enabled() {
		rows, err := s.remote.ListRecords(ctx)
		if err != nil {
			logger.WithError(err).Warn("Planilha remota indisponível, usando somente os registros locais")
			summary.RemoteFailed = true
			summary.RemoteError = err.Error()
			s.report(domain.SyncOutcome{Target: domain.TargetRemote, Operation: domain.SyncList, Status: domain.SyncFailedIgnored, Err: err.Error()})
		} else {
			remote = rows
			fetched = true
			summary.Remote = len(rows)
			s.report(domain.SyncOutcome{Target: domain.TargetRemote, Operation: domain.SyncList, Status: domain.SyncSucceeded})
		}
	} else {
		s.report(domain.SyncOutcome{Target: domain.TargetRemote, Operation: domain.SyncList, Status: domain.SyncSkipped})
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	local, err := s.repo.List(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao carregar registros locais")
		return domain.LoadSummary{}, databaseError(err)
	}
	summary.Local = len(local)

	merged := local
	changed := false
	if fetched {
		merged = domain.Merge(local, remote)
		changed = true
	}

	if s.seed && len(merged) == 0 {
		merged = domain.SampleRecords()
		summary.Seeded = len(merged)
		changed = true
		logger.WithField("records_seeded", summary.Seeded).Info("Base vazia, inserindo registros de exemplo")
	}

	if changed {
		if err := s.repo.ReplaceAll(ctx, merged); err != nil {
			logger.WithError(err).Error("Erro ao salvar registros mesclados")
			return summary, databaseError(err)
		}
	}

	s.replace(merged)

	summary.Total = len(merged)
	summary.LoadedAt = s.now().UTC()

	logger.WithFields(log.Fields{
		"records_local":  summary.Local,
		"records_remote": summary.Remote,
		"records_total":  summary.Total,
	}).Info("Registros carregados")

	return summary, nil
}

// Submit registra o formulário semanal. O envio à planilha e ao Kafka é
// feito em segundo plano e suas falhas são apenas registradas.
func (s *Store) Submit(ctx context.Context, submission domain.Submission) (domain.WeeklyRecord, error) {
	id, err := s.newID()
	if err != nil {
		return domain.WeeklyRecord{}, NewRecordError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	record := s.fromSubmission(id, submission)

	s.writeMu.Lock()
	if err := s.repo.Save(ctx, record); err != nil {
		s.writeMu.Unlock()
		log.ForContext(ctx).WithError(err).Error("Erro ao salvar registro")
		return domain.WeeklyRecord{}, databaseError(err)
	}

	s.mu.Lock()
	next := make([]domain.WeeklyRecord, 0, len(s.records)+1)
	next = append(next, record)
	next = append(next, s.records...)
	domain.SortByCreatedAtDesc(next)
	s.records = next
	s.mu.Unlock()
	s.writeMu.Unlock()

	observability.RecordSubmitted()
	observability.SetRecordsInMemory(len(next))

	s.background(domain.TargetRemote, domain.SyncAppend, record.ID, s.remote.Enabled(), func(ctx context.Context) error {
		return s.remote.AppendRecord(ctx, record)
	})
	s.background(domain.TargetEvents, domain.SyncAppend, record.ID, s.publisher.Enabled(), func(ctx context.Context) error {
		return s.publisher.PublishCreated(ctx, record)
	})

	return record, nil
}

// Delete remove o registro localmente e propaga a remoção em segundo plano
func (s *Store) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	known := false
	for _, record := range s.records {
		if record.ID == id {
			known = true
			break
		}
	}
	s.mu.RUnlock()

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("record_id", id).Error("Erro ao remover registro")
		return databaseError(err)
	}
	if !found && !known {
		return notFound(id)
	}

	s.mu.Lock()
	next := make([]domain.WeeklyRecord, 0, len(s.records))
	for _, record := range s.records {
		if record.ID != id {
			next = append(next, record)
		}
	}
	s.records = next
	s.mu.Unlock()

	observability.RecordDeleted()
	observability.SetRecordsInMemory(len(next))

	s.background(domain.TargetRemote, domain.SyncDelete, id, s.remote.Enabled(), func(ctx context.Context) error {
		return s.remote.DeleteRecord(ctx, id)
	})
	s.background(domain.TargetEvents, domain.SyncDelete, id, s.publisher.Enabled(), func(ctx context.Context) error {
		return s.publisher.PublishDeleted(ctx, id)
	})

	return nil
}

// Import acrescenta registros importados de arquivo. Eles ficam apenas na
// base local, a planilha remota não é alterada.
func (s *Store) Import(ctx context.Context, records []domain.WeeklyRecord) (int, error) {
	if len(records) == 0 {
		return 0, NewRecordError(ErrNothingToImport, apiErrors.ErrEmptyFile, "")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.SaveAll(ctx, records); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao salvar registros importados")
		return 0, databaseError(err)
	}

	s.mu.Lock()
	imported := make(map[string]bool, len(records))
	next := make([]domain.WeeklyRecord, 0, len(s.records)+len(records))
	for _, record := range records {
		imported[record.ID] = true
		next = append(next, record)
	}
	for _, record := range s.records {
		if !imported[record.ID] {
			next = append(next, record)
		}
	}
	domain.SortByCreatedAtDesc(next)
	s.records = next
	s.mu.Unlock()

	observability.RecordsImported(len(records))
	observability.SetRecordsInMemory(len(next))

	log.ForContext(ctx).WithField("records_imported", len(records)).Info("Registros importados")

	return len(records), nil
}

// Records devolve uma cópia do snapshot atual
func (s *Store) Records() []domain.WeeklyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WeeklyRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Wait aguarda o fim das tarefas em segundo plano
func (s *Store) Wait() {
	s.tasks.Wait()
}

func (s *Store) replace(records []domain.WeeklyRecord) {
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	observability.SetRecordsInMemory(len(records))
}

func (s *Store) fromSubmission(id string, submission domain.Submission) domain.WeeklyRecord {
	now := s.now()

	rep := strings.TrimSpace(domain.ToText(submission.Rep))
	if rep == "" && len(s.team) > 0 {
		rep = s.team[0]
	}

	week := strings.TrimSpace(domain.ToText(submission.Week))
	if !domain.IsWeekLabel(week) {
		week = domain.WeekLabel(now)
	}

	raw := domain.RawRecord{
		"id":                  id,
		"rep":                 rep,
		"week":                week,
		"calls":               submission.Calls,
		"new_contacts":        submission.NewContacts,
		"emails":              submission.Emails,
		"meetings":            submission.Meetings,
		"leads":               submission.Leads,
		"opportunities_value": submission.OpportunitiesValue,
		"revenue_eur":         submission.RevenueEUR,
		"gross_margin_pct":    submission.GrossMarginPct,
		"prospects":           domain.ToList(submission.Prospects),
		"quotes":              domain.ToList(submission.Quotes),
		"notes":               domain.ToText(submission.Notes),
		"created_at":          domain.FormatTimestamp(now),
	}

	return domain.Normalize(raw)
}

// background executa a tarefa sem bloquear a requisição. Sem destino
// configurado o resultado é "skipped".
func (s *Store) background(target domain.SyncTarget, operation domain.SyncOperation, recordID string, enabled bool, task func(context.Context) error) {
	outcome := domain.SyncOutcome{Target: target, Operation: operation, RecordID: recordID}

	if !enabled {
		outcome.Status = domain.SyncSkipped
		s.report(outcome)
		return
	}

	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()

		if err := task(context.Background()); err != nil {
			outcome.Status = domain.SyncFailedIgnored
			outcome.Err = err.Error()
		} else {
			outcome.Status = domain.SyncSucceeded
		}
		s.report(outcome)
	}()
}

func (s *Store) report(outcome domain.SyncOutcome) {
	if outcome.At.IsZero() {
		outcome.At = s.now().UTC()
	}

	logger := log.L.WithFields(log.Fields{
		"sync_target": outcome.Target,
		"operation":   outcome.Operation,
		"record_id":   outcome.RecordID,
		"status":      outcome.Status,
	})
	switch outcome.Status {
	case domain.SyncFailedIgnored:
		logger.WithField("error", outcome.Err).Warn("Falha ignorada na sincronização")
	case domain.SyncSucceeded:
		logger.Debug("Sincronização concluída")
	}

	observability.RecordSyncOutcome(outcome)

	if s.observer != nil {
		s.observer(outcome)
	}
}
