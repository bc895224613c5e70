package recording

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	eventmocks "github.com/vfg2006/sales-kpi-api/infrastructure/events/mocks"
	sheetsmocks "github.com/vfg2006/sales-kpi-api/infrastructure/integrator/sheets/mocks"
	"github.com/vfg2006/sales-kpi-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

type outcomeCollector struct {
	mu       sync.Mutex
	outcomes []domain.SyncOutcome
}

func (c *outcomeCollector) observe(outcome domain.SyncOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, outcome)
}

func (c *outcomeCollector) find(target domain.SyncTarget, operation domain.SyncOperation) (domain.SyncOutcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, outcome := range c.outcomes {
		if outcome.Target == target && outcome.Operation == operation {
			return outcome, true
		}
	}
	return domain.SyncOutcome{}, false
}

type storeFixture struct {
	store     *Store
	repo      *mocks.MockWeeklyRecordRepository
	remote    *sheetsmocks.MockIntegrator
	publisher *eventmocks.MockPublisher
	outcomes  *outcomeCollector
}

var fixedNow = func() time.Time { return time.Date(2025, 8, 22, 16, 0, 0, 0, time.UTC) }

func newStoreFixture(t *testing.T, cfg *config.Config) *storeFixture {
	ctrl := gomock.NewController(t)

	if cfg == nil {
		cfg = &config.Config{Team: config.Team{Members: []string{"Commercial 1", "Commercial 2"}}}
	}

	n := 0
	f := &storeFixture{
		repo:      mocks.NewMockWeeklyRecordRepository(ctrl),
		remote:    sheetsmocks.NewMockIntegrator(ctrl),
		publisher: eventmocks.NewMockPublisher(ctrl),
		outcomes:  &outcomeCollector{},
	}
	f.store = NewStore(cfg, f.repo, f.remote, f.publisher,
		WithClock(fixedNow),
		WithIDGenerator(func() (string, error) {
			n++
			return fmt.Sprintf("id%d", n), nil
		}),
		WithOutcomeObserver(f.outcomes.observe),
	)

	return f
}

func TestStore_Load(t *testing.T) {
	local := []domain.WeeklyRecord{
		domain.Normalize(domain.RawRecord{"id": "a", "rep": "X", "week": "2025-W34", "calls": 10.0, "created_at": "2025-08-20T10:00:00.000Z"}),
	}

	tests := []struct {
		name     string
		cfg      *config.Config
		setup    func(f *storeFixture)
		validate func(t *testing.T, f *storeFixture, summary domain.LoadSummary)
	}{
		{
			name: "Mescla registros remotos e persiste o resultado",
			setup: func(f *storeFixture) {
				f.repo.EXPECT().List(gomock.Any()).Return(local, nil)
				f.remote.EXPECT().Enabled().Return(true)
				f.remote.EXPECT().ListRecords(gomock.Any()).Return([]domain.RawRecord{
					{"id": "a", "calls": 12.0},
					{"id": "b", "rep": "Y", "week": "2025-W34", "created_at": "2025-08-21T10:00:00.000Z"},
				}, nil)
				f.repo.EXPECT().ReplaceAll(gomock.Any(), gomock.Len(2)).Return(nil)
			},
			validate: func(t *testing.T, f *storeFixture, summary domain.LoadSummary) {
				assert.Equal(t, 1, summary.Local)
				assert.Equal(t, 2, summary.Remote)
				assert.Equal(t, 2, summary.Total)
				assert.False(t, summary.RemoteFailed)

				records := f.store.Records()
				require.Len(t, records, 2)
				assert.Equal(t, "b", records[0].ID)
				assert.Equal(t, 12.0, records[1].Calls)
				assert.Equal(t, "X", records[1].Rep)

				outcome, ok := f.outcomes.find(domain.TargetRemote, domain.SyncList)
				require.True(t, ok)
				assert.Equal(t, domain.SyncSucceeded, outcome.Status)
			},
		},
		{
			name: "Falha remota mantém os registros locais sem persistir",
			setup: func(f *storeFixture) {
				f.repo.EXPECT().List(gomock.Any()).Return(local, nil)
				f.remote.EXPECT().Enabled().Return(true)
				f.remote.EXPECT().ListRecords(gomock.Any()).Return(nil, errors.New("resposta inválida"))
			},
			validate: func(t *testing.T, f *storeFixture, summary domain.LoadSummary) {
				assert.True(t, summary.RemoteFailed)
				assert.Equal(t, local, f.store.Records())

				outcome, ok := f.outcomes.find(domain.TargetRemote, domain.SyncList)
				require.True(t, ok)
				assert.Equal(t, domain.SyncFailedIgnored, outcome.Status)
				assert.Equal(t, "resposta inválida", outcome.Err)
			},
		},
		{
			name: "Base vazia recebe os exemplos quando configurado",
			cfg:  &config.Config{Team: config.Team{SeedSample: true}},
			setup: func(f *storeFixture) {
				f.repo.EXPECT().List(gomock.Any()).Return([]domain.WeeklyRecord{}, nil)
				f.remote.EXPECT().Enabled().Return(false)
				f.repo.EXPECT().ReplaceAll(gomock.Any(), domain.SampleRecords()).Return(nil)
			},
			validate: func(t *testing.T, f *storeFixture, summary domain.LoadSummary) {
				assert.Equal(t, 6, summary.Seeded)
				assert.Len(t, f.store.Records(), 6)

				outcome, ok := f.outcomes.find(domain.TargetRemote, domain.SyncList)
				require.True(t, ok)
				assert.Equal(t, domain.SyncSkipped, outcome.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixture(t, tt.cfg)
			tt.setup(f)

			summary, err := f.store.Load(context.Background())
			require.NoError(t, err)

			tt.validate(t, f, summary)
		})
	}
}

func TestStore_Load_RepositoryError(t *testing.T) {
	f := newStoreFixture(t, nil)
	f.remote.EXPECT().Enabled().Return(false)
	f.repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("disco cheio"))

	_, err := f.store.Load(context.Background())

	var recordErr *RecordError
	require.ErrorAs(t, err, &recordErr)
	assert.ErrorIs(t, err, ErrDatabaseOperation)
}

func TestStore_Submit(t *testing.T) {
	t.Run("Coage os valores e envia em segundo plano", func(t *testing.T) {
		f := newStoreFixture(t, nil)

		f.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		f.remote.EXPECT().Enabled().Return(true)
		f.remote.EXPECT().AppendRecord(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Enabled().Return(true)
		f.publisher.EXPECT().PublishCreated(gomock.Any(), gomock.Any()).Return(errors.New("broker indisponível"))

		record, err := f.store.Submit(context.Background(), domain.Submission{
			Rep:            "Commercial 2",
			Week:           "2025-W34",
			Calls:          "12,5",
			Emails:         "-4",
			RevenueEUR:     "9000",
			GrossMarginPct: "130",
			Prospects:      []string{"Acme", "", "Globex"},
		})
		require.NoError(t, err)
		f.store.Wait()

		assert.Equal(t, "id1", record.ID)
		assert.Equal(t, "Commercial 2", record.Rep)
		assert.Equal(t, 12.5, record.Calls)
		assert.Equal(t, 0.0, record.Emails)
		assert.Equal(t, 9000.0, record.RevenueEUR)
		assert.Equal(t, 100.0, record.GrossMarginPct)
		assert.Equal(t, []string{"Acme", "Globex"}, record.Prospects)
		assert.Equal(t, "2025-08-22T16:00:00.000Z", record.CreatedAt)
		assert.Equal(t, []domain.WeeklyRecord{record}, f.store.Records())

		remote, ok := f.outcomes.find(domain.TargetRemote, domain.SyncAppend)
		require.True(t, ok)
		assert.Equal(t, domain.SyncSucceeded, remote.Status)
		assert.Equal(t, "id1", remote.RecordID)

		event, ok := f.outcomes.find(domain.TargetEvents, domain.SyncAppend)
		require.True(t, ok)
		assert.Equal(t, domain.SyncFailedIgnored, event.Status)
	})

	t.Run("Semana e comercial ausentes recebem valores padrão", func(t *testing.T) {
		f := newStoreFixture(t, nil)

		f.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		f.remote.EXPECT().Enabled().Return(false)
		f.publisher.EXPECT().Enabled().Return(false)

		record, err := f.store.Submit(context.Background(), domain.Submission{Week: "semana 34"})
		require.NoError(t, err)

		assert.Equal(t, "Commercial 1", record.Rep)
		assert.Equal(t, "2025-W34", record.Week)

		remote, ok := f.outcomes.find(domain.TargetRemote, domain.SyncAppend)
		require.True(t, ok)
		assert.Equal(t, domain.SyncSkipped, remote.Status)
	})

	t.Run("Tipos inesperados são convertidos em vez de rejeitados", func(t *testing.T) {
		f := newStoreFixture(t, nil)

		f.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		f.remote.EXPECT().Enabled().Return(false)
		f.publisher.EXPECT().Enabled().Return(false)

		record, err := f.store.Submit(context.Background(), domain.Submission{
			Rep:       5.0,
			Week:      nil,
			Prospects: "Acme | Foo",
			Quotes:    []any{"Q1", 2.0},
			Notes:     12.0,
		})
		require.NoError(t, err)

		assert.Equal(t, "5", record.Rep)
		assert.Equal(t, "2025-W34", record.Week)
		assert.Equal(t, []string{"Acme", "Foo"}, record.Prospects)
		assert.Equal(t, []string{"Q1", "2"}, record.Quotes)
		assert.Equal(t, "12", record.Notes)
	})

	t.Run("Erro ao salvar não altera o snapshot", func(t *testing.T) {
		f := newStoreFixture(t, nil)

		f.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("locked"))

		_, err := f.store.Submit(context.Background(), domain.Submission{})
		assert.ErrorIs(t, err, ErrDatabaseOperation)
		assert.Empty(t, f.store.Records())
	})
}

func TestStore_Delete(t *testing.T) {
	t.Run("Remove localmente e propaga", func(t *testing.T) {
		f := newStoreFixture(t, nil)
		f.store.replace(domain.SampleRecords())

		f.repo.EXPECT().Delete(gomock.Any(), "s1").Return(true, nil)
		f.remote.EXPECT().Enabled().Return(true)
		f.remote.EXPECT().DeleteRecord(gomock.Any(), "s1").Return(nil)
		f.publisher.EXPECT().Enabled().Return(true)
		f.publisher.EXPECT().PublishDeleted(gomock.Any(), "s1").Return(nil)

		require.NoError(t, f.store.Delete(context.Background(), "s1"))
		f.store.Wait()

		records := f.store.Records()
		assert.Len(t, records, 5)
		for _, r := range records {
			assert.NotEqual(t, "s1", r.ID)
		}
	})

	t.Run("Id desconhecido", func(t *testing.T) {
		f := newStoreFixture(t, nil)

		f.repo.EXPECT().Delete(gomock.Any(), "nope").Return(false, nil)

		err := f.store.Delete(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestStore_Import(t *testing.T) {
	f := newStoreFixture(t, nil)
	f.store.replace(domain.SampleRecords()[:2])

	imported := []domain.WeeklyRecord{
		domain.Normalize(domain.RawRecord{"id": "n1", "rep": "Z", "created_at": "2025-09-01T00:00:00.000Z"}),
	}
	f.repo.EXPECT().SaveAll(gomock.Any(), imported).Return(nil)

	n, err := f.store.Import(context.Background(), imported)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// importação fica só na base local
	f.store.Wait()
	_, pushed := f.outcomes.find(domain.TargetRemote, domain.SyncAppend)
	assert.False(t, pushed)

	records := f.store.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "n1", records[0].ID)

	_, err = f.store.Import(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNothingToImport)
}

// memoryRepository guarda os registros em memória, como a base local
type memoryRepository struct {
	mu      sync.Mutex
	records []domain.WeeklyRecord
}

func (r *memoryRepository) List(context.Context) ([]domain.WeeklyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.WeeklyRecord(nil), r.records...), nil
}

func (r *memoryRepository) Save(_ context.Context, record domain.WeeklyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *memoryRepository) SaveAll(_ context.Context, records []domain.WeeklyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, records...)
	return nil
}

func (r *memoryRepository) ReplaceAll(_ context.Context, records []domain.WeeklyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]domain.WeeklyRecord(nil), records...)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, record := range r.records {
		if record.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestStore_Load_KeepsWritesDuringRemoteFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := &memoryRepository{}
	remote := sheetsmocks.NewMockIntegrator(ctrl)
	publisher := eventmocks.NewMockPublisher(ctrl)

	fetching := make(chan struct{})
	release := make(chan struct{})

	remote.EXPECT().Enabled().Return(true).AnyTimes()
	remote.EXPECT().ListRecords(gomock.Any()).DoAndReturn(func(context.Context) ([]domain.RawRecord, error) {
		close(fetching)
		<-release
		return []domain.RawRecord{{"id": "r-1", "rep": "Y", "created_at": "2025-08-01T10:00:00.000Z"}}, nil
	})
	remote.EXPECT().AppendRecord(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	publisher.EXPECT().Enabled().Return(false).AnyTimes()

	store := NewStore(&config.Config{}, repo, remote, publisher,
		WithClock(fixedNow),
		WithIDGenerator(func() (string, error) { return "novo", nil }),
	)

	loaded := make(chan error, 1)
	go func() {
		_, err := store.Load(context.Background())
		loaded <- err
	}()

	<-fetching
	submitted, err := store.Submit(context.Background(), domain.Submission{Rep: "X", Calls: 3})
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-loaded)
	store.Wait()

	ids := func(records []domain.WeeklyRecord) []string {
		out := make([]string, 0, len(records))
		for _, record := range records {
			out = append(out, record.ID)
		}
		return out
	}

	persisted, err := repo.List(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{submitted.ID, "r-1"}, ids(store.Records()))
	assert.ElementsMatch(t, []string{submitted.ID, "r-1"}, ids(persisted))
}
