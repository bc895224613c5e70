// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

// ErrSyncInProgress indica que já existe uma mesclagem em andamento
var ErrSyncInProgress = errors.New("sincronização já em andamento")

// Loader recarrega os registros mesclando com a planilha remota
type Loader interface {
	Load(ctx context.Context) (domain.LoadSummary, error)
}

type RemoteSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// RemoteSyncService reexecuta a carga com mesclagem remota periodicamente
type RemoteSyncService struct {
	scheduler           *gocron.Scheduler
	loader              Loader
	config              RemoteSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *domain.LoadSummary
	lastError           string
}

func NewRemoteSyncService(loader Loader, cfg *config.Config) *RemoteSyncService {
	syncConfig := RemoteSyncConfig{
		CronSchedule: cfg.RemoteSync.CronSchedule,
		SyncEnabled:  cfg.RemoteSync.Enabled,
	}

	log.L.WithFields(log.Fields{
		"sync_cron":    syncConfig.CronSchedule,
		"sync_enabled": syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de mesclagem remota carregada")

	return &RemoteSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		loader:    loader,
		config:    syncConfig,
	}
}

func (s *RemoteSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Mesclagem remota periódica desabilitada por configuração")
		return nil
	}

	log.L.WithField("sync_cron", s.config.CronSchedule).Info("Iniciando agendador de mesclagem remota")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunSync(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
			log.L.WithError(err).Error("Erro na mesclagem remota agendada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar mesclagem remota: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de mesclagem remota")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSync executa uma carga completa. Execuções sobrepostas são recusadas
// com ErrSyncInProgress.
func (s *RemoteSyncService) RunSync(ctx context.Context) (domain.LoadSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.ForContext(ctx).Info("Mesclagem remota já em andamento, ignorando")
		return domain.LoadSummary{}, ErrSyncInProgress
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary, err := s.loader.Load(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		return summary, err
	}

	s.lastError = summary.RemoteError
	s.lastSummary = &summary

	log.ForContext(ctx).WithFields(log.Fields{
		"records_total":  summary.Total,
		"records_remote": summary.Remote,
		"remote_failed":  summary.RemoteFailed,
		"duration_ms":    s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).Milliseconds(),
	}).Info("Mesclagem remota concluída")

	return summary, nil
}

// TriggerManualSync inicia uma mesclagem em segundo plano. Devolve falso
// quando já existe uma em andamento.
func (s *RemoteSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Mesclagem remota já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	log.L.Info("Iniciando mesclagem remota manual")
	go func() {
		if _, err := s.RunSync(context.Background()); err != nil && !errors.Is(err, ErrSyncInProgress) {
			log.L.WithError(err).Error("Erro na mesclagem remota manual")
		}
	}()

	return true
}

// IsRunning indica se há uma mesclagem em andamento
func (s *RemoteSyncService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *RemoteSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastSummary != nil {
		status["last_summary"] = *s.lastSummary
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	return status
}
