package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/scheduler"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

// RemoteSyncer é a parte do agendador usada pelas rotas de sincronização
type RemoteSyncer interface {
	RunSync(ctx context.Context) (domain.LoadSummary, error)
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunRemoteSync dispara a mesclagem com a planilha remota. Com ?wait=true a
// resposta traz o resultado da carga.
func RunRemoteSync(syncer RemoteSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

		if !wait {
			if !syncer.TriggerManualSync() {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento", nil)
				return
			}
			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": "Sincronização iniciada",
			})
			return
		}

		summary, err := syncer.RunSync(r.Context())
		if err != nil {
			if errors.Is(err, scheduler.ErrSyncInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Sincronização já em andamento", nil)
				return
			}
			handleRecordError(w, r, err)
			return
		}

		if summary.RemoteFailed {
			log.ForContext(r.Context()).WithField("remote_error", summary.RemoteError).Warn("Sincronização manual sem acesso à planilha remota")
			apiErrors.WriteError(w, apiErrors.ErrCommunication, "Erro de rede", summary)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

func GetSyncStatus(syncer RemoteSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, syncer.GetStatus())
	}
}
