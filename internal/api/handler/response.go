package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON escreve a resposta em JSON com o status informado
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// handleRecordError converte erros do repositório de registros em respostas da API
func handleRecordError(w http.ResponseWriter, r *http.Request, err error) {
	var recordErr *recording.RecordError
	if errors.As(err, &recordErr) {
		details := map[string]any{}
		if recordErr.RecordID != "" {
			details["record_id"] = recordErr.RecordID
		}
		if len(details) == 0 {
			details = nil
		}
		apiErrors.WriteError(w, recordErr.Code, recordErr.Error(), details)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado ao processar registros")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar registros", nil)
}
