package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

// maxSubmissionBytes limita o corpo do formulário semanal
const maxSubmissionBytes = 1 << 20

type RecordListResponse struct {
	Records []domain.WeeklyRecord `json:"records"`
	Total   int                   `json:"total"`
}

// SubmitRecord recebe o formulário semanal. Valores malformados são
// convertidos, nunca recusados.
func SubmitRecord(recorder recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var submission domain.Submission

		r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
		if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		record, err := recorder.Submit(r.Context(), submission)
		if err != nil {
			handleRecordError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"record_id": record.ID,
			"operation": "submit",
		}).Info("Registro semanal salvo")

		writeJSON(w, r, http.StatusCreated, record)
	}
}

func ListRecords(recorder recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := filterQueryFrom(r)
		if !validateRequest(w, query) {
			return
		}

		records := reporting.FilterRecords(recorder.Records(), query.Filter())

		writeJSON(w, r, http.StatusOK, RecordListResponse{
			Records: records,
			Total:   len(records),
		})
	}
}

func DeleteRecord(recorder recording.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do registro não fornecido", nil)
			return
		}

		if err := recorder.Delete(r.Context(), id); err != nil {
			handleRecordError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"record_id": id,
			"operation": "delete",
		}).Info("Registro removido")

		w.WriteHeader(http.StatusNoContent)
	}
}
