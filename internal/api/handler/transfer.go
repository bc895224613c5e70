package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/sales-kpi-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-kpi-api/internal/csvcodec"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

const (
	maxImportBytes = 10 << 20

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Transfer agrupa o relógio e o gerador de ids usados na importação
type Transfer struct {
	Now   func() time.Time
	NewID func() (string, error)
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

func attachment(w http.ResponseWriter, contentType string, fileName string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
}

func filteredRecords(w http.ResponseWriter, r *http.Request, recorder recording.Recorder) ([]domain.WeeklyRecord, bool) {
	query := filterQueryFrom(r)
	if !validateRequest(w, query) {
		return nil, false
	}
	return reporting.FilterRecords(recorder.Records(), query.Filter()), true
}

// ExportCSV baixa os registros em CSV, opcionalmente filtrados
func ExportCSV(recorder recording.Recorder, transfer Transfer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, ok := filteredRecords(w, r, recorder)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := csvcodec.Export(&buf, records); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar CSV")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar CSV", nil)
			return
		}

		attachment(w, contentTypeCSV, csvcodec.FileName(transfer.Now(), "csv"))
		_, _ = w.Write(buf.Bytes())
	}
}

// ExportXLSX baixa os registros em planilha com a aba de resumo por comercial
func ExportXLSX(recorder recording.Recorder, transfer Transfer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, ok := filteredRecords(w, r, recorder)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := spreadsheet.WriteWorkbook(&buf, records, reporting.ByRep(records, nil)); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar planilha")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}

		attachment(w, contentTypeXLSX, csvcodec.FileName(transfer.Now(), "xlsx"))
		_, _ = w.Write(buf.Bytes())
	}
}

// ImportRecords aceita um arquivo multipart no campo "file" ou o CSV direto
// no corpo. Planilhas XLSX são reconhecidas pela extensão ou content type.
func ImportRecords(recorder recording.Recorder, transfer Transfer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

		content, fileName, contentType, err := readUpload(r)
		if err != nil {
			logger.WithError(err).Warn("Upload de importação inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Arquivo de importação inválido", nil)
			return
		}

		var records []domain.WeeklyRecord
		if isSpreadsheet(fileName, contentType) {
			records, err = spreadsheet.ReadRecords(bytes.NewReader(content), transfer.Now, transfer.NewID)
		} else {
			records, err = csvcodec.Import(bytes.NewReader(content), transfer.Now, transfer.NewID)
		}
		if err != nil {
			logger.WithError(err).Warn("Erro ao ler arquivo importado")
			if errors.Is(err, csvcodec.ErrEmptyCSV) {
				apiErrors.WriteError(w, apiErrors.ErrEmptyFile, "Arquivo vazio", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Erro ao ler o arquivo", map[string]string{"error": err.Error()})
			return
		}

		imported, err := recorder.Import(r.Context(), records)
		if err != nil {
			handleRecordError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, ImportResponse{Imported: imported})
	}
}

func readUpload(r *http.Request) ([]byte, string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "multipart/form-data" {
		content, err := io.ReadAll(r.Body)
		return content, "", mediaType, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", errors.Wrap(err, "campo file ausente")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", errors.Wrap(err, "erro ao ler arquivo")
	}

	partType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	return content, header.Filename, partType, nil
}

func isSpreadsheet(fileName string, contentType string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".xlsx") || contentType == contentTypeXLSX
}
