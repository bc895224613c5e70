package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-kpi-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-kpi-api/internal/api/handler/router"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/scheduler"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	recordmocks "github.com/vfg2006/sales-kpi-api/internal/usecases/recording/mocks"
	reportmocks "github.com/vfg2006/sales-kpi-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
)

var testNow = func() time.Time { return time.Date(2025, 8, 22, 16, 0, 0, 0, time.UTC) }

func testTransfer() Transfer {
	n := 0
	return Transfer{
		Now: testNow,
		NewID: func() (string, error) {
			n++
			return "imp" + string(rune('0'+n)), nil
		},
	}
}

// openGate devolve uma barreira desabilitada para as rotas protegidas
func openGate(ctrl *gomock.Controller) *authmocks.MockAuthenticator {
	auth := authmocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().Enabled().Return(false).AnyTimes()
	return auth
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func serve(rt router.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func TestSubmitRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		body           string
		setup          func(recorder *recordmocks.MockRecorder)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Formulário salvo",
			body: `{"rep":"Commercial 1","week":"2025-W34","calls":"12,5","revenue_eur":9000,"prospects":["Acme"]}`,
			setup: func(recorder *recordmocks.MockRecorder) {
				recorder.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, submission domain.Submission) (domain.WeeklyRecord, error) {
						assert.Equal(t, "12,5", submission.Calls)
						assert.Equal(t, 9000.0, submission.RevenueEUR)
						return domain.WeeklyRecord{ID: "abc", Rep: domain.ToText(submission.Rep), Week: domain.ToText(submission.Week)}, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Campos com tipos inesperados são aceitos",
			body: `{"rep":5,"prospects":"Acme | Foo","quotes":null,"notes":12}`,
			setup: func(recorder *recordmocks.MockRecorder) {
				recorder.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, submission domain.Submission) (domain.WeeklyRecord, error) {
						assert.Equal(t, []string{"Acme", "Foo"}, domain.ToList(submission.Prospects))
						assert.Equal(t, "5", domain.ToText(submission.Rep))
						return domain.WeeklyRecord{ID: "abc"}, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "JSON inválido",
			body:           `{"rep":`,
			setup:          func(recorder *recordmocks.MockRecorder) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name: "Falha no banco local",
			body: `{}`,
			setup: func(recorder *recordmocks.MockRecorder) {
				recorder.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(domain.WeeklyRecord{},
					recording.NewRecordError(recording.ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "locked"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := recordmocks.NewMockRecorder(ctrl)
			tt.setup(recorder)

			rt := router.New(router.WithRoutes(Records(recorder, openGate(ctrl), testTransfer())...))
			rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/records", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
			}
		})
	}
}

func TestListRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := recordmocks.NewMockRecorder(ctrl)
	recorder.EXPECT().Records().Return(domain.SampleRecords()).AnyTimes()
	rt := router.New(router.WithRoutes(Records(recorder, openGate(ctrl), testTransfer())...))

	t.Run("Filtra por semana e comercial", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/records?week=2025-W34&rep=Commercial+2", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var response RecordListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Equal(t, 1, response.Total)
		assert.Equal(t, "s2", response.Records[0].ID)
	})

	t.Run("Semana em formato inválido", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/records?week=34", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidFormat, apiErr.Code)
		assert.Equal(t, map[string]any{"Week": "isoweek"}, apiErr.Details)
	})
}

func TestListRecords_BarreiraAtiva(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := recordmocks.NewMockRecorder(ctrl)
	auth := authmocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().Enabled().Return(true)

	rt := router.New(router.WithRoutes(Records(recorder, auth, testTransfer())...))
	rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/records", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := recordmocks.NewMockRecorder(ctrl)
	rt := router.New(router.WithRoutes(Records(recorder, openGate(ctrl), testTransfer())...))

	t.Run("Registro removido", func(t *testing.T) {
		recorder.EXPECT().Delete(gomock.Any(), "s1").Return(nil)

		rec := serve(rt, httptest.NewRequest(http.MethodDelete, "/v1/records/s1", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Registro inexistente", func(t *testing.T) {
		recorder.EXPECT().Delete(gomock.Any(), "zz").Return(&recording.RecordError{
			Err:      recording.ErrRecordNotFound,
			Code:     apiErrors.ErrRecordNotFound,
			RecordID: "zz",
		})

		rec := serve(rt, httptest.NewRequest(http.MethodDelete, "/v1/records/zz", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, map[string]any{"record_id": "zz"}, decodeError(t, rec).Details)
	})
}

func TestExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := recordmocks.NewMockRecorder(ctrl)
	recorder.EXPECT().Records().Return(domain.SampleRecords())
	rt := router.New(router.WithRoutes(Records(recorder, openGate(ctrl), testTransfer())...))

	rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/records/export.csv?week=2025-W35", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="kpi_2025-08-22.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "id,rep,week,"))
}

func TestExportXLSX(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := recordmocks.NewMockRecorder(ctrl)
	recorder.EXPECT().Records().Return(domain.SampleRecords())
	rt := router.New(router.WithRoutes(Records(recorder, openGate(ctrl), testTransfer())...))

	rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/records/export.xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))

	records, err := spreadsheet.ReadRecords(bytes.NewReader(rec.Body.Bytes()), testNow, func() (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Len(t, records, 6)
}

func TestImportRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := recordmocks.NewMockRecorder(ctrl)
	rt := router.New(router.WithRoutes(Records(recorder, openGate(ctrl), testTransfer())...))

	t.Run("CSV no corpo", func(t *testing.T) {
		recorder.EXPECT().Import(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, records []domain.WeeklyRecord) (int, error) {
				require.Len(t, records, 1)
				assert.Equal(t, "Commercial 1", records[0].Rep)
				assert.Equal(t, 12.0, records[0].Calls)
				return len(records), nil
			})

		body := "rep,week,calls\nCommercial 1,2025-W34,12\n"
		req := httptest.NewRequest(http.MethodPost, "/v1/records/import", strings.NewReader(body))
		req.Header.Set("Content-Type", "text/csv")

		rec := serve(rt, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"imported":1}`, rec.Body.String())
	})

	t.Run("Planilha enviada como multipart", func(t *testing.T) {
		recorder.EXPECT().Import(gomock.Any(), gomock.Len(6)).Return(6, nil)

		var workbook bytes.Buffer
		require.NoError(t, spreadsheet.WriteWorkbook(&workbook, domain.SampleRecords(), nil))

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("file", "kpi.xlsx")
		require.NoError(t, err)
		_, err = part.Write(workbook.Bytes())
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/records/import", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := serve(rt, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Arquivo vazio", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/records/import", strings.NewReader("\n\n")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrEmptyFile, decodeError(t, rec).Code)
	})

	t.Run("Cabeçalho desconhecido", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/records/import", strings.NewReader("foo,bar\n1,2\n")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})
}

func TestGetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := reportmocks.NewMockReporter(ctrl)
	rt := router.New(router.WithRoutes(Dashboard(reporter, openGate(ctrl))...))

	t.Run("Painel filtrado", func(t *testing.T) {
		reporter.EXPECT().Dashboard(gomock.Any(), domain.Filter{Week: "2025-W34"}).Return(&domain.Dashboard{
			Filter: domain.Filter{Week: "2025-W34"},
			Totals: domain.Totals{Records: 3, Counters: domain.Counters{Calls: 131}},
		}, nil)

		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/dashboard?week=2025-W34", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var dashboard domain.Dashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))
		assert.Equal(t, 131.0, dashboard.Totals.Calls)
	})

	t.Run("Filtros disponíveis", func(t *testing.T) {
		reporter.EXPECT().Filters(gomock.Any()).Return(&domain.FilterOptions{
			Weeks: []string{"2025-W34"},
			Reps:  []string{"Commercial 1"},
		}, nil)

		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/dashboard/filters", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"weeks":["2025-W34"],"reps":["Commercial 1"]}`, rec.Body.String())
	})

	t.Run("Semana inválida", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/dashboard?week=2025-34", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnlockDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		body           string
		setup          func(auth *authmocks.MockAuthenticator)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Senha correta",
			body: `{"password":"kpi2025"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().Unlock("kpi2025").Return("jwt", nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Senha incorreta",
			body: `{"password":"errada"}`,
			setup: func(auth *authmocks.MockAuthenticator) {
				auth.EXPECT().Unlock("errada").Return("",
					authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, ""))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidCredentials,
		},
		{
			name:           "Senha ausente",
			body:           `{}`,
			setup:          func(auth *authmocks.MockAuthenticator) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := authmocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			rt := router.New(router.WithRoutes(Dashboard(reportmocks.NewMockReporter(ctrl), auth)...))
			rec := serve(rt, httptest.NewRequest(http.MethodPost, "/v1/dashboard/unlock", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
			} else {
				assert.JSONEq(t, `{"token":"jwt"}`, rec.Body.String())
			}
		})
	}
}

type fakeSyncer struct {
	summary   domain.LoadSummary
	err       error
	triggered bool
	status    map[string]any
}

func (f *fakeSyncer) RunSync(ctx context.Context) (domain.LoadSummary, error) {
	return f.summary, f.err
}

func (f *fakeSyncer) TriggerManualSync() bool {
	return f.triggered
}

func (f *fakeSyncer) GetStatus() map[string]any {
	return f.status
}

func TestRunRemoteSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		path           string
		syncer         *fakeSyncer
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Disparo em segundo plano",
			path:           "/v1/sync/run",
			syncer:         &fakeSyncer{triggered: true},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "Disparo com sincronização em andamento",
			path:           "/v1/sync/run",
			syncer:         &fakeSyncer{triggered: false},
			expectedStatus: http.StatusConflict,
			expectedCode:   apiErrors.ErrSyncInProgress,
		},
		{
			name:           "Execução síncrona concluída",
			path:           "/v1/sync/run?wait=true",
			syncer:         &fakeSyncer{summary: domain.LoadSummary{Total: 6, Remote: 6}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Execução síncrona sem rede",
			path:           "/v1/sync/run?wait=true",
			syncer:         &fakeSyncer{summary: domain.LoadSummary{Total: 6, RemoteFailed: true, RemoteError: "dial tcp"}},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   apiErrors.ErrCommunication,
		},
		{
			name:           "Execução síncrona sobreposta",
			path:           "/v1/sync/run?wait=true",
			syncer:         &fakeSyncer{err: scheduler.ErrSyncInProgress},
			expectedStatus: http.StatusConflict,
			expectedCode:   apiErrors.ErrSyncInProgress,
		},
		{
			name:           "Erro inesperado",
			path:           "/v1/sync/run?wait=true",
			syncer:         &fakeSyncer{err: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(router.WithRoutes(Sync(tt.syncer, openGate(ctrl))...))
			rec := serve(rt, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				apiErr := decodeError(t, rec)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				if tt.expectedCode == apiErrors.ErrCommunication {
					assert.Equal(t, "Erro de rede", apiErr.Message)
				}
			}
		})
	}
}

func TestGetSyncStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	syncer := &fakeSyncer{status: map[string]any{"sync_enabled": true, "sync_cron": "*/15 * * * *"}}
	rt := router.New(router.WithRoutes(Sync(syncer, openGate(ctrl))...))

	rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sync_enabled":true,"sync_cron":"*/15 * * * *"}`, rec.Body.String())
}

func TestMetaRoutes(t *testing.T) {
	rt := router.New(router.WithRoutes(Meta([]string{"Commercial 1", "Commercial 2"}, testNow)...))

	t.Run("Equipe com cores", func(t *testing.T) {
		rec := serve(rt, httptest.NewRequest(http.MethodGet, "/v1/team", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var response TeamResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, []string{"Commercial 1", "Commercial 2"}, response.Team)
		assert.Equal(t, "#317AC1", response.Colors["Commercial 2"])
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       WeekResponse
	}{
		{
			name:           "Semana atual",
			path:           "/v1/weeks/current",
			expectedStatus: http.StatusOK,
			expected:       WeekResponse{Week: "2025-W34", Date: "2025-08-22", Monday: "2025-08-18"},
		},
		{
			name:           "Virada de ano ISO",
			path:           "/v1/weeks/current?date=2021-01-03",
			expectedStatus: http.StatusOK,
			expected:       WeekResponse{Week: "2020-W53", Date: "2021-01-03", Monday: "2020-12-28"},
		},
		{
			name:           "Data inválida",
			path:           "/v1/weeks/current?date=03/01/2021",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(rt, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response WeekResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
				assert.Equal(t, tt.expected, response)
			}
		})
	}
}

func TestHealthcheck(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck()...))

	rec := serve(rt, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = serve(rt, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sales_kpi_")
}
