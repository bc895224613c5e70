package handler

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vfg2006/sales-kpi-api/internal/api/handler/router"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/recording"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-kpi-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Meta(team []string, now func() time.Time) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/team",
			Method:  http.MethodGet,
			Handler: GetTeam(team),
		},
		{
			Path:    "/v1/weeks/current",
			Method:  http.MethodGet,
			Handler: GetCurrentWeek(now),
		},
	}
}

func Records(recorder recording.Recorder, auth authenticating.Authenticator, transfer Transfer) []router.Route {
	gate := []func(http.Handler) http.Handler{middleware.DashboardGate(auth)}

	return []router.Route{
		{
			Path:    "/v1/records",
			Method:  http.MethodPost,
			Handler: SubmitRecord(recorder),
		},
		{
			Path:        "/v1/records",
			Method:      http.MethodGet,
			Handler:     ListRecords(recorder),
			Middlewares: gate,
		},
		{
			Path:        "/v1/records/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteRecord(recorder),
			Middlewares: gate,
		},
		{
			Path:        "/v1/records/export.csv",
			Method:      http.MethodGet,
			Handler:     ExportCSV(recorder, transfer),
			Middlewares: gate,
		},
		{
			Path:        "/v1/records/export.xlsx",
			Method:      http.MethodGet,
			Handler:     ExportXLSX(recorder, transfer),
			Middlewares: gate,
		},
		{
			Path:        "/v1/records/import",
			Method:      http.MethodPost,
			Handler:     ImportRecords(recorder, transfer),
			Middlewares: gate,
		},
	}
}

func Dashboard(reporter reporting.Reporter, auth authenticating.Authenticator) []router.Route {
	gate := []func(http.Handler) http.Handler{middleware.DashboardGate(auth)}

	return []router.Route{
		{
			Path:    "/v1/dashboard/unlock",
			Method:  http.MethodPost,
			Handler: UnlockDashboard(auth),
		},
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(reporter),
			Middlewares: gate,
		},
		{
			Path:        "/v1/dashboard/filters",
			Method:      http.MethodGet,
			Handler:     GetDashboardFilters(reporter),
			Middlewares: gate,
		},
	}
}

func Sync(syncer RemoteSyncer, auth authenticating.Authenticator) []router.Route {
	gate := []func(http.Handler) http.Handler{middleware.DashboardGate(auth)}

	return []router.Route{
		{
			Path:        "/v1/sync/run",
			Method:      http.MethodPost,
			Handler:     RunRemoteSync(syncer),
			Middlewares: gate,
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(syncer),
			Middlewares: gate,
		},
	}
}
