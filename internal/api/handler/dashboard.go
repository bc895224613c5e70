package handler

import (
	"net/http"

	"github.com/vfg2006/sales-kpi-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

// GetDashboard devolve o painel agregado para o filtro de semana e comercial
func GetDashboard(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := filterQueryFrom(r)
		if !validateRequest(w, query) {
			return
		}

		dashboard, err := reporter.Dashboard(r.Context(), query.Filter())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao calcular painel")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular painel", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	}
}

// GetDashboardFilters devolve as opções dos seletores de semana e comercial
func GetDashboardFilters(reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := reporter.Filters(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar filtros")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar filtros", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, options)
	}
}
