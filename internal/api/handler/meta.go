package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/utils"
)

type TeamResponse struct {
	Team   []string          `json:"team"`
	Colors map[string]string `json:"colors"`
}

type WeekResponse struct {
	Week   string `json:"week"`
	Date   string `json:"date"`
	Monday string `json:"monday"`
}

// GetTeam lista os comerciais configurados com suas cores
func GetTeam(team []string) http.HandlerFunc {
	response := TeamResponse{
		Team:   append([]string{}, team...),
		Colors: domain.ColorsByRep(team),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, response)
	}
}

// GetCurrentWeek devolve o rótulo ISO da semana de hoje ou de ?date=AAAA-MM-DD
func GetCurrentWeek(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := WeekQuery{Date: r.URL.Query().Get("date")}
		if !validateRequest(w, query) {
			return
		}

		date := now().UTC()
		if query.Date != "" {
			parsed, err := utils.ParseDate(query.Date)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida", nil)
				return
			}
			date = parsed
		}

		week := domain.WeekLabel(date)
		monday, _ := domain.ParseWeekLabel(week)

		writeJSON(w, r, http.StatusOK, WeekResponse{
			Week:   week,
			Date:   date.Format(time.DateOnly),
			Monday: monday.Format(time.DateOnly),
		})
	}
}
