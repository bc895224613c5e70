package handler

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

type UnlockResponse struct {
	Token string `json:"token"`
}

// UnlockDashboard troca a senha do painel por um token de acesso
func UnlockDashboard(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnlockRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if !validateRequest(w, req) {
			return
		}

		token, err := service.Unlock(req.Password)
		if err != nil {
			handleUnlockError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, UnlockResponse{Token: token})
	}
}

func handleUnlockError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if errors.Is(err, authenticating.ErrInvalidCredentials) {
			log.ForContext(r.Context()).Warn("Tentativa de desbloqueio do painel com senha incorreta")
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro ao desbloquear painel")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao desbloquear painel", nil)
}
