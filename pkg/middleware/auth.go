package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

type contextKey string

const (
	ContextKeyDashboard contextKey = "dashboard"
)

// DashboardGate exige o token de acesso ao painel. Sem senha configurada a
// barreira deixa tudo passar.
func DashboardGate(auth authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cabeçalho Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := auth.ValidateToken(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Token de painel recusado")

				code := apiErrors.ErrInvalidToken
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) && authErr.Code != "" {
					code = authErr.Code
				}
				message := "Token inválido"
				if errors.Is(err, authenticating.ErrExpiredToken) {
					message = "Token expirado"
				}
				apiErrors.WriteError(w, code, message, nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyDashboard, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext devolve as claims gravadas pela barreira, se houver
func ClaimsFromContext(ctx context.Context) (*domain.DashboardClaims, bool) {
	claims, ok := ctx.Value(ContextKeyDashboard).(*domain.DashboardClaims)
	return claims, ok
}
