package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-kpi-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
)

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDashboardGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		header         string
		setup          func(auth *mocks.MockAuthenticator)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Painel aberto sem senha configurada",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(false)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Sem cabeçalho Authorization",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "Cabeçalho sem Bearer",
			header: "Basic abc",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrInvalidToken,
		},
		{
			name:   "Token expirado",
			header: "Bearer velho",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("velho").Return(nil,
					authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "Token válido",
			header: "Bearer bom",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().Enabled().Return(true)
				auth.EXPECT().ValidateToken("bom").Return(&domain.DashboardClaims{Scope: authenticating.DashboardScope}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthenticator(ctrl)
			tt.setup(auth)

			req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			DashboardGate(auth)(okHandler(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedCode)
			}
		})
	}
}

func TestDashboardGate_GravaClaimsNoContexto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := mocks.NewMockAuthenticator(ctrl)
	auth.EXPECT().Enabled().Return(true)
	auth.EXPECT().ValidateToken("bom").Return(&domain.DashboardClaims{Scope: "dashboard"}, nil)

	var seen *domain.DashboardClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/records", nil)
	req.Header.Set("Authorization", "Bearer bom")
	DashboardGate(auth)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "dashboard", seen.Scope)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:5173"})(okHandler(t))

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/team", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/team", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/records", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falhou")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
