package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/sales-kpi-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/authenticator.go -package=mocks

const (
	// DashboardScope é o escopo gravado nos tokens do painel
	DashboardScope = "dashboard"
	tokenIssuer    = "sales-kpi-api"
)

// Authenticator controla o acesso ao painel. É uma barreira simples de senha
// compartilhada, sem usuários nem sessões.
type Authenticator interface {
	Enabled() bool
	Unlock(password string) (string, error)
	ValidateToken(tokenString string) (*domain.DashboardClaims, error)
}

type Service struct {
	passwordHash []byte
	secretKey    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewService prepara a barreira. Sem hash configurado a senha em texto é
// convertida em hash na inicialização. Sem nenhum dos dois o painel fica aberto.
func NewService(cfg *config.Config) (*Service, error) {
	s := &Service{
		secretKey: []byte(cfg.Dashboard.SecretKey),
		tokenTTL:  cfg.Dashboard.TokenTTL,
		now:       time.Now,
	}

	if s.tokenTTL <= 0 {
		s.tokenTTL = 12 * time.Hour
	}

	switch {
	case cfg.Dashboard.PasswordHash != "":
		s.passwordHash = []byte(cfg.Dashboard.PasswordHash)
	case cfg.Dashboard.Password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Dashboard.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar hash da senha do painel: %w", err)
		}
		s.passwordHash = hash
	default:
		log.L.Warn("Nenhuma senha de painel configurada, o painel está aberto")
	}

	return s, nil
}

func (s *Service) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Unlock confere a senha e devolve um token de acesso ao painel
func (s *Service) Unlock(password string) (string, error) {
	if !s.Enabled() {
		return "", NewAuthError(ErrGateDisabled, apiErrors.ErrInvalidRequest, "")
	}

	if password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Senha é obrigatória")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	token, err := s.generateJWT()
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de acesso")
	}

	return token, nil
}

func (s *Service) generateJWT() (string, error) {
	now := s.now()
	claims := domain.DashboardClaims{
		Scope: DashboardScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*domain.DashboardClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.DashboardClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.DashboardClaims)
	if !ok || !token.Valid || claims.Scope != DashboardScope {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
