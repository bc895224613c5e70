package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vfg2006/sales-kpi-api/internal/domain"
	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// isoweek aceita rótulos AAAA-Www
	_ = v.RegisterValidation("isoweek", func(fl validator.FieldLevel) bool {
		return domain.IsWeekLabel(fl.Field().String())
	})

	return v
}

type UnlockRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// FilterQuery são os filtros aceitos na listagem e no painel
type FilterQuery struct {
	Week string `validate:"omitempty,isoweek"`
	Rep  string `validate:"omitempty,max=120"`
}

func (q FilterQuery) Filter() domain.Filter {
	return domain.Filter{Week: q.Week, Rep: q.Rep}
}

type WeekQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

func filterQueryFrom(r *http.Request) FilterQuery {
	query := r.URL.Query()
	return FilterQuery{
		Week: query.Get("week"),
		Rep:  query.Get("rep"),
	}
}

// validateRequest valida a estrutura e responde VAL_003 com os campos
// recusados. Devolve falso quando a resposta já foi escrita.
func validateRequest(w http.ResponseWriter, payload any) bool {
	err := validate.Struct(payload)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição inválida", nil)
		return false
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}

	code := apiErrors.ErrInvalidFormat
	for _, tag := range details {
		if tag == "required" {
			code = apiErrors.ErrMissingRequiredData
			break
		}
	}

	apiErrors.WriteError(w, code, "Validação falhou", details)
	return false
}
