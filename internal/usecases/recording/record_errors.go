package recording

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-kpi-api/pkg/apiErrors"
)

var (
	ErrRecordNotFound    = errors.New("registro não encontrado")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateID        = errors.New("erro ao gerar id do registro")
	ErrNothingToImport   = errors.New("nenhum registro para importar")
)

// RecordError é um erro com contexto adicional para registros
type RecordError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	RecordID string // ID do registro envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *RecordError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError cria um novo RecordError
func NewRecordError(err error, code string, details string) *RecordError {
	return &RecordError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func notFound(id string) *RecordError {
	return &RecordError{
		Err:      ErrRecordNotFound,
		Code:     apiErrors.ErrRecordNotFound,
		RecordID: id,
		Details:  id,
	}
}

func databaseError(err error) *RecordError {
	return NewRecordError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
}
