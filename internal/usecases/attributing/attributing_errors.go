package attributing

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel indica um modelo de atribuição fora do conjunto suportado
	ErrUnknownModel = errors.New("modelo de atribuição desconhecido")
)

// AttributionError é um erro com o contexto da requisição de atribuição
type AttributionError struct {
	Err     error
	Details string
}

func (e *AttributionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AttributionError) Unwrap() error {
	return e.Err
}

func NewAttributionError(baseErr error, details string) *AttributionError {
	return &AttributionError{
		Err:     baseErr,
		Details: details,
	}
}
