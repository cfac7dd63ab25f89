package optimizing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBudget indica orçamento ou restrições que tornam a alocação
	// inviável (orçamento negativo, min > max, soma dos mínimos > orçamento)
	ErrInvalidBudget = errors.New("orçamento ou restrições de alocação inválidos")

	// ErrIterationCeiling indica que o water-filling estourou o teto de
	// passos antes de distribuir todo o orçamento
	ErrIterationCeiling = errors.New("teto de iterações da otimização excedido")
)

// OptimizationError carrega os detalhes da entrada que invalidou a alocação
type OptimizationError struct {
	Err     error
	Details string
}

func (e *OptimizationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *OptimizationError) Unwrap() error {
	return e.Err
}

func NewOptimizationError(baseErr error, details string) *OptimizationError {
	return &OptimizationError{
		Err:     baseErr,
		Details: details,
	}
}
