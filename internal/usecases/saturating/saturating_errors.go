package saturating

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData indica menos de 2 dias distintos com gasto
	// positivo: o ajuste de curva e a saturação são indefinidos
	ErrInsufficientData = errors.New("dados insuficientes para ajustar a curva de resposta")

	// ErrFitDivergence indica que o ajuste de mínimos quadrados não
	// convergiu dentro do teto de iterações
	ErrFitDivergence = errors.New("ajuste de curva não convergiu")
)

// SaturationError carrega o canal ofensor junto com o erro base
type SaturationError struct {
	Err     error
	Channel string
	Details string
}

func (e *SaturationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("canal %s: %s: %s", e.Channel, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("canal %s: %s", e.Channel, e.Err.Error())
}

func (e *SaturationError) Unwrap() error {
	return e.Err
}

func NewSaturationError(baseErr error, channel, details string) *SaturationError {
	return &SaturationError{
		Err:     baseErr,
		Channel: channel,
		Details: details,
	}
}
