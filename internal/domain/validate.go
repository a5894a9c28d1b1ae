package domain

// validate.go — precondiciones del contrato y de la simulación.
//
// El core de pricing nunca valida: todo chequeo de rango vive aquí y se
// ejecuta antes de invocar al pricer. Un error agrupa TODOS los problemas
// encontrados, no solo el primero.

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSpec marca violaciones de precondición en los parámetros.
var ErrInvalidSpec = errors.New("invalid contract spec")

// ErrInvalidSimulation marca una configuración de simulación inutilizable.
var ErrInvalidSimulation = errors.New("invalid simulation config")

// ValidateContract verifica que el contrato sea físicamente razonable.
func ValidateContract(c ContractSpec) error {
	var problems []string

	if c.Spot <= 0 {
		problems = append(problems, "underlying price must be positive")
	}
	if c.Strike <= 0 {
		problems = append(problems, "strike price must be positive")
	}
	if c.Maturity <= 0 {
		problems = append(problems, "time to maturity must be positive")
	}
	if c.Volatility <= 0 {
		problems = append(problems, "volatility must be positive")
	}
	if c.Dividend < 0 {
		problems = append(problems, "dividend yield must be non-negative")
	}

	switch c.Style {
	case StyleEuropean, StyleAmerican:
		// sin campos extra
	case StyleAsian:
		if c.Average != AverageArithmetic && c.Average != AverageGeometric {
			problems = append(problems, fmt.Sprintf("unknown average_type %q", c.Average))
		}
	case StyleBarrier:
		problems = append(problems, validateBarrier(c)...)
	default:
		problems = append(problems, fmt.Sprintf("unknown option_style %q", c.Style))
	}

	if c.Type != TypeCall && c.Type != TypePut {
		problems = append(problems, fmt.Sprintf("unknown option_type %q", c.Type))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSpec, strings.Join(problems, "; "))
	}
	return nil
}

// validateBarrier chequea que la barrera esté del lado correcto del spot.
// Una barrera up por debajo del spot (o down por encima) ya estaría tocada
// en t=0 y el contrato no tiene sentido.
func validateBarrier(c ContractSpec) []string {
	var problems []string

	switch c.Barrier {
	case BarrierUpIn, BarrierUpOut, BarrierDownIn, BarrierDownOut:
	default:
		problems = append(problems, fmt.Sprintf("unknown barrier_type %q", c.Barrier))
		return problems
	}

	if c.BarrierLevel <= 0 {
		problems = append(problems, "barrier level must be positive")
		return problems
	}
	if c.Barrier.IsUp() && c.BarrierLevel <= c.Spot {
		problems = append(problems, "for up-barriers, barrier level must be above the spot price")
	}
	if !c.Barrier.IsUp() && c.BarrierLevel >= c.Spot {
		problems = append(problems, "for down-barriers, barrier level must be below the spot price")
	}
	return problems
}

// ValidateSimulation verifica que la simulación tenga un tamaño utilizable.
func ValidateSimulation(s SimulationConfig) error {
	var problems []string

	if s.NumPaths < 1 {
		problems = append(problems, "num_simulations must be at least 1")
	}
	if s.NumSteps < 1 {
		problems = append(problems, "num_steps must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSimulation, strings.Join(problems, "; "))
	}
	return nil
}
