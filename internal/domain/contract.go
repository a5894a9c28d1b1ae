package domain

import (
	"fmt"
	"math"
	"time"
)

// OptionStyle identifica la familia del contrato.
type OptionStyle string

const (
	StyleEuropean OptionStyle = "european"
	StyleAmerican OptionStyle = "american"
	StyleAsian    OptionStyle = "asian"
	StyleBarrier  OptionStyle = "barrier"
)

// OptionType es call o put.
type OptionType string

const (
	TypeCall OptionType = "call"
	TypePut  OptionType = "put"
)

// AverageKind define cómo se promedia el path en opciones asiáticas.
type AverageKind string

const (
	AverageArithmetic AverageKind = "arithmetic"
	AverageGeometric  AverageKind = "geometric"
)

// BarrierKind define la dirección y el efecto de la barrera.
type BarrierKind string

const (
	BarrierUpIn    BarrierKind = "up-and-in"
	BarrierUpOut   BarrierKind = "up-and-out"
	BarrierDownIn  BarrierKind = "down-and-in"
	BarrierDownOut BarrierKind = "down-and-out"
)

// IsUp devuelve true si la barrera se observa por encima del spot.
func (b BarrierKind) IsUp() bool {
	return b == BarrierUpIn || b == BarrierUpOut
}

// IsKnockOut devuelve true si tocar la barrera desactiva el payoff.
func (b BarrierKind) IsKnockOut() bool {
	return b == BarrierUpOut || b == BarrierDownOut
}

// ParseOptionStyle valida y normaliza el estilo recibido de la config.
func ParseOptionStyle(s string) (OptionStyle, error) {
	switch OptionStyle(s) {
	case StyleEuropean, StyleAmerican, StyleAsian, StyleBarrier:
		return OptionStyle(s), nil
	}
	return "", fmt.Errorf("domain.ParseOptionStyle: unknown option_style %q", s)
}

// ParseOptionType valida y normaliza el tipo recibido de la config.
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case TypeCall, TypePut:
		return OptionType(s), nil
	}
	return "", fmt.Errorf("domain.ParseOptionType: unknown option_type %q", s)
}

// ParseAverageKind valida el tipo de promedio para opciones asiáticas.
func ParseAverageKind(s string) (AverageKind, error) {
	switch AverageKind(s) {
	case AverageArithmetic, AverageGeometric:
		return AverageKind(s), nil
	}
	return "", fmt.Errorf("domain.ParseAverageKind: unknown average_type %q", s)
}

// ParseBarrierKind valida el tipo de barrera.
func ParseBarrierKind(s string) (BarrierKind, error) {
	switch BarrierKind(s) {
	case BarrierUpIn, BarrierUpOut, BarrierDownIn, BarrierDownOut:
		return BarrierKind(s), nil
	}
	return "", fmt.Errorf("domain.ParseBarrierKind: unknown barrier_type %q", s)
}

// ContractSpec es la descripción inmutable de un contrato ya validado.
// El core de pricing asume que los invariantes (precios positivos, barrera
// en el lado correcto del spot, etc.) se verificaron con ValidateContract.
type ContractSpec struct {
	Style OptionStyle `json:"option_style"`
	Type  OptionType  `json:"option_type"`

	Spot       float64 `json:"underlying_price"` // S
	Strike     float64 `json:"strike_price"`     // K
	Maturity   float64 `json:"time_to_maturity"` // T en años
	Volatility float64 `json:"volatility"`       // σ
	Rate       float64 `json:"risk_free_rate"`   // r (continua)
	Dividend   float64 `json:"dividend_yield"`   // q continuo

	// Solo para Style == StyleAsian
	Average AverageKind `json:"average_type,omitempty"`

	// Solo para Style == StyleBarrier
	Barrier      BarrierKind `json:"barrier_type,omitempty"`
	BarrierLevel float64     `json:"barrier_level,omitempty"`
}

// Intrinsic devuelve el payoff de ejercicio inmediato con el subyacente en s.
func (c ContractSpec) Intrinsic(s float64) float64 {
	if c.Type == TypeCall {
		return math.Max(s-c.Strike, 0)
	}
	return math.Max(c.Strike-s, 0)
}

// WithSpot devuelve una copia con el spot desplazado (bumps de Greeks).
func (c ContractSpec) WithSpot(s float64) ContractSpec {
	c.Spot = s
	return c
}

// WithVolatility devuelve una copia con la volatilidad desplazada.
func (c ContractSpec) WithVolatility(sigma float64) ContractSpec {
	c.Volatility = sigma
	return c
}

// WithRate devuelve una copia con la tasa desplazada.
func (c ContractSpec) WithRate(r float64) ContractSpec {
	c.Rate = r
	return c
}

// WithMaturity devuelve una copia con la madurez desplazada.
func (c ContractSpec) WithMaturity(t float64) ContractSpec {
	c.Maturity = t
	return c
}

// SimulationConfig controla el tamaño y la semilla de la simulación.
type SimulationConfig struct {
	NumPaths int    `json:"num_simulations"`
	NumSteps int    `json:"num_steps"`
	Seed     uint64 `json:"seed"`
}

// DefaultSimulation devuelve la configuración reproducible por defecto.
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{NumPaths: 10000, NumSteps: 252, Seed: 42}
}

// Greeks agrupa las sensibilidades estándar.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// PriceResult es el resultado de una valoración.
// StdErr solo está presente en estilos Monte Carlo; Greeks solo si se pidieron.
type PriceResult struct {
	Price  float64  `json:"price"`
	StdErr *float64 `json:"std_error,omitempty"`
	Greeks *Greeks  `json:"greeks,omitempty"`
}

// Run es una valoración completada, lista para presentar o persistir.
type Run struct {
	ID        string           `json:"id"`
	At        time.Time        `json:"at"`
	Contract  ContractSpec     `json:"contract"`
	Sim       SimulationConfig `json:"simulation"`
	Result    PriceResult      `json:"result"`
	ElapsedMS int64            `json:"elapsed_ms"`
}

// SweepPoint es un punto de la curva de sensibilidad precio/delta vs spot.
type SweepPoint struct {
	Spot  float64 `json:"spot"`
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
}
