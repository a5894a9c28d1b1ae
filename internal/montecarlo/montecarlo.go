package montecarlo

// montecarlo.go — despacho por estilo y estadísticos del estimador.

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/andresmr/griego/internal/domain"
)

// ErrUnsupportedStyle indica un estilo que el engine Monte Carlo no valora.
var ErrUnsupportedStyle = errors.New("unsupported option style")

// Result es el estimador Monte Carlo: precio y error estándar (σ/√N).
type Result struct {
	Price  float64
	StdErr float64
}

// Price valora el contrato generando un PathSet nuevo desde la semilla.
// european se valora aquí por payoff terminal (sin LSM): es la ruta que usan
// los tests de convergencia contra el precio analítico.
func (e *Engine) Price(c domain.ContractSpec) (Result, error) {
	return e.priceFromPaths(c, e.simulate(c))
}

// priceFromPaths valora el contrato sobre paths ya simulados. Es el punto de
// entrada de los bumps de Greeks: el PathSet bumpeado se generó con la misma
// semilla que el caso base.
func (e *Engine) priceFromPaths(c domain.ContractSpec, paths PathSet) (Result, error) {
	switch c.Style {
	case domain.StyleAmerican:
		return e.lsmPrice(c, paths), nil

	case domain.StyleEuropean:
		return discounted(terminalPayoffs(c, paths), c.Rate, c.Maturity), nil

	case domain.StyleAsian:
		return discounted(asianPayoffs(c, paths), c.Rate, c.Maturity), nil

	case domain.StyleBarrier:
		return discounted(barrierPayoffs(c, paths), c.Rate, c.Maturity), nil
	}
	return Result{}, fmt.Errorf("montecarlo.Price: %w: %q", ErrUnsupportedStyle, c.Style)
}

// discounted descuenta los payoffs a t=0 y los resume.
func discounted(payoffs []float64, rate, maturity float64) Result {
	df := math.Exp(-rate * maturity)
	for i := range payoffs {
		payoffs[i] *= df
	}
	return summarize(payoffs)
}

// summarize calcula media y error estándar muestral de los cashflows
// descontados.
func summarize(cash []float64) Result {
	mean, sd := stat.MeanStdDev(cash, nil)
	return Result{
		Price:  mean,
		StdErr: sd / math.Sqrt(float64(len(cash))),
	}
}
