package domain

// blackscholes.go — modelo analítico para contratos europeos.
//
// Se usa como pricer directo (style=european) y como oráculo de convergencia
// en los tests de Monte Carlo. Las fórmulas incluyen dividend yield continuo.

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal es la N(0,1) de gonum; CDF para N(·) y Prob para la densidad.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// d1d2 calcula los puntos estándar del modelo.
func d1d2(c ContractSpec) (float64, float64) {
	sqrtT := math.Sqrt(c.Maturity)
	d1 := (math.Log(c.Spot/c.Strike) + (c.Rate-c.Dividend+0.5*c.Volatility*c.Volatility)*c.Maturity) /
		(c.Volatility * sqrtT)
	return d1, d1 - c.Volatility*sqrtT
}

// BSPrice devuelve el precio cerrado Black-Scholes del contrato.
// Falla con ErrInvalidSpec si σ≤0 o T≤0: el caso degenerado lo guarda el caller.
func BSPrice(c ContractSpec) (float64, error) {
	if c.Volatility <= 0 || c.Maturity <= 0 {
		return 0, fmt.Errorf("%w: black-scholes requires sigma > 0 and T > 0", ErrInvalidSpec)
	}

	d1, d2 := d1d2(c)
	discS := c.Spot * math.Exp(-c.Dividend*c.Maturity)
	discK := c.Strike * math.Exp(-c.Rate*c.Maturity)

	if c.Type == TypeCall {
		return discS*stdNormal.CDF(d1) - discK*stdNormal.CDF(d2), nil
	}
	return discK*stdNormal.CDF(-d2) - discS*stdNormal.CDF(-d1), nil
}

// BSGreeks devuelve las sensibilidades analíticas.
// Theta se expresa como decay por día calendario (dividido por 365).
func BSGreeks(c ContractSpec) (Greeks, error) {
	if c.Volatility <= 0 || c.Maturity <= 0 {
		return Greeks{}, fmt.Errorf("%w: black-scholes requires sigma > 0 and T > 0", ErrInvalidSpec)
	}

	d1, d2 := d1d2(c)
	sqrtT := math.Sqrt(c.Maturity)
	eqT := math.Exp(-c.Dividend * c.Maturity)
	erT := math.Exp(-c.Rate * c.Maturity)

	var g Greeks

	if c.Type == TypeCall {
		g.Delta = eqT * stdNormal.CDF(d1)
	} else {
		g.Delta = eqT * (stdNormal.CDF(d1) - 1)
	}

	// Gamma y vega son iguales para call y put.
	g.Gamma = eqT * stdNormal.Prob(d1) / (c.Spot * c.Volatility * sqrtT)
	g.Vega = c.Spot * eqT * stdNormal.Prob(d1) * sqrtT

	common := -(c.Spot * stdNormal.Prob(d1) * c.Volatility * eqT) / (2 * sqrtT)
	if c.Type == TypeCall {
		g.Theta = (common - c.Rate*c.Strike*erT*stdNormal.CDF(d2) +
			c.Dividend*c.Spot*eqT*stdNormal.CDF(d1)) / 365
		g.Rho = c.Strike * c.Maturity * erT * stdNormal.CDF(d2)
	} else {
		g.Theta = (common + c.Rate*c.Strike*erT*stdNormal.CDF(-d2) -
			c.Dividend*c.Spot*eqT*stdNormal.CDF(-d1)) / 365
		g.Rho = -c.Strike * c.Maturity * erT * stdNormal.CDF(-d2)
	}

	return g, nil
}
