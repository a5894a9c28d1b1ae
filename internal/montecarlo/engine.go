// Package montecarlo implementa el motor de simulación: generación de paths
// GBM, evaluación de payoffs path-dependent, regresión Longstaff-Schwartz
// para ejercicio americano y Greeks por diferencias finitas con common
// random numbers (CRN).
package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/andresmr/griego/internal/domain"
)

// PathSet es la matriz N×(M+1) de trayectorias simuladas, incluyendo t=0.
// Pertenece a la llamada de simulación que la produjo: se comparte read-only
// entre payoffs y regresión, y nunca se reutiliza entre pricings distintos.
type PathSet [][]float64

// Terminal devuelve el valor final del path i.
func (p PathSet) Terminal(i int) float64 {
	row := p[i]
	return row[len(row)-1]
}

// Engine simula paths risk-neutral bajo GBM con semilla determinista.
//
// Contrato CRN: cada llamada a SimulatePaths crea una fuente nueva a partir
// de Seed, así que con la misma semilla y la misma forma (paths × steps) la
// secuencia de draws Z es bit-idéntica. De ahí que los bumps de Greeks
// puedan regenerar paths sin introducir ruido de muestreo.
type Engine struct {
	cfg domain.SimulationConfig
}

// New crea un Engine con la configuración dada.
func New(cfg domain.SimulationConfig) *Engine {
	return &Engine{cfg: cfg}
}

// newNormal crea la fuente N(0,1) sembrada. Es el único punto del engine
// que toca aleatoriedad.
func newNormal(seed uint64) distuv.Normal {
	return distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
}

// SimulatePaths genera el PathSet con el paso lognormal exacto
//
//	S(t+Δt) = S(t) · exp[(r − q − σ²/2)Δt + σ√Δt·Z]
//
// Los draws se consumen en orden path-major (path 0 completo, luego path 1,
// ...), lo que fija la asignación reproducible de la fuente única. Ningún
// path depende de otro.
func (e *Engine) SimulatePaths(spot, maturity, rate, sigma, dividend float64) PathSet {
	steps := e.cfg.NumSteps
	dt := maturity / float64(steps)

	drift := (rate - dividend - 0.5*sigma*sigma) * dt
	vol := sigma * math.Sqrt(dt)

	z := newNormal(e.cfg.Seed)

	paths := make(PathSet, e.cfg.NumPaths)
	for i := range paths {
		row := make([]float64, steps+1)
		row[0] = spot
		for t := 1; t <= steps; t++ {
			row[t] = row[t-1] * math.Exp(drift+vol*z.Rand())
		}
		paths[i] = row
	}
	return paths
}

// simulate genera los paths del contrato con sus parámetros actuales.
func (e *Engine) simulate(c domain.ContractSpec) PathSet {
	return e.SimulatePaths(c.Spot, c.Maturity, c.Rate, c.Volatility, c.Dividend)
}

// normalSequence expone la secuencia cruda de draws para una semilla.
// Hook de tests: verifica que el contrato CRN sea bit-idéntico.
func normalSequence(seed uint64, n int) []float64 {
	z := newNormal(seed)
	out := make([]float64, n)
	for i := range out {
		out[i] = z.Rand()
	}
	return out
}
