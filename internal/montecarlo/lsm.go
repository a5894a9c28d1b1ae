package montecarlo

// lsm.go — regresión Longstaff-Schwartz para ejercicio americano.
//
// Inducción hacia atrás sobre las fechas de monitoreo t_{M-1}..t_1 (en t_0 no
// hay ejercicio). El vector de cashflows se mantiene descontado a la fecha en
// curso: en cada paso hacia atrás se descuenta TODO el vector un Δt y luego se
// compara ejercicio vs continuación solo en los paths in-the-money. El orden
// temporal es estricto; la regresión de cada fecha depende del schedule ya
// finalizado de las fechas posteriores.

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/andresmr/griego/internal/domain"
)

// lsmMinITM es el mínimo de paths in-the-money para intentar la regresión.
// Por debajo (o con matriz de diseño mal condicionada) la fecha se salta:
// nadie ejerce, el schedule queda intacto. Evita que una regresión
// degenerada corrompa los cashflows.
const lsmMinITM = 4

// lsmBasisDegree es el grado de la base polinómica {1, S, S², ...}.
const lsmBasisDegree = 2

// lsmPrice valora un contrato americano sobre un PathSet ya simulado.
// Devuelve precio y error estándar de los cashflows descontados.
func (e *Engine) lsmPrice(c domain.ContractSpec, paths PathSet) Result {
	steps := e.cfg.NumSteps
	dt := c.Maturity / float64(steps)
	disc := math.Exp(-c.Rate * dt)

	// Schedule inicial: payoff intrínseco en la madurez.
	cash := make([]float64, len(paths))
	for i := range paths {
		cash[i] = c.Intrinsic(paths.Terminal(i))
	}

	for t := steps - 1; t >= 1; t-- {
		// Descuenta el schedule entero un paso, ITM u OTM por igual.
		for i := range cash {
			cash[i] *= disc
		}

		itm := itmIndices(c, paths, t)
		if len(itm) < lsmMinITM {
			continue
		}

		coef, ok := fitContinuation(c, paths, cash, itm, t)
		if !ok {
			continue
		}

		for _, i := range itm {
			s := paths[i][t]
			exercise := c.Intrinsic(s)
			continuation := coef[0] + coef[1]*s + coef[2]*s*s
			if exercise >= continuation {
				// Ejercicio: el cashflow posterior del path se descarta.
				cash[i] = exercise
			}
		}
	}

	// Último descuento t_1 → t_0 y promedio entre paths.
	for i := range cash {
		cash[i] *= disc
	}
	return summarize(cash)
}

// itmIndices devuelve los paths con valor intrínseco positivo en la fecha t.
func itmIndices(c domain.ContractSpec, paths PathSet, t int) []int {
	var itm []int
	for i := range paths {
		if c.Intrinsic(paths[i][t]) > 0 {
			itm = append(itm, i)
		}
	}
	return itm
}

// fitContinuation ajusta por mínimos cuadrados el cashflow descontado contra
// la base {1, S, S²} del spot en t, solo sobre los paths ITM. Devuelve
// ok=false si el sistema es singular o está mal condicionado.
func fitContinuation(c domain.ContractSpec, paths PathSet, cash []float64, itm []int, t int) ([]float64, bool) {
	design := mat.NewDense(len(itm), lsmBasisDegree+1, nil)
	target := mat.NewVecDense(len(itm), nil)

	for row, i := range itm {
		s := paths[i][t]
		design.Set(row, 0, 1)
		design.Set(row, 1, s)
		design.Set(row, 2, s*s)
		target.SetVec(row, cash[i])
	}

	var coef mat.VecDense
	if err := coef.SolveVec(design, target); err != nil {
		return nil, false
	}
	return []float64{coef.AtVec(0), coef.AtVec(1), coef.AtVec(2)}, true
}
