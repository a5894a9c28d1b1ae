package montecarlo

// payoff.go — evaluación de payoffs sin descontar, un valor por path.
//
// Cada variante consume una fila del PathSet (o un estadístico de ella) y el
// ContractSpec. El descuento a t=0 lo aplica quien promedia.

import (
	"math"

	"github.com/andresmr/griego/internal/domain"
)

// terminalPayoffs devuelve el payoff vanilla sobre el valor terminal.
// Sirve para european (pricing MC directo) y como payoff base de barrier.
func terminalPayoffs(c domain.ContractSpec, paths PathSet) []float64 {
	out := make([]float64, len(paths))
	for i := range paths {
		out[i] = c.Intrinsic(paths.Terminal(i))
	}
	return out
}

// asianPayoffs sustituye el valor terminal por el promedio del path completo
// (observaciones en t=0..M), aritmético o geométrico según el contrato.
func asianPayoffs(c domain.ContractSpec, paths PathSet) []float64 {
	out := make([]float64, len(paths))
	for i, row := range paths {
		var avg float64
		if c.Average == domain.AverageGeometric {
			sumLog := 0.0
			for _, s := range row {
				sumLog += math.Log(s)
			}
			avg = math.Exp(sumLog / float64(len(row)))
		} else {
			sum := 0.0
			for _, s := range row {
				sum += s
			}
			avg = sum / float64(len(row))
		}
		out[i] = c.Intrinsic(avg)
	}
	return out
}

// barrierPayoffs escanea cada path una vez buscando la primera observación
// que cruce la barrera. El monitoreo es discreto: solo cuentan los M+1
// valores simulados, sin corrección de continuidad.
func barrierPayoffs(c domain.ContractSpec, paths PathSet) []float64 {
	out := make([]float64, len(paths))
	for i, row := range paths {
		breached := false
		if c.Barrier.IsUp() {
			for _, s := range row {
				if s >= c.BarrierLevel {
					breached = true
					break
				}
			}
		} else {
			for _, s := range row {
				if s <= c.BarrierLevel {
					breached = true
					break
				}
			}
		}

		// Knock-out paga solo si nunca se tocó; knock-in solo si se tocó.
		if breached == c.Barrier.IsKnockOut() {
			out[i] = 0
			continue
		}
		out[i] = c.Intrinsic(paths.Terminal(i))
	}
	return out
}
