package pricer

// sensitivity.go — curva de sensibilidad precio/delta contra el spot.
//
// Re-valora el contrato en una grilla de spots. Para estilos Monte Carlo cada
// punto regenera paths desde la misma semilla (CRN), así que la curva sale
// suave en vez de serpentear con el ruido de muestreo.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andresmr/griego/internal/domain"
	"github.com/andresmr/griego/internal/montecarlo"
)

// SweepSpot valora el contrato en n spots equiespaciados de [from, to] y
// devuelve los puntos ordenados. Los spots que invaliden el contrato (p.ej.
// cruzar una barrera down) se omiten con un aviso.
func (p *Pricer) SweepSpot(ctx context.Context, req Request, from, to float64, n int) ([]domain.SweepPoint, error) {
	if n < 2 || to <= from || from <= 0 {
		return nil, fmt.Errorf("pricer.SweepSpot: invalid range [%g, %g] with %d points", from, to, n)
	}
	if err := domain.ValidateSimulation(req.Sim); err != nil {
		return nil, fmt.Errorf("pricer.SweepSpot: %w", err)
	}

	step := (to - from) / float64(n-1)
	points := make([]domain.SweepPoint, 0, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pricer.SweepSpot: %w", err)
		}

		spot := from + step*float64(i)
		c := req.Contract.WithSpot(spot)

		if err := domain.ValidateContract(c); err != nil {
			slog.Debug("sweep point skipped", "spot", spot, "err", err)
			continue
		}

		point, err := p.sweepPoint(c, req.Sim)
		if err != nil {
			return nil, fmt.Errorf("pricer.SweepSpot: spot %g: %w", spot, err)
		}
		points = append(points, point)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("pricer.SweepSpot: no valid spots in range [%g, %g]", from, to)
	}
	return points, nil
}

// sweepPoint valora precio y delta en un solo spot.
func (p *Pricer) sweepPoint(c domain.ContractSpec, sim domain.SimulationConfig) (domain.SweepPoint, error) {
	if c.Style == domain.StyleEuropean {
		price, err := domain.BSPrice(c)
		if err != nil {
			return domain.SweepPoint{}, err
		}
		greeks, err := domain.BSGreeks(c)
		if err != nil {
			return domain.SweepPoint{}, err
		}
		return domain.SweepPoint{Spot: c.Spot, Price: price, Delta: greeks.Delta}, nil
	}

	engine := montecarlo.New(sim)
	mc, err := engine.Price(c)
	if err != nil {
		return domain.SweepPoint{}, err
	}
	delta, err := engine.Delta(c)
	if err != nil {
		return domain.SweepPoint{}, err
	}
	return domain.SweepPoint{Spot: c.Spot, Price: mc.Price, Delta: delta}, nil
}
