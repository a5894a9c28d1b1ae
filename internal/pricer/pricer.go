// Package pricer es el orquestador: compone modelo analítico, engine Monte
// Carlo, presentación y persistencia en un único punto de entrada por
// valoración.
package pricer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/andresmr/griego/internal/domain"
	"github.com/andresmr/griego/internal/montecarlo"
	"github.com/andresmr/griego/internal/ports"
)

// Request describe una valoración a ejecutar sobre datos ya estructurados.
type Request struct {
	Contract   domain.ContractSpec
	Sim        domain.SimulationConfig
	WithGreeks bool
}

// Pricer despacha por estilo y canaliza el resultado a los ports inyectados.
type Pricer struct {
	storage   ports.Storage   // opcional: nil desactiva el histórico
	presenter ports.Presenter // opcional: nil desactiva la salida
}

// New crea un Pricer con las dependencias inyectadas.
func New(storage ports.Storage, presenter ports.Presenter) *Pricer {
	return &Pricer{storage: storage, presenter: presenter}
}

// Price valora el contrato y devuelve el resultado sin presentarlo.
// european va por la vía analítica; american, asian y barrier por Monte
// Carlo. Ante un fallo no se devuelve nunca un resultado parcial.
func (p *Pricer) Price(req Request) (domain.PriceResult, error) {
	if err := domain.ValidateContract(req.Contract); err != nil {
		return domain.PriceResult{}, fmt.Errorf("pricer.Price: %w", err)
	}
	if err := domain.ValidateSimulation(req.Sim); err != nil {
		return domain.PriceResult{}, fmt.Errorf("pricer.Price: %w", err)
	}

	if req.Contract.Style == domain.StyleEuropean {
		return p.priceAnalytic(req)
	}
	return p.priceMonteCarlo(req)
}

// priceAnalytic valora con Black-Scholes cerrado y Greeks analíticos.
func (p *Pricer) priceAnalytic(req Request) (domain.PriceResult, error) {
	price, err := domain.BSPrice(req.Contract)
	if err != nil {
		return domain.PriceResult{}, fmt.Errorf("pricer.Price: %w", err)
	}

	result := domain.PriceResult{Price: price}
	if req.WithGreeks {
		greeks, err := domain.BSGreeks(req.Contract)
		if err != nil {
			return domain.PriceResult{}, fmt.Errorf("pricer.Price: %w", err)
		}
		result.Greeks = &greeks
	}
	return result, nil
}

// priceMonteCarlo valora por simulación con Greeks CRN si se pidieron.
func (p *Pricer) priceMonteCarlo(req Request) (domain.PriceResult, error) {
	engine := montecarlo.New(req.Sim)

	mc, err := engine.Price(req.Contract)
	if err != nil {
		return domain.PriceResult{}, fmt.Errorf("pricer.Price: %w", err)
	}

	stderr := mc.StdErr
	result := domain.PriceResult{Price: mc.Price, StdErr: &stderr}

	if req.WithGreeks {
		greeks, err := engine.Greeks(req.Contract)
		if err != nil {
			return domain.PriceResult{}, fmt.Errorf("pricer.Price: %w", err)
		}
		result.Greeks = &greeks
	}
	return result, nil
}

// Run ejecuta la valoración completa: pricing, presentación y persistencia.
func (p *Pricer) Run(ctx context.Context, req Request) (domain.Run, error) {
	started := time.Now()

	result, err := p.Price(req)
	if err != nil {
		return domain.Run{}, err
	}

	run := domain.Run{
		ID:        uuid.NewString(),
		At:        started.UTC(),
		Contract:  req.Contract,
		Sim:       req.Sim,
		Result:    result,
		ElapsedMS: time.Since(started).Milliseconds(),
	}

	slog.Info("pricing complete",
		"run_id", run.ID,
		"style", req.Contract.Style,
		"type", req.Contract.Type,
		"price", result.Price,
		"elapsed_ms", run.ElapsedMS,
	)

	if p.presenter != nil {
		if err := p.presenter.Present(ctx, run); err != nil {
			slog.Warn("presenter error", "err", err)
		}
	}

	if p.storage != nil {
		if err := p.storage.SaveRun(ctx, run); err != nil {
			slog.Warn("failed to persist run", "run_id", run.ID, "err", err)
		}
	}

	return run, nil
}
