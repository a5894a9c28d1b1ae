// Package render implementa ports.Presenter sobre la consola.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/andresmr/griego/internal/domain"
)

// Format selecciona la representación de salida.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Console implementa ports.Presenter.
type Console struct {
	out    io.Writer
	format Format
	table  bool
}

// NewConsole crea un presentador que escribe a stdout.
func NewConsole(format Format, table bool) *Console {
	return &Console{out: os.Stdout, format: format, table: table}
}

// NewConsoleWriter crea un presentador para tests.
func NewConsoleWriter(w io.Writer, format Format, table bool) *Console {
	return &Console{out: w, format: format, table: table}
}

// Present imprime la valoración en el modo configurado.
func (c *Console) Present(_ context.Context, run domain.Run) error {
	if c.format == FormatJSON {
		return c.printJSON(run)
	}
	if c.table {
		c.printTable(run)
		return nil
	}
	c.printCompact(run)
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(run domain.Run) {
	now := run.At.Local().Format("15:04:05")
	ct := run.Contract

	line := fmt.Sprintf("[%s] %s %s S=%g K=%g T=%g → price %.4f",
		now, ct.Style, ct.Type, ct.Spot, ct.Strike, ct.Maturity, run.Result.Price)
	if run.Result.StdErr != nil {
		line += fmt.Sprintf(" ±%.4f", *run.Result.StdErr)
	}
	if g := run.Result.Greeks; g != nil {
		line += fmt.Sprintf(" Δ%.4f Γ%.6f ν%.4f Θ%.4f ρ%.4f",
			g.Delta, g.Gamma, g.Vega, g.Theta, g.Rho)
	}
	fmt.Fprintln(c.out, line)
}

// printTable imprime la tabla completa de parámetros y resultados.
func (c *Console) printTable(run domain.Run) {
	ct := run.Contract
	fmt.Fprintf(c.out, "\n[%s] %s %s — run %s (%dms)\n",
		run.At.Local().Format("15:04:05"), ct.Style, ct.Type, run.ID, run.ElapsedMS)

	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")

	table.Append("Price", fmt.Sprintf("%.6f", run.Result.Price))
	if run.Result.StdErr != nil {
		table.Append("Std error", fmt.Sprintf("%.6f", *run.Result.StdErr))
	}
	if g := run.Result.Greeks; g != nil {
		table.Append("Delta (Δ)", fmt.Sprintf("%.4f", g.Delta))
		table.Append("Gamma (Γ)", fmt.Sprintf("%.6f", g.Gamma))
		table.Append("Vega (ν)", fmt.Sprintf("%.4f", g.Vega))
		table.Append("Theta (Θ)", fmt.Sprintf("%.4f", g.Theta))
		table.Append("Rho (ρ)", fmt.Sprintf("%.4f", g.Rho))
	}
	table.Append("Spot", fmt.Sprintf("%g", ct.Spot))
	table.Append("Strike", fmt.Sprintf("%g", ct.Strike))
	table.Append("Maturity (y)", fmt.Sprintf("%g", ct.Maturity))
	table.Append("Volatility", fmt.Sprintf("%g", ct.Volatility))
	table.Append("Rate", fmt.Sprintf("%g", ct.Rate))
	table.Append("Dividend", fmt.Sprintf("%g", ct.Dividend))
	if ct.Style == domain.StyleAsian {
		table.Append("Averaging", string(ct.Average))
	}
	if ct.Style == domain.StyleBarrier {
		table.Append("Barrier", fmt.Sprintf("%s @ %g", ct.Barrier, ct.BarrierLevel))
	}
	if ct.Style != domain.StyleEuropean {
		table.Append("Paths × steps", fmt.Sprintf("%d × %d (seed %d)",
			run.Sim.NumPaths, run.Sim.NumSteps, run.Sim.Seed))
	}

	table.Render()
}

// printJSON emite el run completo como documento JSON.
func (c *Console) printJSON(run domain.Run) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("render.Present: encode JSON: %w", err)
	}
	return nil
}

// PresentSweep imprime la curva de sensibilidad como tabla (o JSON).
func (c *Console) PresentSweep(_ context.Context, points []domain.SweepPoint) error {
	if c.format == FormatJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(points); err != nil {
			return fmt.Errorf("render.PresentSweep: encode JSON: %w", err)
		}
		return nil
	}

	fmt.Fprintf(c.out, "\n[%s] sensitivity sweep — %d points\n",
		time.Now().Format("15:04:05"), len(points))

	table := tablewriter.NewWriter(c.out)
	table.Header("Spot", "Price", "Delta")
	for _, pt := range points {
		table.Append(
			fmt.Sprintf("%.2f", pt.Spot),
			fmt.Sprintf("%.4f", pt.Price),
			fmt.Sprintf("%.4f", pt.Delta),
		)
	}
	table.Render()
	return nil
}
