package render

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresmr/griego/internal/domain"
)

func sampleRun() domain.Run {
	stderr := 0.0421
	greeks := domain.Greeks{Delta: 0.4289, Gamma: 0.0275, Vega: 27.5364, Theta: -0.0180, Rho: 19.3763}
	return domain.Run{
		ID: "run-test-1",
		At: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Contract: domain.ContractSpec{
			Style: domain.StyleAmerican, Type: domain.TypePut,
			Spot: 100, Strike: 105, Maturity: 0.5,
			Volatility: 0.2, Rate: 0.05, Dividend: 0.02,
		},
		Sim:       domain.DefaultSimulation(),
		Result:    domain.PriceResult{Price: 7.8421, StdErr: &stderr, Greeks: &greeks},
		ElapsedMS: 12,
	}
}

func TestPresent_Compact(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatText, false)

	require.NoError(t, c.Present(context.Background(), sampleRun()))

	out := buf.String()
	assert.Contains(t, out, "american put")
	assert.Contains(t, out, "price 7.8421")
	assert.Contains(t, out, "±0.0421")
	assert.Contains(t, out, "Δ0.4289")
}

func TestPresent_CompactWithoutGreeks(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatText, false)

	run := sampleRun()
	run.Result.Greeks = nil
	run.Result.StdErr = nil
	require.NoError(t, c.Present(context.Background(), run))

	assert.NotContains(t, buf.String(), "Δ")
	assert.NotContains(t, buf.String(), "±")
}

func TestPresent_Table(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatText, true)

	require.NoError(t, c.Present(context.Background(), sampleRun()))

	out := buf.String()
	// tablewriter pone las cabeceras en mayúsculas.
	assert.Contains(t, out, "METRIC")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "7.842100")
	assert.Contains(t, out, "Delta")
	assert.Contains(t, out, "run-test-1")
	// Configuración de simulación solo para estilos Monte Carlo.
	assert.Contains(t, out, "seed 42")
}

func TestPresent_TableEuropeanOmitsSim(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatText, true)

	run := sampleRun()
	run.Contract.Style = domain.StyleEuropean
	run.Result.StdErr = nil
	require.NoError(t, c.Present(context.Background(), run))

	assert.NotContains(t, buf.String(), "seed")
	assert.NotContains(t, buf.String(), "Std error")
}

// La salida JSON es un documento parseable que reconstruye el run.
func TestPresent_JSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatJSON, false)

	run := sampleRun()
	require.NoError(t, c.Present(context.Background(), run))

	var decoded domain.Run
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, run.Contract, decoded.Contract)
	assert.InDelta(t, run.Result.Price, decoded.Result.Price, 1e-12)
	require.NotNil(t, decoded.Result.Greeks)
	assert.Equal(t, *run.Result.Greeks, *decoded.Result.Greeks)
}

func TestPresentSweep_Table(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatText, true)

	points := []domain.SweepPoint{
		{Spot: 90, Price: 1.23, Delta: 0.21},
		{Spot: 110, Price: 9.87, Delta: 0.78},
	}
	require.NoError(t, c.PresentSweep(context.Background(), points))

	out := buf.String()
	assert.Contains(t, out, "2 points")
	assert.Contains(t, out, "90.00")
	assert.Contains(t, out, "9.8700")
}

func TestPresentSweep_JSON(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, FormatJSON, false)

	points := []domain.SweepPoint{{Spot: 100, Price: 5.5, Delta: 0.5}}
	require.NoError(t, c.PresentSweep(context.Background(), points))

	var decoded []domain.SweepPoint
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, points, decoded)
}
