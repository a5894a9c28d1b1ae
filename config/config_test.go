package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresmr/griego/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const fullYAML = `
option:
  option_style: barrier
  option_type: call
  underlying_price: 100
  strike_price: 105
  time_to_maturity: 0.5
  volatility: 0.2
  risk_free_rate: 0.05
  dividend_yield: 0.02
  barrier_type: up-and-out
  barrier_level: 130

simulation:
  num_simulations: 5000
  num_steps: 100
  seed: 7

output:
  format: json
  table: true
  greeks: false

storage:
  dsn: runs.db

log:
  level: debug
  format: json
`

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullYAML))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Simulation.NumSimulations)
	assert.Equal(t, 100, cfg.Simulation.NumSteps)
	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Table)
	assert.False(t, cfg.Output.Greeks)
	assert.Equal(t, "runs.db", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)

	contract, err := cfg.Contract()
	require.NoError(t, err)
	assert.Equal(t, domain.StyleBarrier, contract.Style)
	assert.Equal(t, domain.BarrierUpOut, contract.Barrier)
	assert.Equal(t, 130.0, contract.BarrierLevel)
	assert.Equal(t, 100.0, contract.Spot)
	assert.Equal(t, 0.02, contract.Dividend)
}

const minimalYAML = `
option:
  option_style: european
  option_type: put
  underlying_price: 100
  strike_price: 105
  time_to_maturity: 0.5
  volatility: 0.2
  risk_free_rate: 0.05
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.Simulation.NumSimulations)
	assert.Equal(t, 252, cfg.Simulation.NumSteps)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.True(t, cfg.Output.Greeks)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Storage.DSN)

	sim := cfg.SimSpec()
	assert.Equal(t, domain.SimulationConfig{NumPaths: 10000, NumSteps: 252, Seed: 42}, sim)
}

// "seed: 0" explícito se respeta: no se pisa con el default 42.
func TestLoad_ExplicitZeroSeed(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
simulation:
  seed: 0
`))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.Simulation.Seed)
}

// "greeks: false" explícito se respeta aunque el default sea true.
func TestLoad_ExplicitGreeksFalse(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
output:
  greeks: false
`))
	require.NoError(t, err)
	assert.False(t, cfg.Output.Greeks)
}

func TestLoad_EnvOverridesLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "option: [esto no es un mapa"))
	assert.Error(t, err)
}

func TestContract_AsianDefaultsArithmetic(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
option:
  option_style: asian
  option_type: call
  underlying_price: 100
  strike_price: 100
  time_to_maturity: 1
  volatility: 0.2
  risk_free_rate: 0.05
`))
	require.NoError(t, err)

	contract, err := cfg.Contract()
	require.NoError(t, err)
	assert.Equal(t, domain.AverageArithmetic, contract.Average)
}

func TestContract_UnknownStyle(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
option:
  option_style: bermudan
  option_type: call
`))
	require.NoError(t, err)

	_, err = cfg.Contract()
	assert.Error(t, err)
}
