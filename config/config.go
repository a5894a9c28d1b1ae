package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/andresmr/griego/internal/domain"
)

// Config es el escenario completo a valorar más la configuración ambiente.
type Config struct {
	Option     OptionConfig     `yaml:"option"`
	Simulation SimulationConfig `yaml:"simulation"`
	Output     OutputConfig     `yaml:"output"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// OptionConfig describe el contrato con los nombres de campo del formato
// de entrada (option_style, underlying_price, ...).
type OptionConfig struct {
	Style           string  `yaml:"option_style"`
	Type            string  `yaml:"option_type"`
	UnderlyingPrice float64 `yaml:"underlying_price"`
	StrikePrice     float64 `yaml:"strike_price"`
	TimeToMaturity  float64 `yaml:"time_to_maturity"`
	Volatility      float64 `yaml:"volatility"`
	RiskFreeRate    float64 `yaml:"risk_free_rate"`
	DividendYield   float64 `yaml:"dividend_yield"`
	AverageType     string  `yaml:"average_type"`  // solo asian
	BarrierType     string  `yaml:"barrier_type"`  // solo barrier
	BarrierLevel    float64 `yaml:"barrier_level"` // solo barrier
}

// SimulationConfig controla el tamaño de la simulación Monte Carlo.
type SimulationConfig struct {
	NumSimulations int    `yaml:"num_simulations"`
	NumSteps       int    `yaml:"num_steps"`
	Seed           uint64 `yaml:"seed"`
	seedSet        bool
}

// simulationYAML existe para distinguir "seed: 0" explícito del default 42.
type simulationYAML struct {
	NumSimulations int     `yaml:"num_simulations"`
	NumSteps       int     `yaml:"num_steps"`
	Seed           *uint64 `yaml:"seed"`
}

// UnmarshalYAML registra si la semilla vino en el archivo.
func (s *SimulationConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw simulationYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.NumSimulations = raw.NumSimulations
	s.NumSteps = raw.NumSteps
	if raw.Seed != nil {
		s.Seed = *raw.Seed
		s.seedSet = true
	}
	return nil
}

// OutputConfig controla el formato de salida.
type OutputConfig struct {
	Format string `yaml:"format"` // text | json
	Table  bool   `yaml:"table"`  // tabla completa en vez de línea compacta
	Greeks bool   `yaml:"greeks"` // calcular Greeks (default true)
	set    bool
}

// outputYAML distingue "greeks: false" explícito del default.
type outputYAML struct {
	Format string `yaml:"format"`
	Table  bool   `yaml:"table"`
	Greeks *bool  `yaml:"greeks"`
}

// UnmarshalYAML aplica el default greeks=true salvo opt-out explícito.
func (o *OutputConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw outputYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	o.Format = raw.Format
	o.Table = raw.Table
	o.Greeks = raw.Greeks == nil || *raw.Greeks
	o.set = true
	return nil
}

// StorageConfig controla dónde se persiste el histórico de runs.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, ":memory:" o "" (off)
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga el escenario desde el archivo YAML y el .env si existe.
// Las variables de entorno sobreescriben las keys de logging.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Contract traduce la sección option a un ContractSpec del dominio.
// Valida únicamente los enums; los rangos los chequea domain.ValidateContract.
func (c *Config) Contract() (domain.ContractSpec, error) {
	style, err := domain.ParseOptionStyle(c.Option.Style)
	if err != nil {
		return domain.ContractSpec{}, fmt.Errorf("config.Contract: %w", err)
	}
	typ, err := domain.ParseOptionType(c.Option.Type)
	if err != nil {
		return domain.ContractSpec{}, fmt.Errorf("config.Contract: %w", err)
	}

	spec := domain.ContractSpec{
		Style:      style,
		Type:       typ,
		Spot:       c.Option.UnderlyingPrice,
		Strike:     c.Option.StrikePrice,
		Maturity:   c.Option.TimeToMaturity,
		Volatility: c.Option.Volatility,
		Rate:       c.Option.RiskFreeRate,
		Dividend:   c.Option.DividendYield,
	}

	if style == domain.StyleAsian {
		avg, err := domain.ParseAverageKind(c.Option.AverageType)
		if err != nil {
			return domain.ContractSpec{}, fmt.Errorf("config.Contract: %w", err)
		}
		spec.Average = avg
	}

	if style == domain.StyleBarrier {
		barrier, err := domain.ParseBarrierKind(c.Option.BarrierType)
		if err != nil {
			return domain.ContractSpec{}, fmt.Errorf("config.Contract: %w", err)
		}
		spec.Barrier = barrier
		spec.BarrierLevel = c.Option.BarrierLevel
	}

	return spec, nil
}

// SimSpec traduce la sección simulation al dominio.
func (c *Config) SimSpec() domain.SimulationConfig {
	return domain.SimulationConfig{
		NumPaths: c.Simulation.NumSimulations,
		NumSteps: c.Simulation.NumSteps,
		Seed:     c.Simulation.Seed,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura los defaults reproducibles del formato de entrada:
// num_simulations 10000, num_steps 252, seed 42.
func setDefaults(cfg *Config) {
	if cfg.Option.AverageType == "" {
		cfg.Option.AverageType = string(domain.AverageArithmetic)
	}
	if cfg.Simulation.NumSimulations <= 0 {
		cfg.Simulation.NumSimulations = 10000
	}
	if cfg.Simulation.NumSteps <= 0 {
		cfg.Simulation.NumSteps = 252
	}
	if !cfg.Simulation.seedSet && cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = 42
	}
	if !cfg.Output.set {
		cfg.Output.Greeks = true
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
