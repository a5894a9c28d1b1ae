package storage

// sqlite.go — histórico de valoraciones.
//
// Una fila por run: parámetros completos + precio + Greeks. Intencionalmente
// NO se guarda estado de simulación (paths, schedules): solo el resultado
// final, para poder comparar corridas con distintos parámetros o semillas.
// Prune automático al arrancar: runs con más de 90 días se descartan.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresmr/griego/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    created_at    DATETIME NOT NULL,
    option_style  TEXT     NOT NULL,
    option_type   TEXT     NOT NULL,
    spot          REAL     NOT NULL,
    strike        REAL     NOT NULL,
    maturity      REAL     NOT NULL,
    volatility    REAL     NOT NULL,
    rate          REAL     NOT NULL,
    dividend      REAL     NOT NULL DEFAULT 0,
    average_type  TEXT,
    barrier_type  TEXT,
    barrier_level REAL,
    num_paths     INTEGER  NOT NULL DEFAULT 0,
    num_steps     INTEGER  NOT NULL DEFAULT 0,
    seed          INTEGER  NOT NULL DEFAULT 0,
    price         REAL     NOT NULL,
    std_error     REAL,
    delta         REAL,
    gamma         REAL,
    vega          REAL,
    theta         REAL,
    rho           REAL,
    elapsed_ms    INTEGER  NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_at    ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_style ON runs(option_style);
`

// retentionRuns limita cuánto histórico se conserva.
const retentionRuns = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada,
// aplica el schema y limpia runs antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveRun persiste una valoración terminada.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run domain.Run) error {
	c := run.Contract

	var avg, barrier any
	var barrierLevel any
	if c.Style == domain.StyleAsian {
		avg = string(c.Average)
	}
	if c.Style == domain.StyleBarrier {
		barrier = string(c.Barrier)
		barrierLevel = c.BarrierLevel
	}

	var stderr any
	if run.Result.StdErr != nil {
		stderr = *run.Result.StdErr
	}
	var delta, gamma, vega, theta, rho any
	if g := run.Result.Greeks; g != nil {
		delta, gamma, vega, theta, rho = g.Delta, g.Gamma, g.Vega, g.Theta, g.Rho
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, option_style, option_type,
			spot, strike, maturity, volatility, rate, dividend,
			average_type, barrier_type, barrier_level,
			num_paths, num_steps, seed,
			price, std_error, delta, gamma, vega, theta, rho, elapsed_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.At, string(c.Style), string(c.Type),
		c.Spot, c.Strike, c.Maturity, c.Volatility, c.Rate, c.Dividend,
		avg, barrier, barrierLevel,
		run.Sim.NumPaths, run.Sim.NumSteps, int64(run.Sim.Seed),
		run.Result.Price, stderr, delta, gamma, vega, theta, rho, run.ElapsedMS,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: insert run %s: %w", run.ID, err)
	}
	return nil
}

// History devuelve los runs registrados en el rango [from, to].
func (s *SQLiteStorage) History(ctx context.Context, from, to time.Time) ([]domain.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, option_style, option_type,
		       spot, strike, maturity, volatility, rate, dividend,
		       average_type, barrier_type, barrier_level,
		       num_paths, num_steps, seed,
		       price, std_error, delta, gamma, vega, theta, rho, elapsed_ms
		FROM runs
		WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("storage.History: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage.History: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.History: rows: %w", err)
	}
	return runs, nil
}

// scanRun reconstruye un domain.Run desde una fila.
func scanRun(rows *sql.Rows) (domain.Run, error) {
	var run domain.Run
	var style, typ string
	var avg, barrier sql.NullString
	var barrierLevel, stderr sql.NullFloat64
	var delta, gamma, vega, theta, rho sql.NullFloat64
	var seed int64

	err := rows.Scan(
		&run.ID, &run.At, &style, &typ,
		&run.Contract.Spot, &run.Contract.Strike, &run.Contract.Maturity,
		&run.Contract.Volatility, &run.Contract.Rate, &run.Contract.Dividend,
		&avg, &barrier, &barrierLevel,
		&run.Sim.NumPaths, &run.Sim.NumSteps, &seed,
		&run.Result.Price, &stderr, &delta, &gamma, &vega, &theta, &rho,
		&run.ElapsedMS,
	)
	if err != nil {
		return domain.Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.Contract.Style = domain.OptionStyle(style)
	run.Contract.Type = domain.OptionType(typ)
	run.Sim.Seed = uint64(seed)
	if avg.Valid {
		run.Contract.Average = domain.AverageKind(avg.String)
	}
	if barrier.Valid {
		run.Contract.Barrier = domain.BarrierKind(barrier.String)
		run.Contract.BarrierLevel = barrierLevel.Float64
	}
	if stderr.Valid {
		v := stderr.Float64
		run.Result.StdErr = &v
	}
	if delta.Valid {
		run.Result.Greeks = &domain.Greeks{
			Delta: delta.Float64,
			Gamma: gamma.Float64,
			Vega:  vega.Float64,
			Theta: theta.Float64,
			Rho:   rho.Float64,
		}
	}
	return run, nil
}

// pruneOld elimina runs más viejos que la retención. Best effort.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
}

// Close cierra la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
