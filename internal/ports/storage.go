package ports

import (
	"context"
	"time"

	"github.com/andresmr/griego/internal/domain"
)

// Storage persiste el histórico de valoraciones completadas.
// Solo se guardan resultados finales: los PathSets y schedules intermedios
// mueren con la llamada de pricing.
type Storage interface {
	// SaveRun persiste una valoración terminada.
	SaveRun(ctx context.Context, run domain.Run) error

	// History devuelve las valoraciones registradas en el rango dado.
	History(ctx context.Context, from, to time.Time) ([]domain.Run, error)

	// Close cierra la conexión limpiamente.
	Close() error
}
