package ports

import (
	"context"

	"github.com/andresmr/griego/internal/domain"
)

// Presenter muestra los resultados al usuario.
// La implementación de consola imprime una línea compacta, una tabla
// formateada o JSON según el modo configurado.
type Presenter interface {
	// Present muestra una valoración completada.
	Present(ctx context.Context, run domain.Run) error

	// PresentSweep muestra la curva de sensibilidad precio/delta vs spot.
	PresentSweep(ctx context.Context, points []domain.SweepPoint) error
}
