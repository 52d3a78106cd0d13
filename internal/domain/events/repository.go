package events

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserta un evento ad hoc.
	Create(ctx context.Context, e CareEvent) error

	// UpsertMaterialized inserta el evento solo si no existe ya otro para el
	// par (template_id, fecha calendario de due_at). Devuelve true si insertó.
	// Carreras concurrentes se resuelven en el store (constraint única),
	// no con locks de aplicación.
	UpsertMaterialized(ctx context.Context, e CareEvent) (bool, error)

	GetByID(ctx context.Context, id string) (CareEvent, error)

	// ListDueBetween: eventos con due_at en [from, to] (inclusivo ambos
	// extremos), orden ascendente.
	ListDueBetween(ctx context.Context, petID string, from, to time.Time) ([]CareEvent, error)

	// ListUpcomingBetween: igual que ListDueBetween pero solo status upcoming.
	ListUpcomingBetween(ctx context.Context, petID string, from, to time.Time) ([]CareEvent, error)

	// SetStatusIf aplica el cambio solo si el status almacenado está en
	// allowedFrom (write condicional, ver ErrConflict). Devuelve el evento
	// actualizado.
	SetStatusIf(ctx context.Context, id string, allowedFrom []Status, to Status, updatedAt time.Time) (CareEvent, error)
}
