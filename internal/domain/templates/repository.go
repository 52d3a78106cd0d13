package templates

import "context"

type Repository interface {
	Create(ctx context.Context, t CareTemplate) error
	GetByID(ctx context.Context, id string) (CareTemplate, error)

	// ListActiveByPet devuelve solo templates activos, más recientes primero.
	ListActiveByPet(ctx context.Context, petID string) ([]CareTemplate, error)

	// ListActive devuelve todos los templates activos (sweep de materialización).
	ListActive(ctx context.Context) ([]CareTemplate, error)

	Deactivate(ctx context.Context, id string) error
}
