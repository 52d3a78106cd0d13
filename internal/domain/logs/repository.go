package logs

import "context"

type Repository interface {
	Create(ctx context.Context, l CareLog) error

	// ListByPet: más recientes primero (por occurred_at), acotado por limit.
	ListByPet(ctx context.Context, petID string, limit int) ([]CareLog, error)
}
