package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-scheduler/internal/domain/logs"
)

type logRepo struct {
	mu   sync.RWMutex
	byID map[string]logs.CareLog
}

func NewLogRepo() logs.Repository {
	return &logRepo{
		byID: make(map[string]logs.CareLog),
	}
}

func (r *logRepo) Create(ctx context.Context, l logs.CareLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("log id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("log already exists")
	}

	r.byID[l.ID] = l
	return nil
}

func (r *logRepo) ListByPet(ctx context.Context, petID string, limit int) ([]logs.CareLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = logs.DefaultListLimit
	}

	out := make([]logs.CareLog, 0)
	for _, l := range r.byID {
		if l.PetID == petID {
			out = append(out, l)
		}
	}

	// Más recientes primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
