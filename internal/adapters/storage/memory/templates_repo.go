package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-scheduler/internal/domain/templates"
)

type templateRepo struct {
	mu   sync.RWMutex
	byID map[string]templates.CareTemplate
}

func NewTemplateRepo() templates.Repository {
	return &templateRepo{
		byID: make(map[string]templates.CareTemplate),
	}
}

func (r *templateRepo) Create(ctx context.Context, t templates.CareTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("template id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("template already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (templates.CareTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return templates.CareTemplate{}, templates.ErrNotFound
	}
	return t, nil
}

func (r *templateRepo) ListActiveByPet(ctx context.Context, petID string) ([]templates.CareTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]templates.CareTemplate, 0)
	for _, t := range r.byID {
		if t.PetID == petID && t.Active {
			out = append(out, t)
		}
	}

	// Más recientes primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *templateRepo) ListActive(ctx context.Context) ([]templates.CareTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]templates.CareTemplate, 0)
	for _, t := range r.byID {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *templateRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return templates.ErrNotFound
	}
	t.Active = false
	r.byID[id] = t
	return nil
}
