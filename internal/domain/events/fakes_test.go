package events

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-care-scheduler/internal/domain/templates"
)

// fakeRepo replica el contrato del adapter real, incluida la constraint
// (template_id, fecha) y el write condicional.
type fakeRepo struct {
	mu      sync.Mutex
	byID    map[string]CareEvent
	matKeys map[string]struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    make(map[string]CareEvent),
		matKeys: make(map[string]struct{}),
	}
}

func (r *fakeRepo) Create(ctx context.Context, e CareEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; exists {
		return errors.New("duplicate id")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *fakeRepo) UpsertMaterialized(ctx context.Context, e CareEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := e.TemplateID + "|" + e.DueAt.Format("2006-01-02")
	if _, exists := r.matKeys[key]; exists {
		return false, nil
	}
	r.byID[e.ID] = e
	r.matKeys[key] = struct{}{}
	return true, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return CareEvent{}, ErrNotFound
	}
	return e, nil
}

func (r *fakeRepo) ListDueBetween(ctx context.Context, petID string, from, to time.Time) ([]CareEvent, error) {
	return r.list(petID, from, to, nil), nil
}

func (r *fakeRepo) ListUpcomingBetween(ctx context.Context, petID string, from, to time.Time) ([]CareEvent, error) {
	status := StatusUpcoming
	return r.list(petID, from, to, &status), nil
}

func (r *fakeRepo) list(petID string, from, to time.Time, status *Status) []CareEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CareEvent, 0)
	for _, e := range r.byID {
		if e.PetID != petID {
			continue
		}
		if e.DueAt.Before(from) || e.DueAt.After(to) {
			continue
		}
		if status != nil && e.Status != *status {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

func (r *fakeRepo) SetStatusIf(ctx context.Context, id string, allowedFrom []Status, to Status, updatedAt time.Time) (CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return CareEvent{}, ErrNotFound
	}

	allowed := false
	for _, s := range allowedFrom {
		if e.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return CareEvent{}, ErrConflict
	}

	e.Status = to
	e.UpdatedAt = updatedAt
	r.byID[id] = e
	return e, nil
}

func (r *fakeRepo) all(petID string) []CareEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]CareEvent, 0)
	for _, e := range r.byID {
		if e.PetID == petID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

type fakeTemplateSource struct {
	tpls []templates.CareTemplate
}

func (f *fakeTemplateSource) ListActiveByPet(ctx context.Context, petID string) ([]templates.CareTemplate, error) {
	out := make([]templates.CareTemplate, 0)
	for _, t := range f.tpls {
		if t.PetID == petID && t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTemplateSource) ListActive(ctx context.Context) ([]templates.CareTemplate, error) {
	out := make([]templates.CareTemplate, 0)
	for _, t := range f.tpls {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}
