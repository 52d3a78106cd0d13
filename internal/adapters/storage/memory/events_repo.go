package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-care-scheduler/internal/domain/events"
)

type eventRepo struct {
	mu   sync.Mutex
	byID map[string]events.CareEvent

	// matKeys emula la constraint única (template_id, fecha de due_at)
	// que en Postgres resuelve el ON CONFLICT.
	matKeys map[string]struct{}
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID:    make(map[string]events.CareEvent),
		matKeys: make(map[string]struct{}),
	}
}

func matKey(templateID string, dueAt time.Time) string {
	return templateID + "|" + dueAt.Format("2006-01-02")
}

func (r *eventRepo) Create(ctx context.Context, e events.CareEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) UpsertMaterialized(ctx context.Context, e events.CareEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.TemplateID) == "" {
		return false, errors.New("event id and template id required")
	}

	key := matKey(e.TemplateID, e.DueAt)
	if _, exists := r.matKeys[key]; exists {
		// Ya materializado para ese día: se ignora, igual que un
		// ON CONFLICT DO NOTHING.
		return false, nil
	}

	r.byID[e.ID] = e
	r.matKeys[key] = struct{}{}
	return true, nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return events.CareEvent{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) ListDueBetween(ctx context.Context, petID string, from, to time.Time) ([]events.CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listBetweenLocked(petID, from, to, nil), nil
}

func (r *eventRepo) ListUpcomingBetween(ctx context.Context, petID string, from, to time.Time) ([]events.CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := events.StatusUpcoming
	return r.listBetweenLocked(petID, from, to, &status), nil
}

func (r *eventRepo) listBetweenLocked(petID string, from, to time.Time, status *events.Status) []events.CareEvent {
	out := make([]events.CareEvent, 0)
	for _, e := range r.byID {
		if e.PetID != petID {
			continue
		}
		// Inclusivo en ambos extremos
		if e.DueAt.Before(from) || e.DueAt.After(to) {
			continue
		}
		if status != nil && e.Status != *status {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})

	return out
}

func (r *eventRepo) SetStatusIf(ctx context.Context, id string, allowedFrom []events.Status, to events.Status, updatedAt time.Time) (events.CareEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return events.CareEvent{}, events.ErrNotFound
	}

	allowed := false
	for _, s := range allowedFrom {
		if e.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return events.CareEvent{}, events.ErrConflict
	}

	e.Status = to
	e.UpdatedAt = updatedAt
	r.byID[id] = e
	return e, nil
}
