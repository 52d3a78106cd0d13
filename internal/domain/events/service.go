package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = errors.New("care event not found")

	// ErrConflict lo devuelven los adapters cuando el guard de SetStatusIf
	// no matchea (otro writer ganó la carrera).
	ErrConflict = errors.New("status changed concurrently")
)

// DefaultUpcomingWindowDays es el horizonte "upcoming" del producto.
const DefaultUpcomingWindowDays = 14

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateAdHocInput struct {
	Title string
	DueAt time.Time
}

// CreateAdHoc inserta un evento sin template; no pasa por el materializador.
func (s *Service) CreateAdHoc(ctx context.Context, petID string, in CreateAdHocInput) (CareEvent, error) {
	if strings.TrimSpace(petID) == "" {
		return CareEvent{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return CareEvent{}, ErrInvalidInput
	}
	if in.DueAt.IsZero() {
		return CareEvent{}, ErrInvalidInput
	}

	now := s.now()
	e := CareEvent{
		ID:        uuid.NewString(),
		PetID:     petID,
		Title:     strings.TrimSpace(in.Title),
		DueAt:     in.DueAt,
		Status:    StatusUpcoming,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return CareEvent{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CareEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareEvent{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Today devuelve los eventos del día calendario actual (según el reloj del
// servidor), ascendente por due_at, con overdue derivado en la salida.
func (s *Service) Today(ctx context.Context, petID string) ([]CareEvent, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	items, err := s.repo.ListDueBetween(ctx, petID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]CareEvent, 0, len(items))
	for _, e := range items {
		e.Status = e.EffectiveStatus(now)
		out = append(out, e)
	}
	return out, nil
}

// Upcoming devuelve eventos upcoming con due_at en [now, now+days],
// inclusivo en ambos extremos.
func (s *Service) Upcoming(ctx context.Context, petID string, days int) ([]CareEvent, error) {
	if days <= 0 {
		days = DefaultUpcomingWindowDays
	}

	now := s.now()
	return s.repo.ListUpcomingBetween(ctx, petID, now, now.AddDate(0, 0, days))
}

// SetStatus aplica una transición pedida por el cliente. La validación corre
// contra el status efectivo (overdue derivado incluido); la escritura es
// condicional en el store, así dos llamadas concurrentes sobre el mismo
// evento terminan con exactamente un ganador y ningún update perdido.
func (s *Service) SetStatus(ctx context.Context, eventID string, newStatus Status) (CareEvent, error) {
	if !ClientSettable(newStatus) {
		return CareEvent{}, ErrInvalidStatus
	}

	e, err := s.GetByID(ctx, eventID)
	if err != nil {
		return CareEvent{}, ErrNotFound
	}

	now := s.now()
	if !CanTransition(e.EffectiveStatus(now), newStatus) {
		return CareEvent{}, ErrInvalidTransition
	}

	updated, err := s.repo.SetStatusIf(ctx, e.ID, []Status{StatusUpcoming, StatusOverdue}, newStatus, now)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			// El otro writer ya dejó el evento en estado terminal.
			return CareEvent{}, ErrInvalidTransition
		}
		return CareEvent{}, err
	}
	return updated, nil
}
