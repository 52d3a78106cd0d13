package logs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

const DefaultListLimit = 50

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

type RecordInput struct {
	Type       LogType
	Title      string
	Value      string
	Notes      string
	OccurredAt *time.Time // nil => ahora
}

func (s *Service) Record(ctx context.Context, petID string, in RecordInput) (CareLog, error) {
	if strings.TrimSpace(petID) == "" {
		return CareLog{}, ErrInvalidInput
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		return CareLog{}, ErrInvalidInput
	}

	now := s.now()
	occurred := now
	if in.OccurredAt != nil && !in.OccurredAt.IsZero() {
		occurred = *in.OccurredAt
	}

	l := CareLog{
		ID:         uuid.NewString(),
		PetID:      petID,
		Type:       in.Type,
		Title:      strings.TrimSpace(in.Title),
		Value:      strings.TrimSpace(in.Value),
		Notes:      strings.TrimSpace(in.Notes),
		OccurredAt: occurred,
		CreatedAt:  now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return CareLog{}, err
	}
	return l, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, limit int) ([]CareLog, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > 200 {
		limit = 200
	}
	return s.repo.ListByPet(ctx, petID, limit)
}
