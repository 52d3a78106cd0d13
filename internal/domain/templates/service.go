package templates

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("template not found")
)

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

type CreateInput struct {
	Type      CareType
	Title     string
	Cadence   string
	TimeOfDay string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (CareTemplate, error) {
	if strings.TrimSpace(petID) == "" {
		return CareTemplate{}, ErrInvalidInput
	}
	if !ValidCareType(in.Type) {
		return CareTemplate{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return CareTemplate{}, ErrInvalidInput
	}

	now := s.now()
	t := CareTemplate{
		ID:        uuid.NewString(),
		PetID:     petID,
		Type:      in.Type,
		Title:     strings.TrimSpace(in.Title),
		Cadence:   strings.TrimSpace(in.Cadence),
		TimeOfDay: strings.TrimSpace(in.TimeOfDay),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return CareTemplate{}, err
	}
	return t, nil
}

func (s *Service) ListActiveByPet(ctx context.Context, petID string) ([]CareTemplate, error) {
	return s.repo.ListActiveByPet(ctx, petID)
}

func (s *Service) ListActive(ctx context.Context) ([]CareTemplate, error) {
	return s.repo.ListActive(ctx)
}

// Deactivate es un flip de estado, no un delete: los eventos ya materializados
// conservan un template_id válido.
func (s *Service) Deactivate(ctx context.Context, petID, id string) (CareTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareTemplate{}, ErrNotFound
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil || t.PetID != petID {
		return CareTemplate{}, ErrNotFound
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return CareTemplate{}, err
	}
	return s.repo.GetByID(ctx, id)
}
