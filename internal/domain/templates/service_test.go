package templates

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]CareTemplate
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]CareTemplate{}}
}

func (r *testRepo) Create(ctx context.Context, t CareTemplate) error {
	if t.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (CareTemplate, error) {
	t, ok := r.byID[id]
	if !ok {
		return CareTemplate{}, errRepoNotFound
	}
	return t, nil
}

func (r *testRepo) ListActiveByPet(ctx context.Context, petID string) ([]CareTemplate, error) {
	out := make([]CareTemplate, 0)
	for _, t := range r.byID {
		if t.PetID == petID && t.Active {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *testRepo) ListActive(ctx context.Context) ([]CareTemplate, error) {
	out := make([]CareTemplate, 0)
	for _, t := range r.byID {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) Deactivate(ctx context.Context, id string) error {
	t, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	t.Active = false
	r.byID[id] = t
	return nil
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "pet-1", CreateInput{Type: CareTypeFeeding, Title: ""})
	if err != ErrInvalidInput {
		t.Fatalf("empty title: expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.Create(context.Background(), "pet-1", CreateInput{Type: CareType("juggling"), Title: "x"})
	if err != ErrInvalidInput {
		t.Fatalf("unknown type: expected ErrInvalidInput, got %v", err)
	}

	tpl, err := svc.Create(context.Background(), "pet-1", CreateInput{Type: CareTypeMedication, Title: "Pastilla"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !tpl.Active {
		t.Fatalf("expected new template active by default")
	}
}

func TestService_ListActiveByPet_NewestFirst(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	t1, _ := svc.Create(context.Background(), "pet-1", CreateInput{Type: CareTypeFeeding, Title: "Desayuno"})

	svc.now = func() time.Time { return now.Add(time.Minute) }
	t2, _ := svc.Create(context.Background(), "pet-1", CreateInput{Type: CareTypeBath, Title: "Baño"})

	items, err := svc.ListActiveByPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("ListActiveByPet error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(items))
	}
	if items[0].ID != t2.ID || items[1].ID != t1.ID {
		t.Fatalf("expected newest first, got %s then %s", items[0].ID, items[1].ID)
	}
}

func TestService_Deactivate_FlipsAndHidesFromList(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	tpl, _ := svc.Create(context.Background(), "pet-1", CreateInput{Type: CareTypeFeeding, Title: "Cena"})

	got, err := svc.Deactivate(context.Background(), "pet-1", tpl.ID)
	if err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if got.Active {
		t.Fatalf("expected template inactive after deactivate")
	}

	items, _ := svc.ListActiveByPet(context.Background(), "pet-1")
	if len(items) != 0 {
		t.Fatalf("expected deactivated template hidden, got %d", len(items))
	}

	// El registro sigue existiendo (flip, no delete)
	if _, err := repo.GetByID(context.Background(), tpl.ID); err != nil {
		t.Fatalf("expected template row to survive deactivation: %v", err)
	}
}

func TestService_Deactivate_WrongPet_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	tpl, _ := svc.Create(context.Background(), "pet-1", CreateInput{Type: CareTypeFeeding, Title: "Cena"})

	if _, err := svc.Deactivate(context.Background(), "pet-2", tpl.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for wrong pet, got %v", err)
	}
}
