package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-care-scheduler/internal/domain/templates"
)

type TemplatesRepo struct {
	db *sql.DB
}

func NewTemplatesRepo(db *sql.DB) *TemplatesRepo {
	return &TemplatesRepo{db: db}
}

func (r *TemplatesRepo) Create(ctx context.Context, t templates.CareTemplate) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_templates (
			id, pet_id,
			type, title, cadence, time_of_day, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		t.ID,
		t.PetID,
		string(t.Type),
		t.Title,
		t.Cadence,
		t.TimeOfDay,
		t.Active,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TemplatesRepo) GetByID(ctx context.Context, id string) (templates.CareTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return templates.CareTemplate{}, templates.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id,
			type, title, cadence, time_of_day, active,
			created_at, updated_at
		FROM care_templates
		WHERE id = $1
	`, id)

	t, err := scanTemplate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return templates.CareTemplate{}, templates.ErrNotFound
		}
		return templates.CareTemplate{}, err
	}
	return t, nil
}

func (r *TemplatesRepo) ListActiveByPet(ctx context.Context, petID string) ([]templates.CareTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			type, title, cadence, time_of_day, active,
			created_at, updated_at
		FROM care_templates
		WHERE pet_id = $1 AND active = TRUE
		ORDER BY created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTemplates(rows)
}

func (r *TemplatesRepo) ListActive(ctx context.Context) ([]templates.CareTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			type, title, cadence, time_of_day, active,
			created_at, updated_at
		FROM care_templates
		WHERE active = TRUE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTemplates(rows)
}

func (r *TemplatesRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE care_templates
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return templates.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (templates.CareTemplate, error) {
	var (
		t     templates.CareTemplate
		ctype string
	)
	if err := row.Scan(
		&t.ID,
		&t.PetID,
		&ctype,
		&t.Title,
		&t.Cadence,
		&t.TimeOfDay,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return templates.CareTemplate{}, err
	}
	t.Type = templates.CareType(ctype)
	return t, nil
}

func collectTemplates(rows *sql.Rows) ([]templates.CareTemplate, error) {
	out := make([]templates.CareTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
