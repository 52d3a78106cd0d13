package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"pet-care-scheduler/internal/domain/events"
)

// EventsRepo requiere un índice único parcial sobre
// (template_id, (due_at::date)) WHERE template_id <> '' para que la
// materialización sea idempotente vía ON CONFLICT DO NOTHING.
type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	id, pet_id, template_id,
	title, due_at, status,
	created_at, updated_at
`

func (r *EventsRepo) Create(ctx context.Context, e events.CareEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.PetID,
		e.TemplateID,
		e.Title,
		e.DueAt,
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) UpsertMaterialized(ctx context.Context, e events.CareEvent) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO care_events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (template_id, (due_at::date)) WHERE template_id <> ''
		DO NOTHING
	`,
		e.ID,
		e.PetID,
		e.TemplateID,
		e.Title,
		e.DueAt,
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.CareEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.CareEvent{}, events.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM care_events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return events.CareEvent{}, events.ErrNotFound
		}
		return events.CareEvent{}, err
	}
	return e, nil
}

func (r *EventsRepo) ListDueBetween(ctx context.Context, petID string, from, to time.Time) ([]events.CareEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM care_events
		WHERE pet_id = $1 AND due_at >= $2 AND due_at <= $3
		ORDER BY due_at ASC
	`, petID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *EventsRepo) ListUpcomingBetween(ctx context.Context, petID string, from, to time.Time) ([]events.CareEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM care_events
		WHERE pet_id = $1 AND due_at >= $2 AND due_at <= $3 AND status = $4
		ORDER BY due_at ASC
	`, petID, from, to, string(events.StatusUpcoming))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *EventsRepo) SetStatusIf(ctx context.Context, id string, allowedFrom []events.Status, to events.Status, updatedAt time.Time) (events.CareEvent, error) {
	if len(allowedFrom) == 0 {
		return events.CareEvent{}, events.ErrConflict
	}

	// WHERE status IN (...) hace que solo una transición concurrente gane;
	// las demás no matchean fila y terminan en ErrConflict.
	args := []any{id, string(to), updatedAt}
	holes := make([]string, 0, len(allowedFrom))
	for _, s := range allowedFrom {
		args = append(args, string(s))
		holes = append(holes, fmt.Sprintf("$%d", len(args)))
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE care_events
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status IN (`+strings.Join(holes, ",")+`)
		RETURNING `+eventColumns+`
	`, args...)

	e, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return events.CareEvent{}, r.missOrConflict(ctx, id)
		}
		return events.CareEvent{}, err
	}
	return e, nil
}

// missOrConflict distingue "no existe" de "existe pero en otro status".
func (r *EventsRepo) missOrConflict(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM care_events WHERE id = $1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return events.ErrNotFound
	}
	if err != nil {
		return err
	}
	return events.ErrConflict
}

func scanEvent(row rowScanner) (events.CareEvent, error) {
	var (
		e      events.CareEvent
		status string
	)
	if err := row.Scan(
		&e.ID,
		&e.PetID,
		&e.TemplateID,
		&e.Title,
		&e.DueAt,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return events.CareEvent{}, err
	}
	e.Status = events.Status(status)
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]events.CareEvent, error) {
	out := make([]events.CareEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
