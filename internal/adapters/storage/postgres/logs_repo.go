package postgres

import (
	"context"
	"database/sql"

	"pet-care-scheduler/internal/domain/logs"
)

// LogsRepo es append-only: no hay UPDATE ni DELETE sobre care_logs.
type LogsRepo struct {
	db *sql.DB
}

func NewLogsRepo(db *sql.DB) *LogsRepo {
	return &LogsRepo{db: db}
}

func (r *LogsRepo) Create(ctx context.Context, l logs.CareLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_logs (
			id, pet_id,
			type, title, value, notes,
			occurred_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		l.ID,
		l.PetID,
		string(l.Type),
		l.Title,
		l.Value,
		l.Notes,
		l.OccurredAt,
		l.CreatedAt,
	)
	return err
}

func (r *LogsRepo) ListByPet(ctx context.Context, petID string, limit int) ([]logs.CareLog, error) {
	if limit <= 0 {
		limit = logs.DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id,
			type, title, value, notes,
			occurred_at, created_at
		FROM care_logs
		WHERE pet_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]logs.CareLog, 0)
	for rows.Next() {
		var (
			l     logs.CareLog
			ltype string
		)
		if err := rows.Scan(
			&l.ID,
			&l.PetID,
			&ltype,
			&l.Title,
			&l.Value,
			&l.Notes,
			&l.OccurredAt,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.Type = logs.LogType(ltype)
		out = append(out, l)
	}

	return out, rows.Err()
}
