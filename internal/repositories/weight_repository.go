package repositories

import (
	"context"
	"database/sql"

	"pace/internal/models"
)

type WeightRepository interface {
	Upsert(ctx context.Context, entry *models.WeightLog) error
	// ListRange returns history ordered by date; empty from/to means
	// full history.
	ListRange(ctx context.Context, userID, from, to string) ([]models.WeightLog, error)
}

type weightRepository struct {
	db *sql.DB
}

func NewWeightRepository(db *sql.DB) WeightRepository {
	return &weightRepository{db: db}
}

func (r *weightRepository) Upsert(ctx context.Context, entry *models.WeightLog) error {
	query := `
		INSERT INTO weight_logs (user_id, date, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, date)
		DO UPDATE SET weight = EXCLUDED.weight
		RETURNING id, to_char(date, 'YYYY-MM-DD'), created_at`
	return r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Date, entry.Weight,
	).Scan(&entry.ID, &entry.Date, &entry.CreatedAt)
}

func (r *weightRepository) ListRange(ctx context.Context, userID, from, to string) ([]models.WeightLog, error) {
	q := `SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), weight, created_at
	      FROM weight_logs WHERE user_id = $1`
	args := []interface{}{userID}
	if from != "" && to != "" {
		q += ` AND date BETWEEN $2 AND $3`
		args = append(args, from, to)
	}
	q += ` ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WeightLog
	for rows.Next() {
		var w models.WeightLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Weight, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
