package repositories

import (
	"context"
	"database/sql"

	"pace/internal/models"
)

type FoodRepository interface {
	Store(ctx context.Context, entry *models.FoodLog) error
	ListByDate(ctx context.Context, userID, date string) ([]models.FoodLog, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type foodRepository struct {
	db *sql.DB
}

func NewFoodRepository(db *sql.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Store(ctx context.Context, entry *models.FoodLog) error {
	query := `
		INSERT INTO food_logs (user_id, date, name, quantity, calories, time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Date, entry.Name, entry.Quantity, entry.Calories, entry.Time, entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *foodRepository) ListByDate(ctx context.Context, userID, date string) ([]models.FoodLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), name, quantity, calories,
		       to_char(time, 'HH24:MI'), notes, created_at
		FROM food_logs
		WHERE user_id = $1 AND date = $2
		ORDER BY time ASC`,
		userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FoodLog
	for rows.Next() {
		var f models.FoodLog
		if err := rows.Scan(&f.ID, &f.UserID, &f.Date, &f.Name, &f.Quantity,
			&f.Calories, &f.Time, &f.Notes, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *foodRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM food_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
