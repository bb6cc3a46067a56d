package repositories

import (
	"context"
	"database/sql"
	"time"

	"pace/internal/models"
)

type DailyLogRepository interface {
	// Upsert creates or updates the single row for (user, date).
	Upsert(ctx context.Context, entry *models.DailyLog) error
	FindByDate(ctx context.Context, userID, date string) (*models.DailyLog, error)
	// ListDatesDesc returns the owner's activity dates, most recent
	// first, capped at limit. A single query so the streak walk sees
	// one consistent snapshot.
	ListDatesDesc(ctx context.Context, userID string, limit int) ([]time.Time, error)
	CountCalmInRange(ctx context.Context, userID, from, to string) (int, error)
	// ListWithHealth left-joins each daily log with the same-day health
	// metric; since == "" means full history.
	ListWithHealth(ctx context.Context, userID, since string) ([]models.DayHealth, error)
	// MarkFlareUp upserts the day as FLARE_UP without downgrading one
	// that is already marked.
	MarkFlareUp(ctx context.Context, userID, date string) error
	ListUsersLoggedOn(ctx context.Context, date string) ([]string, error)
}

type dailyLogRepository struct {
	db *sql.DB
}

func NewDailyLogRepository(db *sql.DB) DailyLogRepository {
	return &dailyLogRepository{db: db}
}

func (r *dailyLogRepository) Upsert(ctx context.Context, entry *models.DailyLog) error {
	query := `
		INSERT INTO daily_logs (user_id, date, day_type, mood)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET day_type = COALESCE(EXCLUDED.day_type, daily_logs.day_type),
		              mood = COALESCE(EXCLUDED.mood, daily_logs.mood)
		RETURNING id, to_char(date, 'YYYY-MM-DD'), day_type, mood, created_at`
	return r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Date, entry.DayType, entry.Mood,
	).Scan(&entry.ID, &entry.Date, &entry.DayType, &entry.Mood, &entry.CreatedAt)
}

func (r *dailyLogRepository) FindByDate(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	query := `SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), day_type, mood, created_at
	          FROM daily_logs WHERE user_id = $1 AND date = $2`
	entry := &models.DailyLog{}
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&entry.ID, &entry.UserID, &entry.Date, &entry.DayType, &entry.Mood, &entry.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r *dailyLogRepository) ListDatesDesc(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date FROM daily_logs
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *dailyLogRepository) CountCalmInRange(ctx context.Context, userID, from, to string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM daily_logs
		WHERE user_id = $1
		  AND (day_type IS NULL OR day_type != 'FLARE_UP')
		  AND date BETWEEN $2 AND $3`,
		userID, from, to).Scan(&n)
	return n, err
}

func (r *dailyLogRepository) ListWithHealth(ctx context.Context, userID, since string) ([]models.DayHealth, error) {
	q := `
		SELECT to_char(dl.date, 'YYYY-MM-DD'), dl.day_type, hm.pain_level
		FROM daily_logs dl
		LEFT JOIN health_metrics hm ON dl.user_id = hm.user_id AND dl.date = hm.date
		WHERE dl.user_id = $1`
	args := []interface{}{userID}
	if since != "" {
		q += ` AND dl.date >= $2`
		args = append(args, since)
	}
	q += ` ORDER BY dl.date ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DayHealth
	for rows.Next() {
		var d models.DayHealth
		if err := rows.Scan(&d.Date, &d.DayType, &d.PainLevel); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *dailyLogRepository) MarkFlareUp(ctx context.Context, userID, date string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_logs (user_id, date, day_type)
		VALUES ($1, $2, 'FLARE_UP')
		ON CONFLICT (user_id, date)
		DO UPDATE SET day_type = 'FLARE_UP'
		WHERE daily_logs.day_type IS DISTINCT FROM 'FLARE_UP'`,
		userID, date)
	return err
}

func (r *dailyLogRepository) ListUsersLoggedOn(ctx context.Context, date string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM daily_logs WHERE date = $1`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
