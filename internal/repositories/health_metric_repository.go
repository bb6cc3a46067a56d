package repositories

import (
	"context"
	"database/sql"

	"pace/internal/models"
)

// Pain at or above this score counts a day as high-severity.
const HighSeverityPain = 7

type HealthMetricRepository interface {
	Upsert(ctx context.Context, m *models.HealthMetric) error
	FindByDate(ctx context.Context, userID, date string) (*models.HealthMetric, error)
	ListRange(ctx context.Context, userID, from, to string) ([]models.HealthDay, error)
	Aggregates(ctx context.Context, userID, from, to string) (models.HealthAggregates, error)
}

type healthMetricRepository struct {
	db *sql.DB
}

func NewHealthMetricRepository(db *sql.DB) HealthMetricRepository {
	return &healthMetricRepository{db: db}
}

func (r *healthMetricRepository) Upsert(ctx context.Context, m *models.HealthMetric) error {
	query := `
		INSERT INTO health_metrics (user_id, date, pain_level, fatigue_level, mood, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date)
		DO UPDATE SET
			pain_level = EXCLUDED.pain_level,
			fatigue_level = EXCLUDED.fatigue_level,
			mood = EXCLUDED.mood,
			notes = EXCLUDED.notes
		RETURNING id, to_char(date, 'YYYY-MM-DD'), created_at`
	return r.db.QueryRowContext(ctx, query,
		m.UserID, m.Date, m.PainLevel, m.FatigueLevel, m.Mood, m.Notes,
	).Scan(&m.ID, &m.Date, &m.CreatedAt)
}

func (r *healthMetricRepository) FindByDate(ctx context.Context, userID, date string) (*models.HealthMetric, error) {
	query := `SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), pain_level, fatigue_level, mood, notes, created_at
	          FROM health_metrics WHERE user_id = $1 AND date = $2`
	m := &models.HealthMetric{}
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&m.ID, &m.UserID, &m.Date, &m.PainLevel, &m.FatigueLevel, &m.Mood, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *healthMetricRepository) ListRange(ctx context.Context, userID, from, to string) ([]models.HealthDay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD'), pain_level, fatigue_level
		FROM health_metrics
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HealthDay
	for rows.Next() {
		var d models.HealthDay
		if err := rows.Scan(&d.Date, &d.PainLevel, &d.FatigueLevel); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *healthMetricRepository) Aggregates(ctx context.Context, userID, from, to string) (models.HealthAggregates, error) {
	var agg models.HealthAggregates
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE pain_level >= $4),
		       COALESCE(AVG(pain_level), 0),
		       COALESCE(AVG(fatigue_level), 0)
		FROM health_metrics
		WHERE user_id = $1 AND date BETWEEN $2 AND $3`,
		userID, from, to, HighSeverityPain,
	).Scan(&agg.HighSeverityDays, &agg.AvgPainLevel, &agg.AvgFatigueLevel)
	return agg, err
}
