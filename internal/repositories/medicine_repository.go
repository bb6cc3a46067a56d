package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pace/internal/models"
)

type MedicineRepository interface {
	Store(ctx context.Context, m *models.Medicine) error
	FindAll(ctx context.Context, userID string) ([]models.Medicine, error)
	Update(ctx context.Context, m *models.Medicine) (bool, error)
	Delete(ctx context.Context, id, userID string) error

	LogIntake(ctx context.Context, entry *models.MedicineLog) error
	DeleteIntake(ctx context.Context, userID, medicineID, date, timeOfDay string) error
	IntakeHistory(ctx context.Context, userID, date string) ([]models.MedicineLog, error)
}

type medicineRepository struct {
	db *sql.DB
}

func NewMedicineRepository(db *sql.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

// times живёт в JSONB, гоняем через json.Marshal/Unmarshal
func marshalTimes(times []string) ([]byte, error) {
	if times == nil {
		times = []string{}
	}
	return json.Marshal(times)
}

func (r *medicineRepository) Store(ctx context.Context, m *models.Medicine) error {
	times, err := marshalTimes(m.Times)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO medicines (user_id, name, dosage, frequency, times)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		m.UserID, m.Name, m.Dosage, m.Frequency, times,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *medicineRepository) FindAll(ctx context.Context, userID string) ([]models.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, dosage, frequency, times, created_at
		FROM medicines WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Medicine
	for rows.Next() {
		var m models.Medicine
		var times []byte
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency, &times, &m.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(times, &m.Times); err != nil {
			return nil, fmt.Errorf("bad times payload for medicine %s: %w", m.ID, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *medicineRepository) Update(ctx context.Context, m *models.Medicine) (bool, error) {
	times, err := marshalTimes(m.Times)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines SET name = $1, dosage = $2, frequency = $3, times = $4
		WHERE id = $5 AND user_id = $6`,
		m.Name, m.Dosage, m.Frequency, times, m.ID, m.UserID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *medicineRepository) Delete(ctx context.Context, id, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM medicines WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *medicineRepository) LogIntake(ctx context.Context, entry *models.MedicineLog) error {
	query := `
		INSERT INTO medicine_logs (user_id, medicine_id, date, time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, taken_at`
	return r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.MedicineID, entry.Date, entry.Time, entry.Status,
	).Scan(&entry.ID, &entry.TakenAt)
}

func (r *medicineRepository) DeleteIntake(ctx context.Context, userID, medicineID, date, timeOfDay string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM medicine_logs
		WHERE user_id = $1 AND medicine_id = $2 AND date = $3 AND time = $4`,
		userID, medicineID, date, timeOfDay)
	return err
}

func (r *medicineRepository) IntakeHistory(ctx context.Context, userID, date string) ([]models.MedicineLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ml.id, ml.user_id, ml.medicine_id, m.name,
		       to_char(ml.date, 'YYYY-MM-DD'), to_char(ml.time, 'HH24:MI'), ml.status, ml.taken_at
		FROM medicine_logs ml
		JOIN medicines m ON ml.medicine_id = m.id
		WHERE ml.user_id = $1 AND ml.date = $2
		ORDER BY ml.time ASC`,
		userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MedicineLog
	for rows.Next() {
		var l models.MedicineLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.MedicineID, &l.MedicineName,
			&l.Date, &l.Time, &l.Status, &l.TakenAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
