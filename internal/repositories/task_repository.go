package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pace/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64, userID string) (*models.Task, error)
	FindAll(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64, userID string) (int64, error)

	// report rollups
	CountCompletedInRange(ctx context.Context, userID, from, to string) (int, error)
	CountDueInRange(ctx context.Context, userID, from, to string) (int, error)
	CompletedPerDay(ctx context.Context, userID, from, to string) ([]models.TaskCompletionDay, error)
	// TotalsPerDueDate groups tasks by due date for the calendar;
	// since == "" means full history.
	TotalsPerDueDate(ctx context.Context, userID, since string) ([]models.TaskDayStat, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, title, due_date, is_completed, completed_at,
       recurrence, energy_level, progress, feedback, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }, t *models.Task) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.DueDate, &t.IsCompleted, &t.CompletedAt,
		&t.Recurrence, &t.EnergyLevel, &t.Progress, &t.Feedback, &t.CreatedAt, &t.UpdatedAt,
	)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO todos (
			user_id, title, due_date, is_completed, completed_at,
			recurrence, energy_level, progress, feedback, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.DueDate, task.IsCompleted, task.CompletedAt,
		task.Recurrence, task.EnergyLevel, task.Progress, task.Feedback,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64, userID string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM todos WHERE id = $1 AND user_id = $2`
	task := &models.Task{}
	err := scanTask(r.db.QueryRowContext(ctx, query, id, userID), task)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task not found")
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM todos`

	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argID := 2

	if filter.Completed != nil {
		conditions = append(conditions, fmt.Sprintf("is_completed = $%d", argID))
		args = append(args, *filter.Completed)
		argID++
	}

	baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	// незавершённые сверху, дальше по энергии и свежести
	baseQuery += " ORDER BY is_completed ASC, energy_level DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE todos SET
			title=$1, due_date=$2, is_completed=$3, completed_at=$4,
			recurrence=$5, energy_level=$6, progress=$7, feedback=$8, updated_at=$9
		WHERE id=$10 AND user_id=$11`
	_, err := r.db.ExecContext(ctx, query,
		task.Title, task.DueDate, task.IsCompleted, task.CompletedAt,
		task.Recurrence, task.EnergyLevel, task.Progress, task.Feedback, task.UpdatedAt,
		task.ID, task.UserID,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *taskRepository) CountCompletedInRange(ctx context.Context, userID, from, to string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM todos
		WHERE user_id = $1 AND is_completed = true
		  AND DATE(completed_at) BETWEEN $2 AND $3`,
		userID, from, to).Scan(&n)
	return n, err
}

func (r *taskRepository) CountDueInRange(ctx context.Context, userID, from, to string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM todos
		WHERE user_id = $1 AND due_date IS NOT NULL
		  AND DATE(due_date) BETWEEN $2 AND $3`,
		userID, from, to).Scan(&n)
	return n, err
}

func (r *taskRepository) CompletedPerDay(ctx context.Context, userID, from, to string) ([]models.TaskCompletionDay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT to_char(DATE(completed_at), 'YYYY-MM-DD') AS date, COUNT(*)
		FROM todos
		WHERE user_id = $1 AND is_completed = true
		  AND DATE(completed_at) BETWEEN $2 AND $3
		GROUP BY DATE(completed_at)
		ORDER BY DATE(completed_at) ASC`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskCompletionDay
	for rows.Next() {
		var d models.TaskCompletionDay
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *taskRepository) TotalsPerDueDate(ctx context.Context, userID, since string) ([]models.TaskDayStat, error) {
	q := `
		SELECT to_char(DATE(due_date), 'YYYY-MM-DD') AS date,
		       COUNT(*) AS total_tasks,
		       COUNT(*) FILTER (WHERE is_completed = true) AS completed_tasks
		FROM todos
		WHERE user_id = $1 AND due_date IS NOT NULL`
	args := []interface{}{userID}
	if since != "" {
		q += ` AND DATE(due_date) >= $2`
		args = append(args, since)
	}
	q += ` GROUP BY DATE(due_date) ORDER BY DATE(due_date) ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TaskDayStat
	for rows.Next() {
		var s models.TaskDayStat
		if err := rows.Scan(&s.Date, &s.TotalTasks, &s.CompletedTasks); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
