// internal/services/task_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pace/internal/analytics"
	"pace/internal/models"
	"pace/internal/repositories"
)

// TaskListFilter is what the list endpoint supports: an optional status
// and an optional day. The day filter runs through the recurrence rules,
// so recurring tasks surface on every matching occurrence.
type TaskListFilter struct {
	Date      *time.Time
	Completed *bool
}

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64, userID string) (*models.Task, error)
	List(ctx context.Context, userID string, filter TaskListFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, userID string, upd *models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id int64, userID string) error
}

type taskService struct {
	repo    repositories.TaskRepository
	users   repositories.UserRepository
	reports *ReportService
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, users repositories.UserRepository, reports *ReportService) TaskService {
	return &taskService{repo: repo, users: users, reports: reports}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Recurrence == "" {
		task.Recurrence = models.RecurrenceNone
	}
	if task.EnergyLevel == "" {
		task.EnergyLevel = models.EnergyMedium
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	// пользователь мог ещё ни разу не писать в систему
	if err := s.users.EnsureExists(ctx, task.UserID, "placeholder@email.com"); err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	s.invalidate(ctx, task.UserID)
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64, userID string) (*models.Task, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *taskService) List(ctx context.Context, userID string, filter TaskListFilter) ([]models.Task, error) {
	tasks, err := s.repo.FindAll(ctx, userID, models.TaskFilter{Completed: filter.Completed})
	if err != nil {
		return nil, err
	}
	if filter.Date == nil {
		return tasks, nil
	}

	due := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if analytics.IsDue(&tasks[i], *filter.Date) {
			due = append(due, tasks[i])
		}
	}
	return due, nil
}

func (s *taskService) Update(ctx context.Context, id int64, userID string, upd *models.TaskUpdate) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.Recurrence != nil {
		task.Recurrence = *upd.Recurrence
	}
	if upd.EnergyLevel != nil {
		task.EnergyLevel = *upd.EnergyLevel
	}
	if upd.Progress != nil {
		task.Progress = *upd.Progress
	}
	if upd.Feedback != nil {
		task.Feedback = *upd.Feedback
	}
	// completed_at живёт строго вместе с флагом: ставится в момент
	// перехода в true, сбрасывается при переходе в false
	if upd.IsCompleted != nil && *upd.IsCompleted != task.IsCompleted {
		task.IsCompleted = *upd.IsCompleted
		if task.IsCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64, userID string) error {
	n, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, userID)
	return nil
}

// invalidate runs after the fact write has committed. Dropping the
// cache entries is best-effort: the TTL bounds any leftover staleness.
func (s *taskService) invalidate(ctx context.Context, userID string) {
	if err := s.reports.InvalidateOwnerCaches(ctx, userID, ScopeAll); err != nil {
		log.Printf("[task][invalidate][err] user=%s: %v", userID, err)
	}
}
