// internal/services/health_service.go
package services

import (
	"context"
	"log"

	"pace/internal/models"
	"pace/internal/repositories"
)

type HealthService interface {
	Get(ctx context.Context, userID, date string) (*models.HealthMetric, error)
	Log(ctx context.Context, m *models.HealthMetric) (*models.HealthMetric, error)
}

type healthService struct {
	repo    repositories.HealthMetricRepository
	logs    repositories.DailyLogRepository
	users   repositories.UserRepository
	reports *ReportService
}

func NewHealthService(
	repo repositories.HealthMetricRepository,
	logs repositories.DailyLogRepository,
	users repositories.UserRepository,
	reports *ReportService,
) HealthService {
	return &healthService{repo: repo, logs: logs, users: users, reports: reports}
}

func (s *healthService) Get(ctx context.Context, userID, date string) (*models.HealthMetric, error) {
	return s.repo.FindByDate(ctx, userID, date)
}

func (s *healthService) Log(ctx context.Context, m *models.HealthMetric) (*models.HealthMetric, error) {
	if err := s.users.EnsureExists(ctx, m.UserID, "placeholder@email.com"); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, err
	}

	// сильная боль автоматически помечает день как FLARE_UP
	if m.PainLevel >= repositories.HighSeverityPain {
		if err := s.logs.MarkFlareUp(ctx, m.UserID, m.Date); err != nil {
			return nil, err
		}
	}

	if err := s.reports.InvalidateOwnerCaches(ctx, m.UserID, ScopeAll); err != nil {
		log.Printf("[health][invalidate][err] user=%s: %v", m.UserID, err)
	}
	return m, nil
}
