// internal/services/daily_log_service.go
package services

import (
	"context"
	"log"

	"pace/internal/models"
	"pace/internal/repositories"
)

type DailyLogService interface {
	Get(ctx context.Context, userID, date string) (*models.DailyLog, error)
	// Upsert is idempotent per (user, date); both caches are dropped
	// after the write commits.
	Upsert(ctx context.Context, entry *models.DailyLog) (*models.DailyLog, error)
}

type dailyLogService struct {
	repo    repositories.DailyLogRepository
	users   repositories.UserRepository
	reports *ReportService
}

func NewDailyLogService(repo repositories.DailyLogRepository, users repositories.UserRepository, reports *ReportService) DailyLogService {
	return &dailyLogService{repo: repo, users: users, reports: reports}
}

func (s *dailyLogService) Get(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	return s.repo.FindByDate(ctx, userID, date)
}

func (s *dailyLogService) Upsert(ctx context.Context, entry *models.DailyLog) (*models.DailyLog, error) {
	if err := s.users.EnsureExists(ctx, entry.UserID, "placeholder@email.com"); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	// сначала коммит факта, потом инвалидация
	if err := s.reports.InvalidateOwnerCaches(ctx, entry.UserID, ScopeAll); err != nil {
		log.Printf("[daily-log][invalidate][err] user=%s: %v", entry.UserID, err)
	}
	return entry, nil
}
