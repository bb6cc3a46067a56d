package services

import (
	"context"

	"pace/internal/models"
	"pace/internal/repositories"
)

type FoodService interface {
	Log(ctx context.Context, entry *models.FoodLog) (*models.FoodLog, error)
	ListByDate(ctx context.Context, userID, date string) ([]models.FoodLog, error)
	Delete(ctx context.Context, id, userID string) error
}

type foodService struct {
	repo  repositories.FoodRepository
	users repositories.UserRepository
}

func NewFoodService(repo repositories.FoodRepository, users repositories.UserRepository) FoodService {
	return &foodService{repo: repo, users: users}
}

func (s *foodService) Log(ctx context.Context, entry *models.FoodLog) (*models.FoodLog, error) {
	if err := s.users.EnsureExists(ctx, entry.UserID, "placeholder@email.com"); err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *foodService) ListByDate(ctx context.Context, userID, date string) ([]models.FoodLog, error) {
	return s.repo.ListByDate(ctx, userID, date)
}

func (s *foodService) Delete(ctx context.Context, id, userID string) error {
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
