package services

import (
	"context"

	"pace/internal/models"
	"pace/internal/repositories"
)

// WeightHistory pairs the raw rows with server-side aggregates so the
// client never recomputes them.
type WeightHistory struct {
	History []models.WeightLog `json:"history"`
	Stats   models.WeightStats `json:"stats"`
}

type WeightService interface {
	Log(ctx context.Context, entry *models.WeightLog) (*models.WeightLog, error)
	History(ctx context.Context, userID, from, to string) (*WeightHistory, error)
}

type weightService struct {
	repo  repositories.WeightRepository
	users repositories.UserRepository
}

func NewWeightService(repo repositories.WeightRepository, users repositories.UserRepository) WeightService {
	return &weightService{repo: repo, users: users}
}

func (s *weightService) Log(ctx context.Context, entry *models.WeightLog) (*models.WeightLog, error) {
	if err := s.users.EnsureExists(ctx, entry.UserID, "placeholder@email.com"); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *weightService) History(ctx context.Context, userID, from, to string) (*WeightHistory, error) {
	rows, err := s.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	out := &WeightHistory{History: rows}
	if len(rows) == 0 {
		return out, nil
	}

	min, max, sum := rows[0].Weight, rows[0].Weight, 0.0
	for _, r := range rows {
		if r.Weight < min {
			min = r.Weight
		}
		if r.Weight > max {
			max = r.Weight
		}
		sum += r.Weight
	}
	out.Stats = models.WeightStats{
		Min: min,
		Max: max,
		Avg: sum / float64(len(rows)),
	}
	return out, nil
}
