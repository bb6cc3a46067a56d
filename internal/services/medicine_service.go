package services

import (
	"context"

	"pace/internal/models"
	"pace/internal/repositories"
)

type MedicineService interface {
	Add(ctx context.Context, m *models.Medicine) (*models.Medicine, error)
	List(ctx context.Context, userID string) ([]models.Medicine, error)
	Update(ctx context.Context, m *models.Medicine) (*models.Medicine, error)
	Delete(ctx context.Context, id, userID string) error

	LogIntake(ctx context.Context, entry *models.MedicineLog) (*models.MedicineLog, error)
	DeleteIntake(ctx context.Context, userID, medicineID, date, timeOfDay string) error
	IntakeHistory(ctx context.Context, userID, date string) ([]models.MedicineLog, error)
}

type medicineService struct {
	repo  repositories.MedicineRepository
	users repositories.UserRepository
}

func NewMedicineService(repo repositories.MedicineRepository, users repositories.UserRepository) MedicineService {
	return &medicineService{repo: repo, users: users}
}

func (s *medicineService) Add(ctx context.Context, m *models.Medicine) (*models.Medicine, error) {
	if m.Frequency == "" {
		m.Frequency = "DAILY"
	}
	if err := s.users.EnsureExists(ctx, m.UserID, "placeholder@email.com"); err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *medicineService) List(ctx context.Context, userID string) ([]models.Medicine, error) {
	return s.repo.FindAll(ctx, userID)
}

func (s *medicineService) Update(ctx context.Context, m *models.Medicine) (*models.Medicine, error) {
	ok, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *medicineService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *medicineService) LogIntake(ctx context.Context, entry *models.MedicineLog) (*models.MedicineLog, error) {
	if entry.Status == "" {
		entry.Status = models.IntakeTaken
	}
	if err := s.repo.LogIntake(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *medicineService) DeleteIntake(ctx context.Context, userID, medicineID, date, timeOfDay string) error {
	return s.repo.DeleteIntake(ctx, userID, medicineID, date, timeOfDay)
}

func (s *medicineService) IntakeHistory(ctx context.Context, userID, date string) ([]models.MedicineLog, error) {
	return s.repo.IntakeHistory(ctx, userID, date)
}
