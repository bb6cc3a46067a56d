// internal/services/payment_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pace/internal/models"
	"pace/internal/repositories"
)

const proSubscriptionDays = 30

// OrderResponse is what the frontend needs to start the checkout flow.
// The provider is mocked until real billing keys are wired in.
type OrderResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"` // smallest currency unit
	Key      string `json:"key"`
}

// SubscriptionStatus mirrors the user's billing state, with expiry
// resolved at read time.
type SubscriptionStatus struct {
	IsPremium           bool            `json:"is_premium"`
	PlanType            models.PlanType `json:"plan_type,omitempty"`
	SubscriptionEndDate *time.Time      `json:"subscription_end_date,omitempty"`
	Expired             bool            `json:"expired,omitempty"`
}

type PaymentService interface {
	CreateOrder(ctx context.Context, userID string, amountMinor int) (*OrderResponse, error)
	// Verify confirms the (mock) provider callback and activates the
	// premium plan for 30 days.
	Verify(ctx context.Context, userID, orderID, paymentID string) error
	Status(ctx context.Context, userID string) (*SubscriptionStatus, error)
}

type paymentService struct {
	repo  repositories.PaymentRepository
	users repositories.UserRepository
}

func NewPaymentService(repo repositories.PaymentRepository, users repositories.UserRepository) PaymentService {
	return &paymentService{repo: repo, users: users}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string, amountMinor int) (*OrderResponse, error) {
	if amountMinor <= 0 {
		amountMinor = 9900
	}
	if err := s.users.EnsureExists(ctx, userID, "placeholder@email.com"); err != nil {
		return nil, err
	}

	orderID := "order_" + uuid.NewString()
	p := &models.Payment{
		UserID:  userID,
		OrderID: orderID,
		Amount:  float64(amountMinor) / 100,
		Status:  models.PaymentPending,
	}
	if err := s.repo.Store(ctx, p); err != nil {
		return nil, err
	}

	return &OrderResponse{
		ID:       orderID,
		Currency: "INR",
		Amount:   amountMinor,
		Key:      "mock_key_id",
	}, nil
}

func (s *paymentService) Verify(ctx context.Context, userID, orderID, paymentID string) error {
	if paymentID == "" {
		paymentID = "pay_mock_id"
	}
	// подпись не проверяем, провайдер замокан
	if err := s.repo.MarkSuccess(ctx, orderID, paymentID); err != nil {
		return err
	}
	until := time.Now().AddDate(0, 0, proSubscriptionDays)
	return s.users.SetPremium(ctx, userID, models.PlanProMonthly, until)
}

func (s *paymentService) Status(ctx context.Context, userID string) (*SubscriptionStatus, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return &SubscriptionStatus{IsPremium: false}, nil
	}

	status := &SubscriptionStatus{
		IsPremium:           u.IsPremium,
		PlanType:            u.PlanType,
		SubscriptionEndDate: u.SubscriptionEndDate,
	}
	if u.IsPremium && u.SubscriptionEndDate != nil && u.SubscriptionEndDate.Before(time.Now()) {
		status.IsPremium = false
		status.Expired = true
	}
	return status, nil
}
