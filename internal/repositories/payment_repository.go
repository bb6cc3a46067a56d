package repositories

import (
	"context"
	"database/sql"

	"pace/internal/models"
)

type PaymentRepository interface {
	Store(ctx context.Context, p *models.Payment) error
	MarkSuccess(ctx context.Context, orderID, paymentID string) error
}

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Store(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (user_id, order_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.OrderID, p.Amount, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *paymentRepository) MarkSuccess(ctx context.Context, orderID, paymentID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $1, payment_id = $2 WHERE order_id = $3`,
		models.PaymentSuccess, paymentID, orderID)
	return err
}
