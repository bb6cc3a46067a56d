package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
)

// Payment records one order through the (mocked) billing provider.
type Payment struct {
	ID        int64         `json:"id"`
	UserID    string        `json:"user_id"`
	OrderID   string        `json:"order_id"`
	PaymentID *string       `json:"payment_id,omitempty"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
