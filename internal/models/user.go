package models

import "time"

type PlanType string

const (
	PlanFree       PlanType = "FREE"
	PlanProMonthly PlanType = "PRO_MONTHLY"
)

// User mirrors the identity provider's subject id; rows are created
// lazily on the first write that references the owner.
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	IsPremium           bool       `json:"is_premium"`
	PlanType            PlanType   `json:"plan_type"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`

	// для пуш-уведомлений, если пользователь привязал бота
	TelegramChatID *int64    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
