package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pace/internal/models"
)

type UserRepository interface {
	// EnsureExists lazily creates the row for an identity-provider
	// subject on its first write. Email is a placeholder until the
	// profile sync fills it in.
	EnsureExists(ctx context.Context, id, email string) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	// IsPremium returns false for unknown users rather than an error.
	IsPremium(ctx context.Context, id string) (bool, error)
	SetPremium(ctx context.Context, id string, plan models.PlanType, until time.Time) error
	SetTelegramChat(ctx context.Context, id string, chatID int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) EnsureExists(ctx context.Context, id, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		id, email)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, email, is_premium, plan_type, subscription_end_date, telegram_chat_id, created_at
	          FROM users WHERE id = $1`
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.IsPremium, &u.PlanType, &u.SubscriptionEndDate, &u.TelegramChatID, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) IsPremium(ctx context.Context, id string) (bool, error) {
	var premium bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_premium FROM users WHERE id = $1`, id).Scan(&premium)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return premium, nil
}

func (r *userRepository) SetPremium(ctx context.Context, id string, plan models.PlanType, until time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_premium = true, plan_type = $1, subscription_end_date = $2 WHERE id = $3`,
		plan, until, id)
	return err
}

func (r *userRepository) SetTelegramChat(ctx context.Context, id string, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET telegram_chat_id = $1 WHERE id = $2`, chatID, id)
	return err
}
