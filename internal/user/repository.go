// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

const userColumns = `id, email, password_hash, subscription, token, avatar_url,
		       verified, verification_token, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetToken(ctx context.Context, id, token string) error
	MarkVerified(ctx context.Context, verificationToken string) (*User, error)
	UpdateSubscription(ctx context.Context, id, subscription string) (*User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, subscription, avatar_url, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING verified, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Subscription,
		user.AvatarURL,
		user.VerificationToken,
	).Scan(&user.Verified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// SetToken stores the session token; an empty token logs the user out.
func (r *repository) SetToken(ctx context.Context, id, token string) error {
	query := `
		UPDATE users
		SET token = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set token: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set token: %w", core.ErrNotFound)
	}

	return nil
}

// MarkVerified consumes a verification token in one statement, so a token
// can verify at most one account once.
func (r *repository) MarkVerified(
	ctx context.Context,
	verificationToken string,
) (*User, error) {
	query := `
		UPDATE users
		SET verified = TRUE, verification_token = NULL, updated_at = NOW()
		WHERE verification_token = $1
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, verificationToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verify user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("verify user: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateSubscription(
	ctx context.Context,
	id, subscription string,
) (*User, error) {
	query := `
		UPDATE users
		SET subscription = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, id, subscription)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update subscription: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	query := `
		UPDATE users
		SET avatar_url = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, avatarURL)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update avatar: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
