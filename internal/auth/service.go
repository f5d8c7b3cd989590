// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/contacts-api/internal/avatar"
	"github.com/carterperez-dev/templates/contacts-api/internal/config"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
	"github.com/carterperez-dev/templates/contacts-api/internal/middleware"
)

const DefaultSubscription = "starter"

var (
	ErrEmailExists = core.NewAppError(
		core.ErrDuplicateKey,
		"Email in use",
		core.KindConflict,
		"EMAIL_IN_USE",
	)
	ErrInvalidCredentials = core.NewAppError(
		core.ErrUnauthorized,
		"Email or password is wrong",
		core.KindUnauthorized,
		"INVALID_CREDENTIALS",
	)
	ErrAlreadyVerified = core.NewAppError(
		core.ErrInvalidInput,
		"Verification has already been passed",
		core.KindValidation,
		"ALREADY_VERIFIED",
	)
	ErrUserNotFound = core.NotFoundError("User not found")
)

// UserInfo is the account view the lifecycle needs. Token is nil while
// logged out; VerificationToken is nil once verified.
type UserInfo struct {
	ID                string
	Email             string
	PasswordHash      string
	Subscription      string
	Token             *string
	AvatarURL         string
	Verified          bool
	VerificationToken *string
}

type NewUser struct {
	Email             string
	PasswordHash      string
	Subscription      string
	AvatarURL         string
	VerificationToken string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, user NewUser) (*UserInfo, error)
	SetToken(ctx context.Context, id, token string) error
	VerifyEmail(ctx context.Context, verificationToken string) (*UserInfo, error)
}

type VerificationSender interface {
	SendVerification(ctx context.Context, to, link string) error
}

type Service struct {
	tokens *TokenManager
	users  UserProvider
	mailer VerificationSender
	app    config.AppConfig
	logger *slog.Logger
}

func NewService(
	tokens *TokenManager,
	users UserProvider,
	mailer VerificationSender,
	app config.AppConfig,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		tokens: tokens,
		users:  users,
		mailer: mailer,
		app:    app,
		logger: logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified, logged-out account and mails its
// verification link. A mail failure is logged; the account still exists and
// the link can be re-sent.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (resp *ProfileResponse, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Register")
	defer func() { core.EndSpan(span, err) }()

	email := normalizeEmail(req.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	verificationToken, err := core.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("verification token: %w", err)
	}

	subscription := req.Subscription
	if subscription == "" {
		subscription = DefaultSubscription
	}

	user, err := s.users.Create(ctx, NewUser{
		Email:             email,
		PasswordHash:      passwordHash,
		Subscription:      subscription,
		AvatarURL:         avatar.GravatarURL(email),
		VerificationToken: verificationToken,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	span.SetAttributes(attribute.String("user.id", user.ID))

	link := s.app.VerificationURL(verificationToken)
	if mailErr := s.mailer.SendVerification(ctx, user.Email, link); mailErr != nil {
		s.logger.Warn("verification email not sent",
			"user_id", user.ID,
			"error", mailErr,
		)
	}

	return &ProfileResponse{
		Email:        user.Email,
		Subscription: user.Subscription,
	}, nil
}

func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) error {
	if verificationToken == "" {
		return ErrUserNotFound
	}

	user, err := s.users.VerifyEmail(ctx, verificationToken)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("verify email: %w", err)
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return nil
}

func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if user.Verified || user.VerificationToken == nil {
		return ErrAlreadyVerified
	}

	link := s.app.VerificationURL(*user.VerificationToken)
	if err := s.mailer.SendVerification(ctx, user.Email, link); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}

	return nil
}

// Login answers every credential failure identically, including unverified
// accounts, and always spends one bcrypt comparison.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (resp *LoginResponse, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Login")
	defer func() { core.EndSpan(span, err) }()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid || !user.Verified {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateAccessToken(TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	if err := s.users.SetToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User: ProfileResponse{
			Email:        user.Email,
			Subscription: user.Subscription,
		},
	}, nil
}

// Logout clears the stored session. Calling it twice is harmless.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.users.SetToken(ctx, userID, ""); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.UnauthorizedError("")
		}
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Service) CurrentProfile(
	ctx context.Context,
	userID string,
) (*ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.UnauthorizedError("")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &ProfileResponse{
		Email:        user.Email,
		Subscription: user.Subscription,
	}, nil
}

// VerifyAccessToken is the authorization gate: a valid signature is not
// enough, the account must exist and still hold a session token.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.TokenInvalidError()
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}

	if user.Token == nil || *user.Token == "" {
		return nil, core.TokenRevokedError()
	}

	return &middleware.AccessTokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Tier:   user.Subscription,
	}, nil
}
