// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/contacts-api/internal/auth"
	"github.com/carterperez-dev/templates/contacts-api/internal/avatar"
	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

// AvatarUploader processes and stores an uploaded image.
type AvatarUploader interface {
	Upload(ctx context.Context, ownerID string, src io.Reader) (*avatar.Result, error)
	Discard(ctx context.Context, key string) error
}

// Service is the credential store seen by the rest of the app. It satisfies
// auth.UserProvider.
type Service struct {
	repo    Repository
	avatars AvatarUploader
	logger  *slog.Logger
}

func NewService(repo Repository, avatars AvatarUploader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, avatars: avatars, logger: logger}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	verificationToken := nu.VerificationToken
	user := &User{
		ID:                uuid.New().String(),
		Email:             strings.ToLower(nu.Email),
		PasswordHash:      nu.PasswordHash,
		Subscription:      nu.Subscription,
		AvatarURL:         nu.AvatarURL,
		VerificationToken: &verificationToken,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) SetToken(ctx context.Context, id, token string) error {
	return s.repo.SetToken(ctx, id, token)
}

func (s *Service) VerifyEmail(
	ctx context.Context,
	verificationToken string,
) (*auth.UserInfo, error) {
	user, err := s.repo.MarkVerified(ctx, verificationToken)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdateSubscription(
	ctx context.Context,
	id, subscription string,
) (*User, error) {
	user, err := s.repo.UpdateSubscription(ctx, id, subscription)
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription changed",
		"user_id", id,
		"subscription", subscription,
	)
	return user, nil
}

// ReplaceAvatar stores a new avatar and points the profile at it. If the
// profile update fails the stored image is removed again.
func (s *Service) ReplaceAvatar(
	ctx context.Context,
	id string,
	src io.Reader,
) (string, error) {
	res, err := s.avatars.Upload(ctx, id, src)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateAvatar(ctx, id, res.URL); err != nil {
		if discardErr := s.avatars.Discard(ctx, res.Key); discardErr != nil {
			s.logger.Error("orphaned avatar",
				"user_id", id,
				"key", res.Key,
				"error", discardErr,
			)
		}
		return "", err
	}

	return res.URL, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:                u.ID,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Subscription:      u.Subscription,
		Token:             u.Token,
		AvatarURL:         u.AvatarURL,
		Verified:          u.Verified,
		VerificationToken: u.VerificationToken,
	}
}
