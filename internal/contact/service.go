// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

var ErrContactNotFound = core.NotFoundError("Contact not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// contactID rejects malformed ids with the same error as missing ones.
func contactID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrContactNotFound
	}
	return parsed.String(), nil
}

func notFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return ErrContactNotFound
	}
	return err
}

func (s *Service) List(
	ctx context.Context,
	ownerID string,
	params ListParams,
) (contacts []Contact, err error) {
	params.Normalize()

	ctx, span := core.StartSpan(ctx, "contact.List",
		attribute.Int("page", params.Page),
		attribute.Int("limit", params.Limit),
	)
	defer func() { core.EndSpan(span, err) }()

	return s.repo.List(ctx, ownerID, params)
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*Contact, error) {
	cid, err := contactID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Get(ctx, ownerID, cid)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *Service) Create(
	ctx context.Context,
	ownerID string,
	req CreateRequest,
) (*Contact, error) {
	c := &Contact{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if req.Favorite != nil {
		c.Favorite = *req.Favorite
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(
	ctx context.Context,
	ownerID, id string,
	req UpdateRequest,
) (*Contact, error) {
	cid, err := contactID(id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return nil, core.ValidationError("missing fields")
	}

	c, err := s.repo.Update(ctx, ownerID, cid, req)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *Service) UpdateFavorite(
	ctx context.Context,
	ownerID, id string,
	favorite bool,
) (*Contact, error) {
	cid, err := contactID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.UpdateFavorite(ctx, ownerID, cid, favorite)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	cid, err := contactID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, cid); err != nil {
		return notFound(err)
	}
	return nil
}
