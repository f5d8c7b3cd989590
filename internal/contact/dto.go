// AngelaMos | 2026
// dto.go

package contact

import (
	"math"
	"time"
)

type CreateRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
	Favorite *bool  `json:"favorite"`
}

// UpdateRequest is a partial update; at least one field must be present.
type UpdateRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=1"`
}

func (r UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil
}

type FavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

type ListParams struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	// Pages past the largest representable offset are clamped; they are
	// empty either way.
	if maxPage := math.MaxInt/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToResponse(c *Contact) Response {
	return Response{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Favorite:  c.Favorite,
		Owner:     c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToResponseList(contacts []Contact) []Response {
	responses := make([]Response, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToResponse(&contacts[i]))
	}
	return responses
}
