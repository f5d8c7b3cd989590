// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

const contactColumns = `id, owner_id, name, email, phone, favorite, created_at, updated_at`

// Repository methods are owner scoped. A row owned by someone else is
// indistinguishable from a missing row.
type Repository interface {
	List(ctx context.Context, ownerID string, params ListParams) ([]Contact, error)
	Get(ctx context.Context, ownerID, id string) (*Contact, error)
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Contact, error)
	UpdateFavorite(ctx context.Context, ownerID, id string, favorite bool) (*Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(
	ctx context.Context,
	ownerID string,
	params ListParams,
) ([]Contact, error) {
	params.Normalize()

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE owner_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	contacts := []Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query,
		ownerID,
		params.Limit,
		params.Offset(),
	); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id string) (*Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1 AND owner_id = $2`

	var c Contact
	err := r.db.GetContext(ctx, &c, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (id, owner_id, name, email, phone, favorite)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.OwnerID,
		c.Name,
		c.Email,
		c.Phone,
		c.Favorite,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

func (r *repository) Update(
	ctx context.Context,
	ownerID, id string,
	req UpdateRequest,
) (*Contact, error) {
	query := `
		UPDATE contacts
		SET name = COALESCE($3, name),
		    email = COALESCE($4, email),
		    phone = COALESCE($5, phone),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + contactColumns

	var c Contact
	err := r.db.GetContext(ctx, &c, query, id, ownerID, req.Name, req.Email, req.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	return &c, nil
}

func (r *repository) UpdateFavorite(
	ctx context.Context,
	ownerID, id string,
	favorite bool,
) (*Contact, error) {
	query := `
		UPDATE contacts
		SET favorite = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + contactColumns

	var c Contact
	err := r.db.GetContext(ctx, &c, query, id, ownerID, favorite)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update favorite: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update favorite: %w", err)
	}

	return &c, nil
}

func (r *repository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete contact: %w", core.ErrNotFound)
	}

	return nil
}
