// AngelaMos | 2026
// repository_test.go

package contact

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

var contactRowColumns = []string{
	"id", "owner_id", "name", "email", "phone", "favorite", "created_at", "updated_at",
}

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestRepositoryListOrdersAndPages(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM contacts\s+WHERE owner_id = \$1\s+ORDER BY created_at, id\s+LIMIT \$2 OFFSET \$3`).
		WithArgs("owner-1", 1, 1).
		WillReturnRows(sqlmock.NewRows(contactRowColumns).
			AddRow("c-2", "owner-1", "Bob", "bob@example.com", "2", false, now, now))

	got, err := repo.List(context.Background(), "owner-1", ListParams{Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c-2", got[0].ID)
}

func TestRepositoryListDefaults(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM contacts`).
		WithArgs("owner-1", 10, 0).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	got, err := repo.List(context.Background(), "owner-1", ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepositoryListClampsOffset(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM contacts`).
		WithArgs("owner-1", 10, math.MaxInt/10*10).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	got, err := repo.List(context.Background(), "owner-1", ListParams{Page: math.MaxInt, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepositoryGetScopedToOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM contacts\s+WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("c-1", "stranger").
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	_, err := repo.Get(context.Background(), "stranger", "c-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)INSERT INTO contacts \(id, owner_id, name, email, phone, favorite\).*RETURNING created_at, updated_at`).
		WithArgs("c-1", "owner-1", "Ann", "ann@example.com", "1", true).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	c := &Contact{ID: "c-1", OwnerID: "owner-1", Name: "Ann", Email: "ann@example.com", Phone: "1", Favorite: true}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, now, c.UpdatedAt)
}

func TestRepositoryUpdateIsSingleStatement(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	name := "Annie"

	mock.ExpectQuery(`(?s)UPDATE contacts\s+SET name = COALESCE\(\$3, name\).*WHERE id = \$1 AND owner_id = \$2\s+RETURNING`).
		WithArgs("c-1", "owner-1", name, nil, nil).
		WillReturnRows(sqlmock.NewRows(contactRowColumns).
			AddRow("c-1", "owner-1", "Annie", "ann@example.com", "1", false, now, now))

	c, err := repo.Update(context.Background(), "owner-1", "c-1", UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Annie", c.Name)
}

func TestRepositoryUpdateFavoriteMissing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)UPDATE contacts\s+SET favorite = \$3`).
		WithArgs("c-1", "owner-1", true).
		WillReturnRows(sqlmock.NewRows(contactRowColumns))

	_, err := repo.UpdateFavorite(context.Background(), "owner-1", "c-1", true)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM contacts WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("c-1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM contacts`).
		WithArgs("c-1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "owner-1", "c-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "owner-1", "c-1"), core.ErrNotFound)
}
