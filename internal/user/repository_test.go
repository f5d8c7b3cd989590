// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/contacts-api/internal/core"
)

var userRowColumns = []string{
	"id", "email", "password_hash", "subscription", "token", "avatar_url",
	"verified", "verification_token", "created_at", "updated_at",
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

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	vt := "verify-me"

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users\s*\(id, email, password_hash, subscription, avatar_url, verification_token\).*RETURNING\s+verified, created_at, updated_at`).
		WithArgs("u-1", "a@b.com", "hash", "starter", "//gravatar", vt).
		WillReturnRows(sqlmock.NewRows([]string{"verified", "created_at", "updated_at"}).
			AddRow(false, now, now))

	u := &User{
		ID:                "u-1",
		Email:             "a@b.com",
		PasswordHash:      "hash",
		Subscription:      "starter",
		AvatarURL:         "//gravatar",
		VerificationToken: &vt,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, now, u.CreatedAt)
	assert.False(t, u.Verified)
}

func TestRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{ID: "u-1", Email: "a@b.com"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepositoryGetByEmailNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT .* FROM users WHERE email = \$1`).
		WithArgs("nobody@b.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByEmail(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT .* FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "a@b.com", "hash", "pro", "tok", "/avatars/x.png", true, nil, now, now))

	u, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "pro", u.Subscription)
	require.NotNil(t, u.Token)
	assert.Equal(t, "tok", *u.Token)
	assert.Nil(t, u.VerificationToken)
}

func TestRepositorySetToken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+token = NULLIF\(\$2, ''\)`).
		WithArgs("u-1", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE\s+users\s+SET\s+token`).
		WithArgs("missing", "tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetToken(context.Background(), "u-1", ""))
	assert.ErrorIs(t, repo.SetToken(context.Background(), "missing", "tok"), core.ErrNotFound)
}

func TestRepositoryMarkVerified(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	q := `(?s)UPDATE\s+users\s+SET\s+verified = TRUE, verification_token = NULL.*WHERE\s+verification_token = \$1`
	mock.ExpectQuery(q).
		WithArgs("vt").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u-1", "a@b.com", "hash", "starter", nil, "", true, nil, now, now))
	mock.ExpectQuery(q).
		WithArgs("vt").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	u, err := repo.MarkVerified(context.Background(), "vt")
	require.NoError(t, err)
	assert.True(t, u.Verified)

	_, err = repo.MarkVerified(context.Background(), "vt")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryUpdateAvatarMissing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+avatar_url = \$2`).
		WithArgs("u-1", "/avatars/a.png").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAvatar(context.Background(), "u-1", "/avatars/a.png")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
