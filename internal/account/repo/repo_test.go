package repo

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

func TestFileRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store, err := database.OpenFile(filepath.Join(t.TempDir(), "db.json"), database.CollectionUsers)
	require.NoError(t, err)
	r := NewFileRepo(store)

	u := &entity.User{ID: "1", Email: "a@x", PasswordHash: "$2a$hash", Name: "Ann"}
	require.NoError(t, r.Create(ctx, u))
	assert.ErrorIs(t, r.Create(ctx, &entity.User{ID: "2", Email: "a@x"}), database.ErrDuplicate)

	got, err := r.GetByEmail(ctx, "a@x")
	require.NoError(t, err)
	assert.Equal(t, *u, *got)

	_, err = r.GetByEmail(ctx, "A@X")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func newMockRepo(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepo(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresRepo_CreateDuplicate(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("1", "a@x", "hash", "").
		WillReturnError(&pq.Error{Code: "23505"})

	err := r.Create(context.Background(), &entity.User{ID: "1", Email: "a@x", PasswordHash: "hash"})
	assert.ErrorIs(t, err, database.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_GetByEmail(t *testing.T) {
	r, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(getUserByEmailQuery)).
		WithArgs("a@x").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name"}).
			AddRow("1", "a@x", "hash", "Ann"))
	mock.ExpectQuery(regexp.QuoteMeta(getUserByEmailQuery)).
		WithArgs("ghost@x").
		WillReturnError(sql.ErrNoRows)

	u, err := r.GetByEmail(context.Background(), "a@x")
	require.NoError(t, err)
	assert.Equal(t, entity.User{ID: "1", Email: "a@x", PasswordHash: "hash", Name: "Ann"}, *u)

	_, err = r.GetByEmail(context.Background(), "ghost@x")
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
