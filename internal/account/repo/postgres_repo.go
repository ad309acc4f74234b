package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

const (
	usersDDL = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	insertUserQuery     = `INSERT INTO users (id, email, password_hash, name) VALUES (:id, :email, :password_hash, :name)`
	getUserByEmailQuery = `SELECT id, email, password_hash, name FROM users WHERE email=$1`
)

// PostgresRepo provides data access for the users table using sqlx.
type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) *PostgresRepo { return &PostgresRepo{db: db} }

var _ Repository = (*PostgresRepo)(nil)

// EnsureTable creates the users table if not exists (idempotent).
// email is plain TEXT so lookups stay case-sensitive.
func (r *PostgresRepo) EnsureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, usersDDL)
	return err
}

func (r *PostgresRepo) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, u); err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.GetContext(ctx, &u, getUserByEmailQuery, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
