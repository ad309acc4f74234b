package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

const (
	cartsDDL = `
CREATE TABLE IF NOT EXISTS carts (
  user_id TEXT PRIMARY KEY,
  items JSONB NOT NULL DEFAULT '[]'::jsonb,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	getCartQuery = `SELECT user_id, items FROM carts WHERE user_id=$1`
	putCartQuery = `INSERT INTO carts (user_id, items) VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET items=EXCLUDED.items, updated_at=NOW()`
)

// PostgresRepo keeps each cart as a JSONB line array keyed by user id.
type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) *PostgresRepo { return &PostgresRepo{db: db} }

var _ Repository = (*PostgresRepo)(nil)

// EnsureTable creates the carts table if not exists (idempotent).
func (r *PostgresRepo) EnsureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, cartsDDL)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	var c entity.Cart
	if err := r.db.GetContext(ctx, &c, getCartQuery, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepo) Put(ctx context.Context, c *entity.Cart) error {
	_, err := r.db.ExecContext(ctx, putCartQuery, c.UserID, c.Items)
	return err
}
