package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

const (
	itemsDDL = `
CREATE TABLE IF NOT EXISTS items (
  seq BIGSERIAL,
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT 'uncategorized',
  description TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_items_seq ON items(seq);
`
	insertItemQuery = `INSERT INTO items (id, name, price, category, description) VALUES (:id, :name, :price, :category, :description)`
	listItemsQuery  = `SELECT id, name, price, category, description FROM items ORDER BY seq`
	getItemQuery    = `SELECT id, name, price, category, description FROM items WHERE id=$1`
	updateItemQuery = `UPDATE items SET name=:name, price=:price, category=:category, description=:description WHERE id=:id`
	deleteItemQuery = `DELETE FROM items WHERE id=$1`
)

// PostgresRepo provides data access for the items table using sqlx.
type PostgresRepo struct {
	db *sqlx.DB
}

func NewPostgresRepo(db *sqlx.DB) *PostgresRepo { return &PostgresRepo{db: db} }

var _ Repository = (*PostgresRepo)(nil)

// EnsureTable creates the items table if not exists (idempotent).
func (r *PostgresRepo) EnsureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, itemsDDL)
	return err
}

func (r *PostgresRepo) Insert(ctx context.Context, it *entity.Item) error {
	_, err := r.db.NamedExecContext(ctx, insertItemQuery, it)
	return err
}

func (r *PostgresRepo) List(ctx context.Context) ([]entity.Item, error) {
	items := []entity.Item{}
	if err := r.db.SelectContext(ctx, &items, listItemsQuery); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (*entity.Item, error) {
	var it entity.Item
	if err := r.db.GetContext(ctx, &it, getItemQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *PostgresRepo) Update(ctx context.Context, it *entity.Item) error {
	res, err := r.db.NamedExecContext(ctx, updateItemQuery, it)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteItemQuery, id)
	return err
}
