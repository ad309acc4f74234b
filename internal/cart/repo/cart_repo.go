package repo

import (
	"context"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

// Repository persists one cart per user. Get returns database.ErrNotFound
// when the user has no cart; Put creates or overwrites it.
type Repository interface {
	Get(ctx context.Context, userID string) (*entity.Cart, error)
	Put(ctx context.Context, c *entity.Cart) error
}

// FileRepo stores carts in the "carts" collection of a JSON document.
type FileRepo struct {
	store *database.FileStore
}

func NewFileRepo(store *database.FileStore) *FileRepo { return &FileRepo{store: store} }

var _ Repository = (*FileRepo)(nil)

func (r *FileRepo) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	carts, err := database.Read[entity.Cart](ctx, r.store, database.CollectionCarts)
	if err != nil {
		return nil, err
	}
	for i := range carts {
		if carts[i].UserID == userID {
			c := carts[i]
			if c.Items == nil {
				c.Items = entity.Lines{}
			}
			return &c, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *FileRepo) Put(ctx context.Context, c *entity.Cart) error {
	return database.Update(ctx, r.store, database.CollectionCarts, func(carts []entity.Cart) ([]entity.Cart, bool, error) {
		for i := range carts {
			if carts[i].UserID == c.UserID {
				carts[i] = *c
				return carts, true, nil
			}
		}
		return append(carts, *c), true, nil
	})
}
