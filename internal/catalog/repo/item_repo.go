package repo

import (
	"context"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
)

// Repository persists catalog items. List returns items in insertion order.
// Get and Update return database.ErrNotFound for unknown ids; Delete of an
// unknown id is not an error.
type Repository interface {
	Insert(ctx context.Context, it *entity.Item) error
	List(ctx context.Context) ([]entity.Item, error)
	Get(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, it *entity.Item) error
	Delete(ctx context.Context, id string) error
}
