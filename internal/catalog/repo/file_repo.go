package repo

import (
	"context"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

// FileRepo stores items in the "items" collection of a JSON document.
type FileRepo struct {
	store *database.FileStore
}

func NewFileRepo(store *database.FileStore) *FileRepo { return &FileRepo{store: store} }

var _ Repository = (*FileRepo)(nil)

func (r *FileRepo) Insert(ctx context.Context, it *entity.Item) error {
	return database.Update(ctx, r.store, database.CollectionItems, func(items []entity.Item) ([]entity.Item, bool, error) {
		return append(items, *it), true, nil
	})
}

func (r *FileRepo) List(ctx context.Context) ([]entity.Item, error) {
	return database.Read[entity.Item](ctx, r.store, database.CollectionItems)
}

func (r *FileRepo) Get(ctx context.Context, id string) (*entity.Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *FileRepo) Update(ctx context.Context, it *entity.Item) error {
	return database.Update(ctx, r.store, database.CollectionItems, func(items []entity.Item) ([]entity.Item, bool, error) {
		for i := range items {
			if items[i].ID == it.ID {
				items[i] = *it
				return items, true, nil
			}
		}
		return nil, false, database.ErrNotFound
	})
}

func (r *FileRepo) Delete(ctx context.Context, id string) error {
	return database.Update(ctx, r.store, database.CollectionItems, func(items []entity.Item) ([]entity.Item, bool, error) {
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		return kept, len(kept) != len(items), nil
	})
}
