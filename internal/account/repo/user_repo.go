package repo

import (
	"context"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/account/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

// Repository persists users. Create returns database.ErrDuplicate when the
// email is taken; GetByEmail returns database.ErrNotFound when absent.
type Repository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// FileRepo stores users in the "users" collection of a JSON document.
type FileRepo struct {
	store *database.FileStore
}

func NewFileRepo(store *database.FileStore) *FileRepo { return &FileRepo{store: store} }

var _ Repository = (*FileRepo)(nil)

func (r *FileRepo) Create(ctx context.Context, u *entity.User) error {
	return database.Update(ctx, r.store, database.CollectionUsers, func(users []entity.User) ([]entity.User, bool, error) {
		for _, existing := range users {
			if existing.Email == u.Email {
				return nil, false, database.ErrDuplicate
			}
		}
		return append(users, *u), true, nil
	})
}

// GetByEmail matches the email exactly (case-sensitive).
func (r *FileRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := database.Read[entity.User](ctx, r.store, database.CollectionUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, database.ErrNotFound
}
