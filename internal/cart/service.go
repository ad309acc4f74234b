package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	cartrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/repo"
	catalogentity "github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Catalog is the read side of the catalog the cart expands against.
type Catalog interface {
	List(ctx context.Context, f catalogentity.Filter) ([]catalogentity.Item, error)
}

// Service implements per-user cart operations. It stores item ids only and
// never checks that they exist in the catalog.
type Service struct {
	repo    cartrepo.Repository
	catalog Catalog
}

func NewService(r cartrepo.Repository, catalog Catalog) *Service {
	return &Service{repo: r, catalog: catalog}
}

// Get returns the user's cart, or an empty cart without creating one.
func (s *Service) Get(ctx context.Context, userID string) (*entity.Cart, error) {
	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return entity.Empty(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return c, nil
}

// Add increments the line for itemID, creating the cart when needed.
func (s *Service) Add(ctx context.Context, userID, itemID string, qty int) (*entity.Cart, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: itemId required", utilities.ErrValidation)
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Items = c.Items.Add(itemID, qty)
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// Remove drops the line for itemID. Missing carts and lines are a no-op.
func (s *Service) Remove(ctx context.Context, userID, itemID string) (*entity.Cart, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: itemId required", utilities.ErrValidation)
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	var changed bool
	c.Items, changed = c.Items.Remove(itemID)
	if !changed {
		return c, nil
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// ReplaceAll overwrites the cart lines verbatim; callers validate lines.
func (s *Service) ReplaceAll(ctx context.Context, userID string, lines entity.Lines) (*entity.Cart, error) {
	if lines == nil {
		lines = entity.Lines{}
	}
	c := &entity.Cart{UserID: userID, Items: lines}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

// Expanded returns the user's cart joined against the current catalog.
func (s *Service) Expanded(ctx context.Context, userID string) (*ExpandedCart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.catalog.List(ctx, catalogentity.Filter{})
	if err != nil {
		return nil, fmt.Errorf("expand cart: %w", err)
	}
	return Expand(c, LookupFromItems(items)), nil
}
