package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
	catalogrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

var ErrNotFound = errors.New("item not found")

// NewItem holds the fields accepted on insert. Price is nil when the client
// omitted it.
type NewItem struct {
	Name        string
	Price       *float64
	Category    string
	Description string
}

// Service implements catalog operations on top of a Repository.
type Service struct {
	repo  catalogrepo.Repository
	newID func() string
}

func NewService(r catalogrepo.Repository) *Service {
	return &Service{repo: r, newID: utilities.NewKSUID}
}

// Insert validates in, applies defaults and stores a new item.
func (s *Service) Insert(ctx context.Context, in NewItem) (*entity.Item, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", utilities.ErrValidation)
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price is required", utilities.ErrValidation)
	}
	if err := validatePrice(*in.Price); err != nil {
		return nil, err
	}
	it := &entity.Item{
		ID:          s.newID(),
		Name:        in.Name,
		Price:       *in.Price,
		Category:    in.Category,
		Description: in.Description,
	}
	if it.Category == "" {
		it.Category = entity.DefaultCategory
	}
	if err := s.repo.Insert(ctx, it); err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

// List returns the items matching f. The stored order is left untouched;
// sorting is stable so equal prices keep their catalog order.
func (s *Service) List(ctx context.Context, f entity.Filter) ([]entity.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if Matches(it, f) {
			out = append(out, it)
		}
	}
	switch f.Sort {
	case entity.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case entity.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out, nil
}

// Matches reports whether it satisfies every active dimension of f.
func Matches(it entity.Item, f entity.Filter) bool {
	if f.Text != "" {
		q := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(it.Name), q) && !strings.Contains(strings.ToLower(it.Description), q) {
			return false
		}
	}
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && it.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && it.Price > *f.MaxPrice {
		return false
	}
	return true
}

func (s *Service) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update merges p into the stored item and returns the result.
func (s *Service) Update(ctx context.Context, id string, p entity.ItemPatch) (*entity.Item, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", utilities.ErrValidation)
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return nil, err
		}
	}
	it, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(it)
	if err := s.repo.Update(ctx, it); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	return it, nil
}

// Delete removes the item. Unknown ids are not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Seed inserts the demo items when the catalog is empty. It reports whether
// anything was inserted.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}
	if len(items) > 0 {
		return false, nil
	}
	for _, in := range seedItems() {
		if _, err := s.Insert(ctx, in); err != nil {
			return false, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return true, nil
}

func seedItems() []NewItem {
	price := func(v float64) *float64 { return &v }
	return []NewItem{
		{Name: "Blue T-Shirt", Price: price(19.99), Category: "clothing", Description: "Comfortable cotton tee"},
		{Name: "Coffee Mug", Price: price(9.99), Category: "home", Description: "Ceramic mug 350ml"},
		{Name: "Headphones", Price: price(59.99), Category: "electronics", Description: "Over-ear headphones"},
	}
}

func validatePrice(p float64) error {
	if p < 0 {
		return fmt.Errorf("%w: price must not be negative", utilities.ErrValidation)
	}
	return nil
}
