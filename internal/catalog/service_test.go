package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

type mockRepo struct {
	items []entity.Item
}

func (m *mockRepo) Insert(ctx context.Context, it *entity.Item) error {
	m.items = append(m.items, *it)
	return nil
}

func (m *mockRepo) List(ctx context.Context) ([]entity.Item, error) {
	out := make([]entity.Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (*entity.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *mockRepo) Update(ctx context.Context, it *entity.Item) error {
	for i := range m.items {
		if m.items[i].ID == it.ID {
			m.items[i] = *it
			return nil
		}
	}
	return database.ErrNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := &mockRepo{}
	svc := NewService(repo)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
	return svc, repo
}

func price(v float64) *float64 { return &v }

func mustInsert(t *testing.T, svc *Service, in NewItem) *entity.Item {
	t.Helper()
	it, err := svc.Insert(context.Background(), in)
	require.NoError(t, err)
	return it
}

func names(items []entity.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestService_InsertDefaults(t *testing.T) {
	svc, repo := newTestService()

	it := mustInsert(t, svc, NewItem{Name: "Mug", Price: price(9.5)})

	assert.Equal(t, "item-1", it.ID)
	assert.Equal(t, entity.DefaultCategory, it.Category)
	assert.Equal(t, "", it.Description)
	assert.Len(t, repo.items, 1)
}

func TestService_InsertValidation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Insert(ctx, NewItem{Name: "  ", Price: price(1)})
	assert.ErrorIs(t, err, utilities.ErrValidation)

	_, err = svc.Insert(ctx, NewItem{Name: "Mug"})
	assert.ErrorIs(t, err, utilities.ErrValidation)

	_, err = svc.Insert(ctx, NewItem{Name: "Mug", Price: price(-1)})
	assert.ErrorIs(t, err, utilities.ErrValidation)

	it, err := svc.Insert(ctx, NewItem{Name: "Freebie", Price: price(0)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, it.Price)
	assert.Len(t, repo.items, 1)
}

func TestService_ListScenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	mustInsert(t, svc, NewItem{Name: "A", Price: price(10)})
	mustInsert(t, svc, NewItem{Name: "B", Price: price(20)})

	got, err := svc.List(ctx, entity.Filter{MinPrice: price(15)})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(got))

	got, err = svc.List(ctx, entity.Filter{Sort: entity.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, names(got))
}

func TestService_ListSortIsStableAndDoesNotMutateStore(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	mustInsert(t, svc, NewItem{Name: "first", Price: price(5)})
	mustInsert(t, svc, NewItem{Name: "cheap", Price: price(1)})
	mustInsert(t, svc, NewItem{Name: "second", Price: price(5)})

	asc, err := svc.List(ctx, entity.Filter{Sort: entity.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"cheap", "first", "second"}, names(asc))

	desc, err := svc.List(ctx, entity.Filter{Sort: entity.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "cheap"}, names(desc))

	assert.Equal(t, []string{"first", "cheap", "second"}, names(repo.items))
}

func TestService_ListTextMatchesNameOrDescription(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	mustInsert(t, svc, NewItem{Name: "Coffee Mug", Price: price(9.99), Description: "Ceramic"})
	mustInsert(t, svc, NewItem{Name: "Tee", Price: price(19.99), Description: "cotton, coffee coloured"})
	mustInsert(t, svc, NewItem{Name: "Headphones", Price: price(59.99)})

	got, err := svc.List(ctx, entity.Filter{Text: "COFFEE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Coffee Mug", "Tee"}, names(got))
}

func TestMatches_DimensionsAreIndependent(t *testing.T) {
	items := []entity.Item{
		{Name: "Blue T-Shirt", Price: 19.99, Category: "clothing", Description: "cotton tee"},
		{Name: "Red T-Shirt", Price: 24.99, Category: "clothing", Description: "cotton"},
		{Name: "Tee Mug", Price: 9.99, Category: "home"},
		{Name: "Headphones", Price: 59.99, Category: "electronics"},
	}
	type step func(entity.Filter) entity.Filter
	steps := []step{
		func(f entity.Filter) entity.Filter {
			f.Text = "tee"
			return f
		},
		func(f entity.Filter) entity.Filter {
			f.Category = "clothing"
			return f
		},
		func(f entity.Filter) entity.Filter {
			f.MinPrice = price(10)
			return f
		},
		func(f entity.Filter) entity.Filter {
			f.MaxPrice = price(20)
			return f
		},
	}
	apply := func(in []entity.Item, f entity.Filter) []entity.Item {
		var out []entity.Item
		for _, it := range in {
			if Matches(it, f) {
				out = append(out, it)
			}
		}
		return out
	}

	all := entity.Filter{}
	for _, s := range steps {
		all = s(all)
	}
	want := apply(items, all)
	require.Len(t, want, 1)

	orders := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, order := range orders {
		got := items
		for _, i := range order {
			got = apply(got, steps[i](entity.Filter{}))
		}
		assert.Equal(t, want, got, "order %v", order)
	}
}

func TestService_GetByIDNotFound(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateMergesFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	it := mustInsert(t, svc, NewItem{Name: "Mug", Price: price(9.99), Category: "home", Description: "Ceramic"})

	name := "Big Mug"
	updated, err := svc.Update(ctx, it.ID, entity.ItemPatch{Name: &name, Price: price(12)})
	require.NoError(t, err)
	assert.Equal(t, entity.Item{ID: it.ID, Name: "Big Mug", Price: 12, Category: "home", Description: "Ceramic"}, *updated)

	stored, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)
}

func TestService_UpdateErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", entity.ItemPatch{})
	assert.ErrorIs(t, err, ErrNotFound)

	it := mustInsert(t, svc, NewItem{Name: "Mug", Price: price(1)})
	_, err = svc.Update(ctx, it.ID, entity.ItemPatch{Price: price(-3)})
	assert.ErrorIs(t, err, utilities.ErrValidation)
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	it := mustInsert(t, svc, NewItem{Name: "Mug", Price: price(1)})

	require.NoError(t, svc.Delete(ctx, it.ID))
	require.NoError(t, svc.Delete(ctx, it.ID))
	require.NoError(t, svc.Delete(ctx, "never-existed"))
	assert.Empty(t, repo.items)
}

func TestService_SeedOnlyWhenEmpty(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, []string{"Blue T-Shirt", "Coffee Mug", "Headphones"}, names(repo.items))

	seeded, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Len(t, repo.items, 3)
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, entity.SortPriceAsc, entity.ParseSortOrder("price_asc"))
	assert.Equal(t, entity.SortPriceAsc, entity.ParseSortOrder("price-ascending"))
	assert.Equal(t, entity.SortPriceDesc, entity.ParseSortOrder("price_desc"))
	assert.Equal(t, entity.SortPriceDesc, entity.ParseSortOrder("price-descending"))
	assert.Equal(t, entity.SortNone, entity.ParseSortOrder("name"))
}

func TestService_UpdateRejectsBlankName(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	it := mustInsert(t, svc, NewItem{Name: "Mug", Price: price(1)})

	blank := "   "
	_, err := svc.Update(ctx, it.ID, entity.ItemPatch{Name: &blank})
	assert.ErrorIs(t, err, utilities.ErrValidation)

	stored, err := svc.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mug", stored.Name)
}
