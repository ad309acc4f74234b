package entity

// DefaultCategory is assigned to items created without a category.
const DefaultCategory = "uncategorized"

// Item is a purchasable catalog record.
type Item struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"`
	Category    string  `json:"category" db:"category"`
	Description string  `json:"description" db:"description"`
}

// ItemPatch carries the fields of a partial update; nil fields are kept.
type ItemPatch struct {
	Name        *string
	Price       *float64
	Category    *string
	Description *string
}

// Apply merges the non-nil fields of p into it.
func (p ItemPatch) Apply(it *Item) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
}

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// ParseSortOrder maps the query spellings clients use; anything else means
// no ordering.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "price_asc", "price-ascending", "price-asc":
		return SortPriceAsc
	case "price_desc", "price-descending", "price-desc":
		return SortPriceDesc
	default:
		return SortNone
	}
}

// Filter selects items for listing. Zero values disable a dimension.
type Filter struct {
	Text     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortOrder
}
