package cart

import (
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	catalogentity "github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
)

// ExpandedLine joins a cart line with the current catalog record. Item is
// nil when the referenced item no longer exists.
type ExpandedLine struct {
	ItemID string              `json:"itemId"`
	Qty    int                 `json:"qty"`
	Item   *catalogentity.Item `json:"item"`
}

// ExpandedCart is the display form of a cart.
type ExpandedCart struct {
	UserID string         `json:"userId"`
	Items  []ExpandedLine `json:"items"`
	Total  float64        `json:"total"`
}

// Lookup resolves an item id against the catalog.
type Lookup func(itemID string) (*catalogentity.Item, bool)

// LookupFromItems indexes a catalog snapshot by id.
func LookupFromItems(items []catalogentity.Item) Lookup {
	byID := make(map[string]catalogentity.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return func(id string) (*catalogentity.Item, bool) {
		it, ok := byID[id]
		if !ok {
			return nil, false
		}
		return &it, true
	}
}

// ExpandLines resolves every line in order and sums price*qty over the
// lines whose item still exists.
func ExpandLines(lines entity.Lines, lookup Lookup) ([]ExpandedLine, float64) {
	out := make([]ExpandedLine, 0, len(lines))
	total := 0.0
	for _, l := range lines {
		el := ExpandedLine{ItemID: l.ItemID, Qty: l.Qty}
		if it, ok := lookup(l.ItemID); ok {
			el.Item = it
			total += it.Price * float64(l.Qty)
		}
		out = append(out, el)
	}
	return out, total
}

func Expand(c *entity.Cart, lookup Lookup) *ExpandedCart {
	items, total := ExpandLines(c.Items, lookup)
	return &ExpandedCart{UserID: c.UserID, Items: items, Total: total}
}
