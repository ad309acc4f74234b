package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	catalogentity "github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
)

func TestExpandLines_PreservesOrderAndTotals(t *testing.T) {
	lookup := LookupFromItems([]catalogentity.Item{
		{ID: "a", Price: 1.5},
		{ID: "b", Price: 10},
	})
	lines := entity.Lines{{ItemID: "b", Qty: 2}, {ItemID: "gone", Qty: 7}, {ItemID: "a", Qty: 3}}

	out, total := ExpandLines(lines, lookup)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"b", "gone", "a"}, []string{out[0].ItemID, out[1].ItemID, out[2].ItemID})
	assert.Nil(t, out[1].Item)
	assert.InDelta(t, 24.5, total, 1e-9)
}

func TestExpand_EmptyCartEncodesAsArray(t *testing.T) {
	ex := Expand(entity.Empty("u1"), LookupFromItems(nil))

	b, err := json.Marshal(ex)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u1","items":[],"total":0}`, string(b))
}

func TestExpand_MissingItemEncodesNull(t *testing.T) {
	c := &entity.Cart{UserID: "u1", Items: entity.Lines{{ItemID: "gone", Qty: 1}}}

	b, err := json.Marshal(Expand(c, LookupFromItems(nil)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u1","items":[{"itemId":"gone","qty":1,"item":null}],"total":0}`, string(b))
}
