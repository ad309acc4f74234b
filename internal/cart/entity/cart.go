package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
)

// Line is one cart position. ItemID is a weak reference into the catalog:
// the item may have been deleted since the line was added.
type Line struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

// Lines is an ordered cart line sequence.
type Lines []Line

// Cart belongs to exactly one user.
type Cart struct {
	UserID string `json:"userId" db:"user_id"`
	Items  Lines  `json:"items" db:"items"`
}

// Empty returns the shape reported for a user who has no cart yet.
func Empty(userID string) *Cart {
	return &Cart{UserID: userID, Items: Lines{}}
}

// Add increments the line for itemID by qty, appending a new line when
// none exists. qty is normalized with NormalizeQty.
func (l Lines) Add(itemID string, qty int) Lines {
	qty = NormalizeQty(qty)
	for i := range l {
		if l[i].ItemID == itemID {
			l[i].Qty += qty
			return l
		}
	}
	return append(l, Line{ItemID: itemID, Qty: qty})
}

// Remove drops every line for itemID and reports whether anything changed.
func (l Lines) Remove(itemID string) (Lines, bool) {
	kept := make(Lines, 0, len(l))
	for _, line := range l {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	return kept, len(kept) != len(l)
}

// Count is the total number of units across all lines.
func (l Lines) Count() int {
	n := 0
	for _, line := range l {
		n += line.Qty
	}
	return n
}

// NormalizeQty maps anything below 1 to the default quantity of 1.
func NormalizeQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// QtyFromFloat truncates a client supplied quantity. NaN and values below 1
// become 1; values beyond int32 are clamped.
func QtyFromFloat(f float64) int {
	switch {
	case math.IsNaN(f) || f < 1:
		return 1
	case f > math.MaxInt32:
		return math.MaxInt32
	default:
		return int(f)
	}
}

// Value stores lines as JSONB in postgres.
func (l Lines) Value() (driver.Value, error) {
	if l == nil {
		l = Lines{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads lines from a JSONB column.
func (l *Lines) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = Lines{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("cart lines: unsupported column type")
	}
	var out Lines
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if out == nil {
		out = Lines{}
	}
	*l = out
	return nil
}
