package folio

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Inventory is an ordered list of lots held in an account.
//
// Lots of the same currency and cost are merged, lots that reach zero units
// disappear. The zero value is an empty inventory ready to use.
type Inventory []Position

// IsEmpty reports whether the inventory holds no lot.
func (inv Inventory) IsEmpty() bool { return len(inv) == 0 }

// Add books a position into the inventory.
//
// A negative position with a cost but no acquisition date is a reduction: it
// is matched against the lots at that cost, oldest first, whatever their
// date. Any other position is merged into the lot it designates exactly, or
// appended as a new lot.
func (inv *Inventory) Add(p Position) {
	if p.Units.IsZero() {
		return
	}
	if p.Cost != nil && p.Cost.Date.IsZero() && p.Units.Number.IsNegative() {
		p = inv.reduce(p)
		if p.Units.IsZero() {
			return
		}
	}
	if i := slices.IndexFunc(*inv, p.sameLot); i >= 0 {
		lot := (*inv)[i]
		lot.Units.Number = lot.Units.Number.Add(p.Units.Number)
		if lot.Units.IsZero() {
			*inv = slices.Delete(*inv, i, i+1)
			return
		}
		(*inv)[i] = lot
		return
	}
	*inv = append(*inv, p)
}

// reduce consumes lots matching the reduction cost in FIFO order, and returns
// what is left of the reduction.
func (inv *Inventory) reduce(p Position) Position {
	left := p.Units.Number.Neg() // quantity to remove, positive
	kept := (*inv)[:0:0]
	for _, lot := range *inv {
		if left.IsZero() || !lot.matches(p) || !lot.Units.Number.IsPositive() {
			kept = append(kept, lot)
			continue
		}
		if lot.Units.Number.GreaterThan(left) {
			lot.Units.Number = lot.Units.Number.Sub(left)
			left = decimal.Zero
			kept = append(kept, lot)
			continue
		}
		// the lot is fully consumed
		left = left.Sub(lot.Units.Number)
	}
	*inv = kept
	p.Units.Number = left.Neg()
	return p
}

// matches reports whether the lot can be reduced by a cost specification.
func (p Position) matches(spec Position) bool {
	if p.Cost == nil || p.Units.Currency != spec.Units.Currency {
		return false
	}
	c := spec.Cost
	if !p.Cost.Number.Equal(c.Number) || p.Cost.Currency != c.Currency {
		return false
	}
	return c.Label == "" || c.Label == p.Cost.Label
}

// Merge adds every lot of other into a copy of the inventory.
func (inv Inventory) Merge(other Inventory) Inventory {
	merged := slices.Clone(inv)
	for _, p := range other {
		merged.Add(p)
	}
	return merged
}

// String returns the lots separated by commas.
func (inv Inventory) String() string {
	parts := make([]string, len(inv))
	for i, p := range inv {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
