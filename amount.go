package folio

import (
	"fmt"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | string | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		return decimal.RequireFromString(v)
	default:
		panic("unsupported type")
	}
}

// Amount is a number of units of a currency or commodity.
type Amount struct {
	Number   decimal.Decimal `json:"number"`
	Currency string          `json:"currency"`
}

// A returns a new Amount. Strings are parsed as exact decimals and panic when invalid.
func A[T float64 | int | int64 | string | decimal.Decimal](number T, currency string) Amount {
	return Amount{Number: newDecimal(number), Currency: currency}
}

// String returns the amount as "<number> <currency>".
func (a Amount) String() string { return a.Number.String() + " " + a.Currency }

func (a Amount) IsZero() bool        { return a.Number.IsZero() }
func (a Amount) Neg() Amount         { return Amount{Number: a.Number.Neg(), Currency: a.Currency} }
func (a Amount) Equal(b Amount) bool { return a.Currency == b.Currency && a.Number.Equal(b.Number) }

// Cost is the price paid per unit when a lot was acquired.
type Cost struct {
	Number   decimal.Decimal `json:"number"`
	Currency string          `json:"currency"`
	Date     date.Date       `json:"date"`
	Label    string          `json:"label,omitempty"`
}

// String returns the cost in the usual "{number currency, date}" notation.
func (c Cost) String() string {
	if c.Date.IsZero() {
		return fmt.Sprintf("{%s %s}", c.Number, c.Currency)
	}
	return fmt.Sprintf("{%s %s, %s}", c.Number, c.Currency, c.Date)
}

// sameLot reports whether two costs designate the same lot.
func (c Cost) sameLot(d Cost) bool {
	return c.Number.Equal(d.Number) && c.Currency == d.Currency && c.Date == d.Date && c.Label == d.Label
}

// Position is a single lot held in an account: units with an optional cost basis.
type Position struct {
	Units Amount
	Cost  *Cost
}

// HasCost reports whether the lot carries a cost basis.
func (p Position) HasCost() bool { return p.Cost != nil }

// CostAmount returns the total acquisition value of the lot (units × cost), in the cost currency.
// Lots without a cost are their own cost basis.
func (p Position) CostAmount() Amount {
	if p.Cost == nil {
		return p.Units
	}
	return Amount{Number: p.Units.Number.Mul(p.Cost.Number), Currency: p.Cost.Currency}
}

// String returns the position as "<units> {<cost>}".
func (p Position) String() string {
	if p.Cost == nil {
		return p.Units.String()
	}
	return p.Units.String() + " " + p.Cost.String()
}

// sameLot reports whether p and q are lots of the same currency at the same cost.
func (p Position) sameLot(q Position) bool {
	if p.Units.Currency != q.Units.Currency {
		return false
	}
	if p.Cost == nil || q.Cost == nil {
		return p.Cost == nil && q.Cost == nil
	}
	return p.Cost.sameLot(*q.Cost)
}
