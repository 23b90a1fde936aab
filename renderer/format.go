package renderer

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount formats a number in a currency.
//
// ISO currencies are formatted with their symbol and number of decimals,
// other commodities with two decimals followed by their code.
func Amount(n decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%s %s", n.StringFixed(2), currency)
	}
	minor := n.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Number formats a number with two decimals.
func Number(n decimal.Decimal) string { return n.StringFixed(2) }

// Percent formats a ratio as a signed percentage with one decimal.
func Percent(ratio decimal.Decimal) string {
	return ratio.Shift(2).StringFixed(1) + "%"
}

// Amounts formats a currency map as a comma separated list, sorted by currency.
func Amounts(m map[string]decimal.Decimal) string {
	parts := make([]string, 0, len(m))
	for _, cur := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, Amount(m[cur], cur))
	}
	return strings.Join(parts, ", ")
}
