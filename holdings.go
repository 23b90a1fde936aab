package folio

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/etnz/folio/obs"
	"github.com/shopspring/decimal"
)

// HoldingsRoot is the root of the accounts reported as holdings.
const HoldingsRoot = "Assets"

// Holding is the content of a leaf asset account, valued in each target currency.
type Holding struct {
	Units           map[string]decimal.Decimal `json:"units"`
	MarketValues    map[string]decimal.Decimal `json:"market_values"`
	CostBasis       map[string]decimal.Decimal `json:"cost_basis"`
	UnrealizedGains map[string]decimal.Decimal `json:"unrealized_gains"`
}

// GainRatio returns the unrealized gain in 'cur' relative to the cost basis,
// or zero when there is no cost basis.
func (h Holding) GainRatio(cur string) decimal.Decimal {
	return ratio(h.UnrealizedGains[cur], h.CostBasis[cur])
}

// isZero reports whether the holding has no units and no market value.
func (h Holding) isZero() bool {
	for _, n := range h.Units {
		if !n.IsZero() {
			return false
		}
	}
	for _, n := range h.MarketValues {
		if !n.IsZero() {
			return false
		}
	}
	return true
}

// HoldingTotal sums the holdings in one target currency.
type HoldingTotal struct {
	Market decimal.Decimal `json:"market"`
	Cost   decimal.Decimal `json:"cost"`
	Gain   decimal.Decimal `json:"gain"`
}

// GainRatio returns the total gain relative to the total cost, or zero when
// there is no cost.
func (t HoldingTotal) GainRatio() decimal.Decimal { return ratio(t.Gain, t.Cost) }

func ratio(gain, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return gain.DivRound(cost, 8)
}

// Holdings is the portfolio report: leaf asset accounts and totals per target currency.
type Holdings struct {
	Valuation  Valuation               `json:"valuation"`
	Currencies []string                `json:"currencies"`
	Accounts   map[string]Holding      `json:"accounts"`
	Totals     map[string]HoldingTotal `json:"totals"`
}

// AccountNames returns the sorted names of the reported accounts.
func (h *Holdings) AccountNames() []string { return slices.Sorted(maps.Keys(h.Accounts)) }

// Holdings computes the holdings of every leaf account under Assets.
//
// Each holding is valued at market and at cost in every target currency, and
// the gain is their difference. Without targets, the ledger operating
// currencies are used, in their declared order. Leaves with neither units nor
// market value are not reported.
func (r *Reporter) Holdings(v Valuation, targets []string) (*Holdings, error) {
	start := time.Now()
	defer obs.ObserveReport("holdings", start)

	if _, ok := steps[v]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownValuation, int(v))
	}

	if len(targets) == 0 {
		targets = r.ledger.OperatingCurrencies()
	}
	targets = unique(targets)
	roots := []string{HoldingsRoot}

	h := &Holdings{
		Valuation:  v,
		Currencies: targets,
		Accounts:   make(map[string]Holding),
		Totals:     make(map[string]HoldingTotal, len(targets)),
	}
	for _, cur := range targets {
		h.Totals[cur] = HoldingTotal{}
	}

	raw, err := r.Balances(roots, "", v)
	if err != nil {
		return nil, err
	}
	atMarket := make(map[string]Balances, len(targets))
	atCost := make(map[string]Balances, len(targets))
	for _, cur := range targets {
		if atMarket[cur], err = r.Balances(roots, cur, AtMarket); err != nil {
			return nil, err
		}
		if atCost[cur], err = r.Balances(roots, cur, AtCost); err != nil {
			return nil, err
		}
	}

	accounts := raw.Accounts()
	for _, account := range leaves(accounts) {
		holding := Holding{
			Units:           maps.Clone(raw[account].Units),
			MarketValues:    make(map[string]decimal.Decimal, len(targets)),
			CostBasis:       make(map[string]decimal.Decimal, len(targets)),
			UnrealizedGains: make(map[string]decimal.Decimal, len(targets)),
		}
		for _, cur := range targets {
			m := atMarket[cur][account].Units[cur]
			c := atCost[cur][account].Units[cur]
			gain := m.Sub(c)
			holding.MarketValues[cur] = m
			holding.CostBasis[cur] = c
			holding.UnrealizedGains[cur] = gain

			total := h.Totals[cur]
			total.Market = total.Market.Add(m)
			total.Cost = total.Cost.Add(c)
			total.Gain = total.Gain.Add(gain)
			h.Totals[cur] = total
		}
		if !holding.isZero() {
			h.Accounts[account] = holding
		}
	}
	return h, nil
}

// leaves returns the accounts that are not the parent of another account of
// the list. Accounts must be sorted.
func leaves(sorted []string) []string {
	var leaves []string
	for _, account := range sorted {
		prefix := account + AccountSeparator
		// descendants form a contiguous block starting where prefix would be inserted
		if i, _ := slices.BinarySearch(sorted, prefix); i < len(sorted) && strings.HasPrefix(sorted[i], prefix) {
			continue
		}
		leaves = append(leaves, account)
	}
	return leaves
}

// unique returns the currencies without repeats, in first seen order.
func unique(currencies []string) []string {
	seen := make(map[string]bool, len(currencies))
	out := make([]string, 0, len(currencies))
	for _, cur := range currencies {
		if !seen[cur] {
			seen[cur] = true
			out = append(out, cur)
		}
	}
	return out
}
