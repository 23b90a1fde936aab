package folio

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/etnz/folio/obs"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceSheetRoots are the roots of a balance sheet report.
var BalanceSheetRoots = []string{"Assets", "Liabilities", "Equity"}

// netTolerance is the largest net position difference considered balanced.
var netTolerance = decimal.New(1, -4)

// AccountBalance holds the balance of an account per currency.
//
// Units is what the account holds, Cost what it cost. When converted to a
// target currency, the converted figure is in both maps under the target
// currency and lots that could not be converted stay in Units under their
// own currency.
type AccountBalance struct {
	Units map[string]decimal.Decimal `json:"units"`
	Cost  map[string]decimal.Decimal `json:"cost"`
}

func newAccountBalance() AccountBalance {
	return AccountBalance{
		Units: make(map[string]decimal.Decimal),
		Cost:  make(map[string]decimal.Decimal),
	}
}

// IsEmpty reports whether the balance has no currency at all.
func (b AccountBalance) IsEmpty() bool { return len(b.Units) == 0 && len(b.Cost) == 0 }

// Currencies returns the sorted currencies of the Units.
func (b AccountBalance) Currencies() []string { return slices.Sorted(maps.Keys(b.Units)) }

// Balances maps account names to their balance.
type Balances map[string]AccountBalance

// Accounts returns the sorted account names.
func (b Balances) Accounts() []string { return slices.Sorted(maps.Keys(b)) }

// Net is the net position of a currency: the sum of debit and credit cost
// buckets of the top level accounts. Credit is negative or zero.
type Net struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// Diff returns the difference between debit and credit.
func (n Net) Diff() decimal.Decimal { return n.Debit.Add(n.Credit) }

// Balanced reports whether the position is balanced within 0.0001.
func (n Net) Balanced() bool { return n.Diff().Abs().LessThan(netTolerance) }

// NetPosition sums the cost buckets of the top level accounts per currency.
//
// On a trial balance of balanced transactions, every currency is Balanced.
func (b Balances) NetPosition() map[string]Net {
	nets := make(map[string]Net)
	for account, bal := range b {
		if strings.Contains(account, AccountSeparator) {
			continue
		}
		for cur, n := range bal.Cost {
			net := nets[cur]
			if n.IsPositive() {
				net.Debit = net.Debit.Add(n)
			} else {
				net.Credit = net.Credit.Add(n)
			}
			nets[cur] = net
		}
	}
	return nets
}

// Balances computes the balance of every account under the given roots, or of
// the whole tree if there is no root. Roots that do not exist are skipped.
//
// Each balance includes the lots of all sub accounts. If convertTo is not
// empty, lots are valued in that currency with the valuation, using the
// operating currencies as intermediate hops. A structural failure of the
// price graph aborts the report with a *ConversionError.
func (r *Reporter) Balances(roots []string, convertTo string, v Valuation) (Balances, error) {
	start := time.Now()
	defer obs.ObserveReport("balances", start)

	if _, ok := steps[v]; convertTo != "" && !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownValuation, int(v))
	}

	var nodes []*Node
	if len(roots) == 0 {
		for n := range r.tree.Root().Children() {
			nodes = append(nodes, n)
		}
	}
	for _, root := range roots {
		n := r.tree.Get(root)
		if n == nil {
			r.logger.Debug("skipping missing root", zap.String("root", root))
			continue
		}
		nodes = append(nodes, n)
	}

	via := r.ledger.OperatingCurrencies()
	balances := make(Balances)
	for _, top := range nodes {
		for n := range top.Walk() {
			if n.Cumulative.IsEmpty() {
				continue
			}
			var (
				bal AccountBalance
				err error
			)
			if convertTo == "" {
				bal = nativeBalance(n.Cumulative)
			} else {
				bal, err = r.convertedBalance(n, convertTo, v, via)
				if err != nil {
					return nil, err
				}
			}
			if !bal.IsEmpty() {
				balances[n.Account] = bal
			}
		}
	}
	return balances, nil
}

// nativeBalance sums the lots per currency, cash being its own cost basis.
func nativeBalance(inv Inventory) AccountBalance {
	bal := newAccountBalance()
	for _, pos := range inv {
		cur := pos.Units.Currency
		bal.Units[cur] = bal.Units[cur].Add(pos.Units.Number)
		cost := pos.CostAmount()
		bal.Cost[cost.Currency] = bal.Cost[cost.Currency].Add(cost.Number)
	}
	return bal
}

// convertedBalance values every lot of a node in target currency.
func (r *Reporter) convertedBalance(n *Node, target string, v Valuation, via []string) (AccountBalance, error) {
	bal := newAccountBalance()
	total := decimal.Zero
	for _, pos := range n.Cumulative {
		c, err := ConvertWithFallback(r.prices, pos, target, v, via...)
		if err != nil {
			return AccountBalance{}, err
		}
		obs.ObserveConversion(v.String(), string(c.Step))
		switch c.Step {
		case StepNative, StepMarket:
		case StepUnconverted:
			r.logger.Debug("lot left unconverted",
				zap.String("account", n.Account),
				zap.Stringer("lot", pos),
				zap.String("target", target),
				zap.Stringer("valuation", v),
			)
		default:
			r.logger.Debug("lot valued by fallback",
				zap.String("account", n.Account),
				zap.Stringer("lot", pos),
				zap.String("step", string(c.Step)),
				zap.Stringer("amount", c.Amount),
			)
		}
		if !c.Converted {
			cur := pos.Units.Currency
			bal.Units[cur] = bal.Units[cur].Add(pos.Units.Number)
			continue
		}
		total = total.Add(c.Amount.Number)
	}
	if !total.IsZero() {
		bal.Units[target] = bal.Units[target].Add(total)
		bal.Cost[target] = bal.Cost[target].Add(total)
	}
	return bal, nil
}
