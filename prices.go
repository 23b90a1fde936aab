package folio

import (
	"errors"
	"fmt"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoPrice is returned when no price is known for a currency pair.
	ErrNoPrice = errors.New("no price")
	// ErrMalformedPrice is returned when the price of a pair is not a positive number.
	ErrMalformedPrice = errors.New("malformed price")
)

// pair is a (base, quote) currency pair: one base is worth rate quote.
type pair struct{ base, quote string }

// PriceGraph holds the history of exchange rates declared by price directives.
//
// Every positive price also declares its inverse rate. The graph is immutable
// once built and safe for concurrent use.
type PriceGraph struct {
	rates map[pair]*date.History[decimal.Decimal]
}

// NewPriceGraph builds the price graph from the price directives of a ledger.
// For a given pair and day, the last price directive wins.
func NewPriceGraph(l *Ledger) *PriceGraph {
	g := &PriceGraph{rates: make(map[pair]*date.History[decimal.Decimal])}
	for p := range l.Prices() {
		g.add(p.Date, p.Commodity, p.Amount)
	}
	return g
}

func (g *PriceGraph) add(on date.Date, commodity string, price Amount) {
	g.history(pair{commodity, price.Currency}).Set(on, price.Number)
	if price.Number.IsPositive() {
		g.history(pair{price.Currency, commodity}).Set(on, decimal.NewFromInt(1).DivRound(price.Number, 16))
	}
}

func (g *PriceGraph) history(p pair) *date.History[decimal.Decimal] {
	h, ok := g.rates[p]
	if !ok {
		h = new(date.History[decimal.Decimal])
		g.rates[p] = h
	}
	return h
}

// Rate returns the latest known rate of base in quote currency.
//
// It returns ErrNoPrice when the pair has never been priced, and
// ErrMalformedPrice when its latest price is not positive.
func (g *PriceGraph) Rate(base, quote string) (decimal.Decimal, error) {
	h, ok := g.rates[pair{base, quote}]
	if !ok || h.Len() == 0 {
		return decimal.Zero, ErrNoPrice
	}
	on, rate := h.Latest()
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s/%s is %s on %s: %w", base, quote, rate, on, ErrMalformedPrice)
	}
	return rate, nil
}

// Convert converts amount into target currency with the latest rates.
//
// The direct pair is tried first, then each via currency in order as a
// single intermediate hop. When no path exists the amount is returned
// unchanged, still in its own currency, and a nil error. Malformed prices are
// reported as errors.
func (g *PriceGraph) Convert(amount Amount, target string, via ...string) (Amount, error) {
	if amount.Currency == target {
		return amount, nil
	}
	rate, err := g.Rate(amount.Currency, target)
	switch {
	case err == nil:
		return Amount{Number: amount.Number.Mul(rate), Currency: target}, nil
	case !errors.Is(err, ErrNoPrice):
		return amount, err
	}

	for _, v := range via {
		if v == target || v == amount.Currency {
			continue
		}
		first, err := g.Rate(amount.Currency, v)
		if errors.Is(err, ErrNoPrice) {
			continue
		}
		if err != nil {
			return amount, err
		}
		second, err := g.Rate(v, target)
		if errors.Is(err, ErrNoPrice) {
			continue
		}
		if err != nil {
			return amount, err
		}
		return Amount{Number: amount.Number.Mul(first).Mul(second), Currency: target}, nil
	}
	return amount, nil
}
