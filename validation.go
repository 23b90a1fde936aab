package folio

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// balanceTolerance is the largest residual accepted for a balanced transaction.
var balanceTolerance = decimal.New(5, -3)

// validate checks every directive and completes transactions in place.
//
// It runs once, while the ledger is being built.
func (l *Ledger) validate() []error {
	var errs []error
	seen := make(map[string]bool)
	for _, d := range l.directives {
		switch v := d.(type) {
		case *Open:
			if seen[v.Account] {
				errs = append(errs, newLedgerError(v.Date, "account %q opened twice", v.Account))
			}
			seen[v.Account] = true
		case *Close:
			if _, ok := l.opens[v.Account]; !ok {
				errs = append(errs, newLedgerError(v.Date, "account %q closed but never opened", v.Account))
			}
		case *Price:
			errs = append(errs, validatePrice(v)...)
		case *Transaction:
			errs = append(errs, complete(v)...)
			errs = append(errs, l.ValidateTransaction(v)...)
		}
	}
	return errs
}

// validatePrice reports malformed price directives.
func validatePrice(p *Price) []error {
	var errs []error
	if !p.Amount.Number.IsPositive() {
		errs = append(errs, newLedgerError(p.Date, "price of %s must be positive, got %s", p.Commodity, p.Amount))
	}
	if p.Commodity == p.Amount.Currency {
		errs = append(errs, newLedgerError(p.Date, "price of %s is quoted in itself", p.Commodity))
	}
	return errs
}

// complete infers the missing units of a transaction, checks that it
// balances and dates the cost of the lots it opens.
func complete(tx *Transaction) []error {
	var errs []error
	residual := make(map[string]decimal.Decimal)
	missing := -1
	for i, p := range tx.Postings {
		if p.Units == nil {
			if missing >= 0 {
				return append(errs, newLedgerError(tx.Date, "%s: more than one posting without units", tx.Description()))
			}
			missing = i
			continue
		}
		w := p.weight()
		residual[w.Currency] = residual[w.Currency].Add(w.Number)
	}

	// drop currencies that balance within tolerance
	for cur, n := range residual {
		if n.Abs().LessThanOrEqual(balanceTolerance) {
			delete(residual, cur)
		}
	}

	switch {
	case missing >= 0 && len(residual) == 1:
		for cur, n := range residual {
			tx.Postings[missing].Units = &Amount{Number: n.Neg(), Currency: cur}
		}
	case missing >= 0:
		errs = append(errs, newLedgerError(tx.Date, "%s: cannot infer units of %s from a residual in %d currencies",
			tx.Description(), tx.Postings[missing].Account, len(residual)))
	case len(residual) > 0:
		errs = append(errs, newLedgerError(tx.Date, "%s: transaction does not balance: %s",
			tx.Description(), formatResidual(residual)))
	}

	for i, p := range tx.Postings {
		if p.Cost != nil && p.Cost.Date.IsZero() && p.Units != nil && p.Units.Number.IsPositive() {
			tx.Postings[i].Cost.Date = tx.Date
		}
	}
	return errs
}

func formatResidual(residual map[string]decimal.Decimal) string {
	currencies := make([]string, 0, len(residual))
	for cur := range residual {
		currencies = append(currencies, cur)
	}
	slices.Sort(currencies)
	parts := make([]string, len(currencies))
	for i, cur := range currencies {
		parts[i] = Amount{Number: residual[cur], Currency: cur}.String()
	}
	return strings.Join(parts, ", ")
}

// ValidateTransaction checks that a transaction only posts to accounts that
// are open on its date and only uses declared commodities.
//
// Commodities are only checked when the ledger declares at least one.
func (l *Ledger) ValidateTransaction(tx *Transaction) []error {
	var errs []error
	for _, p := range tx.Postings {
		open, ok := l.opens[p.Account]
		switch {
		case !ok:
			errs = append(errs, newLedgerError(tx.Date, "account %q does not exist (no open directive)", p.Account))
		case tx.Date.Before(open.Date):
			errs = append(errs, newLedgerError(tx.Date, "account %q is not open before %s", p.Account, open.Date))
		}
		if c, closed := l.closes[p.Account]; closed && tx.Date.After(c.Date) {
			errs = append(errs, newLedgerError(tx.Date, "account %q is closed since %s", p.Account, c.Date))
		}
		if p.Units == nil {
			continue
		}
		cur := p.Units.Currency
		if len(l.commodities) > 0 && !l.commodities[cur] {
			errs = append(errs, newLedgerError(tx.Date, "currency %q not in declared commodities", cur))
		}
		if ok && len(open.Currencies) > 0 && !slices.Contains(open.Currencies, cur) {
			errs = append(errs, newLedgerError(tx.Date, "account %q does not accept %s", p.Account, cur))
		}
	}
	return errs
}
