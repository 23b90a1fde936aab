package folio

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/folio/date"
)

// Ledger is an immutable snapshot of loaded directives.
//
// In a Ledger directives are always in chronological order. It is built once
// per report invocation and can be shared by concurrent reports: nothing in
// the ledger is modified after NewLedger returns.
type Ledger struct {
	name       string
	directives []Directive
	options    Options
	errors     []error

	// indexes for validation
	opens       map[string]*Open
	closes      map[string]*Close
	commodities map[string]bool
}

// Options are the ledger wide settings declared with option directives.
type Options struct {
	Title               string
	OperatingCurrencies []string // in declaration order
}

// LedgerError is a structural problem found while loading a ledger.
//
// It does not prevent reporting, but it means the books are not consistent.
type LedgerError struct {
	Date    date.Date
	Message string
}

func (e *LedgerError) Error() string {
	if e.Date.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Date, e.Message)
}

func newLedgerError(on date.Date, format string, args ...any) error {
	return &LedgerError{Date: on, Message: fmt.Sprintf(format, args...)}
}

// NewLedger builds a ledger snapshot from directives.
//
// Directives are stable sorted by date, transactions are copied, missing
// posting units are inferred and the whole ledger is validated. Problems are
// available in Errors().
func NewLedger(directives ...Directive) *Ledger {
	l := &Ledger{directives: make([]Directive, 0, len(directives))}
	for _, d := range directives {
		if tx, ok := d.(*Transaction); ok {
			d = tx.clone()
		}
		l.directives = append(l.directives, d)
	}
	l.stableSort()

	l.index()
	l.errors = l.validate()
	return l
}

// index collects options and the account and commodity declarations.
func (l *Ledger) index() {
	l.opens = make(map[string]*Open)
	l.closes = make(map[string]*Close)
	l.commodities = make(map[string]bool)
	for _, d := range l.directives {
		switch v := d.(type) {
		case *Option:
			l.options.apply(v)
		case *Open:
			if _, exists := l.opens[v.Account]; !exists {
				l.opens[v.Account] = v
			}
		case *Close:
			l.closes[v.Account] = v
		case *Commodity:
			l.commodities[v.Currency] = true
		}
	}
}

func (o *Options) apply(opt *Option) {
	switch opt.Name {
	case OptionTitle:
		o.Title = opt.Value
	case OptionOperatingCurrency:
		if !slices.Contains(o.OperatingCurrencies, opt.Value) {
			o.OperatingCurrencies = append(o.OperatingCurrencies, opt.Value)
		}
	}
}

// stableSort sorts the directives by date, keeping the file order within a day.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.directives, func(a, b Directive) int {
		return a.When().Compare(b.When())
	})
}

// Name returns the ledger name, usually its file name without extension.
func (l *Ledger) Name() string { return l.name }

// Title returns the ledger title option.
func (l *Ledger) Title() string { return l.options.Title }

// Options returns a copy of the ledger options.
func (l *Ledger) Options() Options {
	o := l.options
	o.OperatingCurrencies = slices.Clone(o.OperatingCurrencies)
	return o
}

// OperatingCurrencies returns the declared operating currencies, in declaration order.
func (l *Ledger) OperatingCurrencies() []string { return slices.Clone(l.options.OperatingCurrencies) }

// Errors returns the structural problems found while building the ledger.
func (l *Ledger) Errors() []error { return slices.Clone(l.errors) }

// String returns a one line summary of the ledger content.
func (l *Ledger) String() string {
	return fmt.Sprintf("%s: %d directives, %d accounts, %d errors", l.Name(), l.Len(), len(l.opens), len(l.errors))
}

// Len returns the number of directives.
func (l *Ledger) Len() int { return len(l.directives) }

// Directives iterates over all directives in chronological order.
func (l *Ledger) Directives() iter.Seq[Directive] { return slices.Values(l.directives) }

// all iterates over the directives of a given concrete type.
func all[T Directive](l *Ledger) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, d := range l.directives {
			if v, ok := d.(T); ok {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Transactions iterates over transactions in chronological order.
// Returned transactions are part of the snapshot and must not be modified.
func (l *Ledger) Transactions() iter.Seq[*Transaction] { return all[*Transaction](l) }

// Prices iterates over price directives in chronological order.
func (l *Ledger) Prices() iter.Seq[*Price] { return all[*Price](l) }

// Opens iterates over open directives in chronological order.
func (l *Ledger) Opens() iter.Seq[*Open] { return all[*Open](l) }

// Accounts returns the sorted list of opened accounts.
func (l *Ledger) Accounts() []string {
	var accounts []string
	for o := range l.Opens() {
		accounts = append(accounts, o.Account)
	}
	slices.Sort(accounts)
	return slices.Compact(accounts)
}

// Commodities returns the sorted list of declared commodities.
func (l *Ledger) Commodities() []string {
	var commodities []string
	for c := range all[*Commodity](l) {
		commodities = append(commodities, c.Currency)
	}
	slices.Sort(commodities)
	return slices.Compact(commodities)
}

// Currencies returns every currency used in postings, prices or declarations, sorted.
func (l *Ledger) Currencies() []string {
	set := make(map[string]struct{})
	add := func(c string) {
		if c != "" {
			set[c] = struct{}{}
		}
	}
	for _, c := range l.options.OperatingCurrencies {
		add(c)
	}
	for _, d := range l.directives {
		switch v := d.(type) {
		case *Commodity:
			add(v.Currency)
		case *Price:
			add(v.Commodity)
			add(v.Amount.Currency)
		case *Transaction:
			for _, p := range v.Postings {
				if p.Units != nil {
					add(p.Units.Currency)
				}
				if p.Cost != nil {
					add(p.Cost.Currency)
				}
				if p.Price != nil {
					add(p.Price.Currency)
				}
			}
		}
	}
	currencies := make([]string, 0, len(set))
	for c := range set {
		currencies = append(currencies, c)
	}
	slices.Sort(currencies)
	return currencies
}
