package folio

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/etnz/folio/date"
)

// Filter selects transactions. Zero fields match everything.
type Filter struct {
	Account  *regexp.Regexp // some posting account matches
	Payee    *regexp.Regexp // the payee matches
	Tag      string         // the transaction has this tag
	Currency string         // some posting units are in this currency
}

// Match reports whether the transaction is selected by the filter.
func (f Filter) Match(tx *Transaction) bool {
	if f.Account != nil && !slices.ContainsFunc(tx.Postings, func(p Posting) bool { return f.Account.MatchString(p.Account) }) {
		return false
	}
	if f.Payee != nil && (tx.Payee == "" || !f.Payee.MatchString(tx.Payee)) {
		return false
	}
	if f.Tag != "" && !tx.HasTag(f.Tag) {
		return false
	}
	if f.Currency != "" && !slices.ContainsFunc(tx.Postings, func(p Posting) bool { return p.Units != nil && p.Units.Currency == f.Currency }) {
		return false
	}
	return true
}

// Find returns the transactions selected by the filter, in chronological order.
func (l *Ledger) Find(f Filter) []*Transaction {
	var found []*Transaction
	for tx := range l.Transactions() {
		if f.Match(tx) {
			found = append(found, tx)
		}
	}
	return found
}

// AuditLine is a posting in the audited currency.
type AuditLine struct {
	Date        date.Date `json:"date"`
	Description string    `json:"description"`
	Account     string    `json:"account"`
	Units       Amount    `json:"units"`
	Price       *Amount   `json:"price,omitempty"`
	Cost        *Cost     `json:"cost,omitempty"`
}

// Basis returns the price ("@ 1.10 USD") or the cost ("{500 USD}") of the
// posting, or an empty string.
func (a AuditLine) Basis() string {
	switch {
	case a.Price != nil:
		return fmt.Sprintf("@ %s %s", a.Price.Number, a.Price.Currency)
	case a.Cost != nil:
		return fmt.Sprintf("{%s %s}", a.Cost.Number, a.Cost.Currency)
	default:
		return ""
	}
}

// Audit lists the postings in 'currency' of the 'limit' most recent
// transactions using it, newest first. A limit of zero or less lists all of
// them.
func (l *Ledger) Audit(currency string, limit int) []AuditLine {
	txs := l.Find(Filter{Currency: currency})
	slices.SortStableFunc(txs, func(a, b *Transaction) int { return b.Date.Compare(a.Date) })
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	var lines []AuditLine
	for _, tx := range txs {
		for _, p := range tx.Postings {
			if p.Units == nil || p.Units.Currency != currency {
				continue
			}
			lines = append(lines, AuditLine{
				Date:        tx.Date,
				Description: tx.Description(),
				Account:     p.Account,
				Units:       *p.Units,
				Price:       p.Price,
				Cost:        p.Cost,
			})
		}
	}
	return lines
}
