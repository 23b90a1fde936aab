package folio

import (
	"slices"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// DirectiveType is a typed string for identifying ledger directives.
type DirectiveType string

// Directive types, as written in the "directive" field of each ledger line.
const (
	DirOption      DirectiveType = "option"
	DirOpen        DirectiveType = "open"
	DirClose       DirectiveType = "close"
	DirCommodity   DirectiveType = "commodity"
	DirPrice       DirectiveType = "price"
	DirTransaction DirectiveType = "transaction"
)

// Option names understood by the ledger.
const (
	OptionTitle             = "title"
	OptionOperatingCurrency = "operating_currency"
)

// Directive defines the common interface for all entries of a ledger.
type Directive interface {
	What() DirectiveType // What returns the directive type (e.g., "open", "price").
	When() date.Date     // When returns the date of the directive, zero for options.
}

type baseDir struct {
	Kind DirectiveType `json:"directive"`
	Date date.Date     `json:"date"`
}

// What returns the type of the directive.
func (d baseDir) What() DirectiveType { return d.Kind }

// When returns the date of the directive.
func (d baseDir) When() date.Date { return d.Date }

// Option sets a ledger wide option like its title or an operating currency.
// An option can be repeated, operating currencies accumulate in order.
type Option struct {
	baseDir
	Name  string
	Value string
}

// NewOption creates a new Option directive.
func NewOption(name, value string) *Option {
	return &Option{baseDir: baseDir{Kind: DirOption}, Name: name, Value: value}
}

// Open declares an account, optionally constrained to a set of currencies.
type Open struct {
	baseDir
	Account    string
	Currencies []string
}

// NewOpen creates a new Open directive.
func NewOpen(day date.Date, account string, currencies ...string) *Open {
	return &Open{baseDir: baseDir{Kind: DirOpen, Date: day}, Account: account, Currencies: currencies}
}

// Close declares the end of life of an account.
type Close struct {
	baseDir
	Account string
}

// NewClose creates a new Close directive.
func NewClose(day date.Date, account string) *Close {
	return &Close{baseDir: baseDir{Kind: DirClose, Date: day}, Account: account}
}

// Commodity declares a currency or a commodity.
type Commodity struct {
	baseDir
	Currency string
	Name     string
}

// NewCommodity creates a new Commodity directive.
func NewCommodity(day date.Date, currency, name string) *Commodity {
	return &Commodity{baseDir: baseDir{Kind: DirCommodity, Date: day}, Currency: currency, Name: name}
}

// Price declares that on a given day one unit of Commodity is worth Amount.
type Price struct {
	baseDir
	Commodity string
	Amount    Amount
}

// NewPrice creates a new Price directive.
func NewPrice(day date.Date, commodity string, amount Amount) *Price {
	return &Price{baseDir: baseDir{Kind: DirPrice, Date: day}, Commodity: commodity, Amount: amount}
}

// Posting is a single leg of a transaction.
//
// Units can be nil for at most one posting per transaction, it is then
// inferred from the other postings when the ledger is built.
type Posting struct {
	Account string
	Units   *Amount
	Cost    *Cost   // per unit acquisition cost, if any
	Price   *Amount // per unit conversion price, if any
	Flag    string
}

// NewPosting creates a posting of units into an account.
func NewPosting(account string, units Amount) Posting {
	return Posting{Account: account, Units: &units}
}

// Inferred creates a posting whose units will be inferred to balance the transaction.
func Inferred(account string) Posting {
	return Posting{Account: account}
}

// WithCost returns a copy of the posting holding a lot acquired at 'number' 'currency' per unit.
func (p Posting) WithCost(number decimal.Decimal, currency string) Posting {
	p.Cost = &Cost{Number: number, Currency: currency}
	return p
}

// WithPrice returns a copy of the posting converted at 'price' per unit.
func (p Posting) WithPrice(price Amount) Posting {
	p.Price = &price
	return p
}

// Position returns the lot booked by this posting.
func (p Posting) Position() Position {
	var pos Position
	if p.Units != nil {
		pos.Units = *p.Units
	}
	if p.Cost != nil {
		c := *p.Cost
		pos.Cost = &c
	}
	return pos
}

// weight returns the amount that this posting contributes to the transaction balance.
func (p Posting) weight() Amount {
	units := *p.Units
	switch {
	case p.Cost != nil:
		return Amount{Number: units.Number.Mul(p.Cost.Number), Currency: p.Cost.Currency}
	case p.Price != nil:
		return Amount{Number: units.Number.Mul(p.Price.Number), Currency: p.Price.Currency}
	default:
		return units
	}
}

// Transaction records a balanced movement between accounts.
type Transaction struct {
	baseDir
	Flag      string
	Payee     string
	Narration string
	Tags      []string
	Links     []string
	Postings  []Posting
}

// NewTransaction creates a new cleared Transaction.
func NewTransaction(day date.Date, payee, narration string, postings ...Posting) *Transaction {
	return &Transaction{
		baseDir:   baseDir{Kind: DirTransaction, Date: day},
		Flag:      "*",
		Payee:     payee,
		Narration: narration,
		Postings:  postings,
	}
}

// Description returns "payee: narration", or only the narration when there is no payee.
func (t *Transaction) Description() string {
	if t.Payee == "" {
		return t.Narration
	}
	return t.Payee + ": " + t.Narration
}

// HasTag reports whether the transaction is tagged with 'tag'.
func (t *Transaction) HasTag(tag string) bool { return slices.Contains(t.Tags, tag) }

// clone returns a deep enough copy of the transaction so that postings can be modified.
func (t *Transaction) clone() *Transaction {
	c := *t
	c.Postings = make([]Posting, len(t.Postings))
	for i, p := range t.Postings {
		if p.Units != nil {
			u := *p.Units
			p.Units = &u
		}
		if p.Cost != nil {
			cost := *p.Cost
			p.Cost = &cost
		}
		c.Postings[i] = p
	}
	return &c
}
