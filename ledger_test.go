package folio

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewLedger_Accessors(t *testing.T) {
	ledger := decode(t, sampleLedger)

	if got, want := ledger.OperatingCurrencies(), []string{"EUR", "USD"}; !reflect.DeepEqual(got, want) {
		t.Errorf("OperatingCurrencies() = %v, want %v", got, want)
	}
	wantAccounts := []string{
		"Assets:Bank", "Assets:Broker:Cash", "Assets:Broker:HOOL", "Assets:Fixed:Item",
		"Equity:Opening", "Expenses:Food", "Income:Salary",
	}
	if got := ledger.Accounts(); !reflect.DeepEqual(got, wantAccounts) {
		t.Errorf("Accounts() = %v, want %v", got, wantAccounts)
	}
	if got, want := ledger.Currencies(), []string{"EUR", "HOOL", "USD"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Currencies() = %v, want %v", got, want)
	}

	// accessors return copies.
	ledger.OperatingCurrencies()[0] = "GBP"
	if got := ledger.OperatingCurrencies()[0]; got != "EUR" {
		t.Errorf("OperatingCurrencies() can be modified: %v", got)
	}
}

func TestNewLedger_Inference(t *testing.T) {
	ledger := decode(t, sampleLedger)

	var buy *Transaction
	for tx := range ledger.Transactions() {
		if tx.Narration == "Buy" {
			buy = tx
		}
	}
	if buy == nil {
		t.Fatal("Transactions() did not return the Buy transaction")
	}
	cash := buy.Postings[1]
	if cash.Units == nil || !cash.Units.Equal(USD("-5000")) {
		t.Errorf("inferred units = %v, want %v", cash.Units, USD("-5000"))
	}
	if got := buy.Postings[0].Cost.Date; got != day("2024-02-01") {
		t.Errorf("lot date = %v, want the transaction date", got)
	}
}

func TestNewLedger_DoesNotModifyDirectives(t *testing.T) {
	tx := NewTransaction(day("2024-01-01"), "", "Transfer",
		NewPosting("Assets:A", EUR("10")),
		Inferred("Assets:B"),
	)
	NewLedger(tx)
	if tx.Postings[1].Units != nil {
		t.Errorf("NewLedger() modified its input: %v", tx.Postings[1].Units)
	}
}

func TestNewLedger_Errors(t *testing.T) {
	open := NewOpen(day("2024-01-01"), "Assets:Bank", "EUR")
	other := NewOpen(day("2024-01-01"), "Equity:Opening")

	testCases := []struct {
		name       string
		directives []Directive
		wantErrs   []string
	}{
		{
			name: "balanced",
			directives: []Directive{open, other,
				NewTransaction(day("2024-01-02"), "", "ok",
					NewPosting("Assets:Bank", EUR("10")),
					NewPosting("Equity:Opening", EUR("-10.004")),
				),
			},
		},
		{
			name: "unbalanced",
			directives: []Directive{open, other,
				NewTransaction(day("2024-01-02"), "", "ko",
					NewPosting("Assets:Bank", EUR("10")),
					NewPosting("Equity:Opening", EUR("-9")),
				),
			},
			wantErrs: []string{"2024-01-02: ko: transaction does not balance: 1 EUR"},
		},
		{
			name: "two missing units",
			directives: []Directive{open, other,
				NewTransaction(day("2024-01-02"), "", "ko",
					NewPosting("Assets:Bank", EUR("10")),
					Inferred("Equity:Opening"),
					Inferred("Equity:Opening"),
				),
			},
			wantErrs: []string{"more than one posting without units"},
		},
		{
			name: "ambiguous inference",
			directives: []Directive{open, other,
				NewTransaction(day("2024-01-02"), "", "ko",
					NewPosting("Assets:Bank", EUR("10")),
					NewPosting("Assets:Bank", USD("10")),
					Inferred("Equity:Opening"),
				),
			},
			wantErrs: []string{
				"cannot infer units of Equity:Opening from a residual in 2 currencies",
				`account "Assets:Bank" does not accept USD`,
			},
		},
		{
			name: "unknown account",
			directives: []Directive{open,
				NewTransaction(day("2024-01-02"), "", "ko",
					NewPosting("Assets:Bank", EUR("10")),
					NewPosting("Equity:Opening", EUR("-10")),
				),
			},
			wantErrs: []string{`account "Equity:Opening" does not exist (no open directive)`},
		},
		{
			name: "posting before open and after close",
			directives: []Directive{open, NewOpen(day("2024-02-01"), "Equity:Opening"), NewClose(day("2024-01-01"), "Assets:Bank"),
				NewTransaction(day("2024-01-02"), "", "ko",
					NewPosting("Assets:Bank", EUR("10")),
					NewPosting("Equity:Opening", EUR("-10")),
				),
			},
			wantErrs: []string{
				`account "Assets:Bank" is closed since 2024-01-01`,
				`account "Equity:Opening" is not open before 2024-02-01`,
			},
		},
		{
			name: "undeclared commodity",
			directives: []Directive{open, other, NewCommodity(day("2024-01-01"), "USD", "Dollar"),
				NewTransaction(day("2024-01-02"), "", "ko",
					NewPosting("Assets:Bank", EUR("10")),
					NewPosting("Equity:Opening", EUR("-10")),
				),
			},
			wantErrs: []string{
				`currency "EUR" not in declared commodities`,
				`currency "EUR" not in declared commodities`,
			},
		},
		{
			name: "malformed prices",
			directives: []Directive{
				NewPrice(day("2024-01-01"), "HOOL", USD("0")),
				NewPrice(day("2024-01-01"), "EUR", EUR("1")),
			},
			wantErrs: []string{
				"price of HOOL must be positive, got 0 USD",
				"price of EUR is quoted in itself",
			},
		},
		{
			name:       "opened twice",
			directives: []Directive{open, open},
			wantErrs:   []string{`account "Assets:Bank" opened twice`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := NewLedger(tc.directives...).Errors()
			if len(errs) != len(tc.wantErrs) {
				t.Fatalf("Errors() = %v, want %d errors", errs, len(tc.wantErrs))
			}
			for i, err := range errs {
				if !strings.Contains(err.Error(), tc.wantErrs[i]) {
					t.Errorf("Errors()[%d] = %q, want %q", i, err, tc.wantErrs[i])
				}
			}
		})
	}
}
