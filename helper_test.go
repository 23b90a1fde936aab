package folio

import (
	"strings"
	"testing"

	"github.com/etnz/folio/date"
	"github.com/shopspring/decimal"
)

// day is a helper for test to create dates from const.
func day(s string) date.Date { return date.MustParse(s) }

// dec is a helper for test to create exact decimals from const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// EUR is a helper for test to create euro amounts from const.
func EUR(v string) Amount { return A(v, "EUR") }

// USD is a helper for test to create dollar amounts from const.
func USD(v string) Amount { return A(v, "USD") }

// decode decodes a JSONL ledger and fails the test on error.
func decode(t *testing.T, jsonl string) *Ledger {
	t.Helper()
	l, err := DecodeLedger(strings.NewReader(jsonl))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	return l
}

// sampleLedger is a small household ledger with a broker account.
//
// On 2024-03-01 it holds:
//
//	Assets:Bank          6850 EUR
//	Assets:Broker:Cash   1000 USD
//	Assets:Broker:HOOL   10 HOOL {500 USD, 2024-02-01}
//	Assets:Fixed:Item    1000.00 EUR
//
// with HOOL at 550 USD and USD at 0.9 EUR.
const sampleLedger = `
// options
{"directive":"option","name":"title","value":"Family"}
{"directive":"option","name":"operating_currency","value":"EUR"}
{"directive":"option","name":"operating_currency","value":"USD"}

{"directive":"open","date":"2024-01-01","account":"Assets:Bank","currencies":["EUR"]}
{"directive":"open","date":"2024-01-01","account":"Assets:Broker:Cash","currencies":["USD"]}
{"directive":"open","date":"2024-01-01","account":"Assets:Broker:HOOL","currencies":["HOOL"]}
{"directive":"open","date":"2024-01-01","account":"Assets:Fixed:Item"}
{"directive":"open","date":"2024-01-01","account":"Equity:Opening"}
{"directive":"open","date":"2024-01-01","account":"Income:Salary"}
{"directive":"open","date":"2024-01-01","account":"Expenses:Food"}

{"directive":"price","date":"2024-03-01","commodity":"HOOL","amount":550,"currency":"USD"}
{"directive":"price","date":"2024-03-01","commodity":"USD","amount":0.9,"currency":"EUR"}
{"directive":"price","date":"2024-02-01","commodity":"HOOL","amount":520,"currency":"USD"}

{"directive":"transaction","date":"2024-01-02","narration":"Opening balances","postings":[{"account":"Assets:Bank","units":{"number":5000,"currency":"EUR"}},{"account":"Assets:Fixed:Item","units":{"number":"1000.00","currency":"EUR"}},{"account":"Assets:Broker:Cash","units":{"number":6000,"currency":"USD"}},{"account":"Equity:Opening","units":{"number":-6000,"currency":"EUR"}},{"account":"Equity:Opening","units":{"number":-6000,"currency":"USD"}}]}
{"directive":"transaction","date":"2024-02-01","payee":"Broker","narration":"Buy","tags":["invest"],"postings":[{"account":"Assets:Broker:HOOL","units":{"number":10,"currency":"HOOL"},"cost":{"number":500,"currency":"USD"}},{"account":"Assets:Broker:Cash"}]}
{"directive":"transaction","date":"2024-02-10","payee":"ACME","narration":"Salary","postings":[{"account":"Assets:Bank","units":{"number":2000,"currency":"EUR"}},{"account":"Income:Salary","units":{"number":-2000,"currency":"EUR"}}]}
{"directive":"transaction","date":"2024-02-15","payee":"Market","narration":"Groceries","tags":["food"],"postings":[{"account":"Expenses:Food","units":{"number":150,"currency":"EUR"}},{"account":"Assets:Bank"}]}
`
