package folio

import (
	"reflect"
	"testing"
)

func TestRealize(t *testing.T) {
	tree := Realize(decode(t, sampleLedger))

	testCases := []struct {
		account        string
		own            string
		cumulative     string
		wantChildNames []string
	}{
		{"Assets", "", "7850 EUR, 1000 USD, 10 HOOL {500 USD, 2024-02-01}", []string{"Bank", "Broker", "Fixed"}},
		{"Assets:Broker", "", "1000 USD, 10 HOOL {500 USD, 2024-02-01}", []string{"Cash", "HOOL"}},
		{"Assets:Broker:HOOL", "10 HOOL {500 USD, 2024-02-01}", "10 HOOL {500 USD, 2024-02-01}", nil},
		{"Equity:Opening", "-6000 EUR, -6000 USD", "-6000 EUR, -6000 USD", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.account, func(t *testing.T) {
			n := tree.Get(tc.account)
			if n == nil {
				t.Fatalf("Get(%q) = nil", tc.account)
			}
			if got := n.Own.String(); got != tc.own {
				t.Errorf("Own = %q, want %q", got, tc.own)
			}
			if got := n.Cumulative.String(); got != tc.cumulative {
				t.Errorf("Cumulative = %q, want %q", got, tc.cumulative)
			}
			var names []string
			for c := range n.Children() {
				names = append(names, c.Name())
			}
			if !reflect.DeepEqual(names, tc.wantChildNames) {
				t.Errorf("Children() = %v, want %v", names, tc.wantChildNames)
			}
		})
	}

	if n := tree.Get("Assets:Bank2"); n != nil {
		t.Errorf("Get(%q) = %v, want nil", "Assets:Bank2", n)
	}

	var top []string
	for n := range tree.Root().Children() {
		top = append(top, n.Account)
	}
	if want := []string{"Assets", "Equity", "Expenses", "Income"}; !reflect.DeepEqual(top, want) {
		t.Errorf("Root().Children() = %v, want %v", top, want)
	}
}
