package folio

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	ledger := decode(t, sampleLedger)

	if got, want := ledger.Len(), 17; got != want {
		t.Fatalf("DecodeLedger() decoded %d directives, want %d", got, want)
	}

	// options first, then chronological order, file order within a day.
	wantTypes := []DirectiveType{
		DirOption, DirOption, DirOption,
		DirOpen, DirOpen, DirOpen, DirOpen, DirOpen, DirOpen, DirOpen,
		DirTransaction, DirPrice, DirTransaction, DirTransaction, DirTransaction,
		DirPrice, DirPrice,
	}
	var gotTypes []DirectiveType
	for d := range ledger.Directives() {
		gotTypes = append(gotTypes, d.What())
	}
	if !reflect.DeepEqual(gotTypes, wantTypes) {
		t.Errorf("DecodeLedger() directive order = %v, want %v", gotTypes, wantTypes)
	}

	if errs := ledger.Errors(); len(errs) != 0 {
		t.Errorf("DecodeLedger() errors = %v, want none", errs)
	}
	if got, want := ledger.Title(), "Family"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantLine string
		wantErr  string
	}{
		{
			name:    "unknown directive",
			input:   "{\"directive\":\"option\",\"name\":\"title\",\"value\":\"x\"}\n\n{\"directive\":\"pad\",\"date\":\"2024-01-01\"}\n",
			wantLine: "line 3: ",
			wantErr:  `unknown directive: "pad"`,
		},
		{
			name:    "invalid json",
			input:   `{"directive":`,
			wantLine: "line 1: ",
			wantErr:  "could not identify directive",
		},
		{
			name:    "invalid date",
			input:   `{"directive":"open","date":"2024-13-45","account":"Assets:Bank"}`,
			wantLine: "line 1: ",
			wantErr:  `invalid date "2024-13-45"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLedger(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("DecodeLedger() expected an error")
			}
			if !strings.HasPrefix(err.Error(), tc.wantLine) || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("DecodeLedger() error = %q, want %q...%q", err, tc.wantLine, tc.wantErr)
			}
		})
	}
}

func TestEncodeLedger_RoundTrip(t *testing.T) {
	ledger := decode(t, sampleLedger)

	var first bytes.Buffer
	if err := EncodeLedger(&first, ledger); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}

	decoded := decode(t, first.String())
	var second bytes.Buffer
	if err := EncodeLedger(&second, decoded); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("EncodeLedger() is not stable:\n%s\nvs\n%s", first.String(), second.String())
	}
	if got, want := strings.Count(first.String(), "\n"), ledger.Len(); got != want {
		t.Errorf("EncodeLedger() wrote %d lines, want %d", got, want)
	}
	// inferred units and lot dates are written explicitly.
	wantLine := `{"directive":"transaction","date":"2024-02-15","flag":"*","payee":"Market","narration":"Groceries","tags":["food"],"postings":[` +
		`{"account":"Expenses:Food","units":{"number":150,"currency":"EUR"}},` +
		`{"account":"Assets:Bank","units":{"number":-150,"currency":"EUR"}}]}`
	if !strings.Contains(first.String(), wantLine) {
		t.Errorf("EncodeLedger() missing line %s in\n%s", wantLine, first.String())
	}
	if !strings.Contains(first.String(), `"cost":{"number":500,"currency":"USD","date":"2024-02-01"}`) {
		t.Errorf("EncodeLedger() did not write the lot date:\n%s", first.String())
	}
}

func TestLoadLedger(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "family.jsonl")
	if err := os.WriteFile(path, []byte(sampleLedger), 0o644); err != nil {
		t.Fatal(err)
	}

	ledger, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("LoadLedger() unexpected error: %v", err)
	}
	if got, want := ledger.Name(), "family"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	_, err = LoadLedger(filepath.Join(dir, "missing.jsonl"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadLedger() error = %v, want %v", err, fs.ErrNotExist)
	}
}
