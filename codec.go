package folio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// maxLineSize is the largest directive line accepted by DecodeLedger.
const maxLineSize = 1 << 20

// DecodeLedger decodes directives from a stream of JSONL data, one directive
// per line, and returns the resulting Ledger.
//
// Blank lines and lines starting with "//" are ignored. A line that cannot be
// decoded is a fatal error, structural problems are reported by
// Ledger.Errors().
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var directives []Directive
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineno := 0
	for scanner.Scan() {
		lineno++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 || bytes.HasPrefix(lineBytes, []byte("//")) {
			continue
		}
		d, err := decodeDirective(lineBytes)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		directives = append(directives, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return NewLedger(directives...), nil
}

// decodeDirective decodes a single JSON object into the directive it describes.
func decodeDirective(lineBytes []byte) (Directive, error) {
	var identifier struct {
		Kind DirectiveType `json:"directive"`
	}
	if err := json.Unmarshal(lineBytes, &identifier); err != nil {
		return nil, fmt.Errorf("could not identify directive in %q: %w", string(lineBytes), err)
	}

	var (
		d   Directive
		err error
	)
	switch identifier.Kind {
	case DirOption:
		var temp struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		}
		err = json.Unmarshal(lineBytes, &temp)
		d = NewOption(temp.Name, temp.Value)
	case DirOpen:
		var temp struct {
			baseDir
			Account    string   `json:"account"`
			Currencies []string `json:"currencies"`
		}
		err = json.Unmarshal(lineBytes, &temp)
		d = NewOpen(temp.Date, temp.Account, temp.Currencies...)
	case DirClose:
		var temp struct {
			baseDir
			Account string `json:"account"`
		}
		err = json.Unmarshal(lineBytes, &temp)
		d = NewClose(temp.Date, temp.Account)
	case DirCommodity:
		var temp struct {
			baseDir
			Currency string `json:"currency"`
			Name     string `json:"name"`
		}
		err = json.Unmarshal(lineBytes, &temp)
		d = NewCommodity(temp.Date, temp.Currency, temp.Name)
	case DirPrice:
		// the amount is read from two flat fields.
		var temp struct {
			baseDir
			Commodity string          `json:"commodity"`
			Amount    decimal.Decimal `json:"amount"`
			Currency  string          `json:"currency"`
		}
		err = json.Unmarshal(lineBytes, &temp)
		d = NewPrice(temp.Date, temp.Commodity, Amount{Number: temp.Amount, Currency: temp.Currency})
	case DirTransaction:
		var temp struct {
			baseDir
			Flag      string   `json:"flag"`
			Payee     string   `json:"payee"`
			Narration string   `json:"narration"`
			Tags      []string `json:"tags"`
			Links     []string `json:"links"`
			Postings  []struct {
				Account string  `json:"account"`
				Units   *Amount `json:"units"`
				Cost    *Cost   `json:"cost"`
				Price   *Amount `json:"price"`
				Flag    string  `json:"flag"`
			} `json:"postings"`
		}
		if err = json.Unmarshal(lineBytes, &temp); err != nil {
			break
		}
		tx := NewTransaction(temp.Date, temp.Payee, temp.Narration)
		if temp.Flag != "" {
			tx.Flag = temp.Flag
		}
		tx.Tags, tx.Links = temp.Tags, temp.Links
		for _, p := range temp.Postings {
			tx.Postings = append(tx.Postings, Posting{Account: p.Account, Units: p.Units, Cost: p.Cost, Price: p.Price, Flag: p.Flag})
		}
		d = tx
	default:
		err = fmt.Errorf("unknown directive: %q", identifier.Kind)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// EncodeLedger writes the ledger in its canonical JSONL form: one directive
// per line, in chronological order, with a fixed key order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	bw := bufio.NewWriter(w)
	for d := range l.Directives() {
		b, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode %s directive of %s: %w", d.What(), d.When(), err)
		}
		bw.Write(b)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// LoadLedger reads a ledger file. The ledger is named after the file, without
// its extension.
//
// A missing file is reported with an error wrapping fs.ErrNotExist.
func LoadLedger(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}
	defer f.Close()

	ledger, err := DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", path, err)
	}
	base := filepath.Base(path)
	ledger.name = strings.TrimSuffix(base, filepath.Ext(base))
	return ledger, nil
}
