package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// BalancesMarkdown renders balances as an account table, followed by the net
// position of the top level accounts.
func BalancesMarkdown(title string, b folio.Balances) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	rows := make([][]string, 0, len(b))
	for _, account := range b.Accounts() {
		rows = append(rows, []string{account, Amounts(b[account].Units)})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Balance"},
		Rows:      rows,
	})

	nets := b.NetPosition()
	if len(nets) > 0 {
		doc.H2("Net Position")
		exposed := false
		netRows := make([][]string, 0, len(nets))
		for _, cur := range slices.Sorted(maps.Keys(nets)) {
			net := nets[cur]
			status := "✓ Balanced"
			if !net.Balanced() {
				status = "Exposure: " + Amount(net.Diff(), cur)
				exposed = true
			}
			netRows = append(netRows, []string{cur, Amount(net.Debit, cur), Amount(net.Credit, cur), status})
		}
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
			Header:    []string{"Currency", "Debit", "Credit", "Status"},
			Rows:      netRows,
		})
		if exposed {
			doc.PlainText("_Note: perpetual positions in specific currencies are normal where exchanges occur at market prices._")
		}
	}
	return doc.String()
}

// ErrorsMarkdown renders ledger errors as a list, or nothing when there is none.
func ErrorsMarkdown(errs []error) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %d Ledger Errors\n\n", len(errs))
	for _, err := range errs {
		fmt.Fprintf(&b, "- %s\n", err)
	}
	return b.String()
}
