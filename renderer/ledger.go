package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
)

// AuditMarkdown renders the audit lines of a currency. When limited is true a
// note tells how to see every transaction.
func AuditMarkdown(currency string, lines []folio.AuditLine, limited bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Audit Report: " + currency)
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.Date.String(),
			l.Description,
			l.Account,
			Amount(l.Units.Number, l.Units.Currency),
			l.Basis(),
		})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Description", "Account", "Amount", "Basis/Price"},
		Rows:      rows,
	})
	if limited {
		doc.PlainText("_Showing the most recent transactions only. Use -all to see more._")
	}
	return doc.String()
}

// TransactionsMarkdown renders transactions, one row per posting.
func TransactionsMarkdown(txs []*folio.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transactions (%d)", len(txs)))
	var rows [][]string
	for _, tx := range txs {
		for i, p := range tx.Postings {
			date, desc := "", ""
			if i == 0 {
				date, desc = tx.Date.String(), tx.Description()
				if len(tx.Tags) > 0 {
					desc += " #" + strings.Join(tx.Tags, " #")
				}
			}
			units := ""
			if p.Units != nil {
				units = Amount(p.Units.Number, p.Units.Currency)
			}
			rows = append(rows, []string{date, desc, p.Account, units})
		}
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Date", "Description", "Account", "Amount"},
		Rows:      rows,
	})
	return doc.String()
}

// AccountsMarkdown renders the open accounts of a ledger.
func AccountsMarkdown(l *folio.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	var rows [][]string
	for o := range l.Opens() {
		rows = append(rows, []string{o.Account, o.Date.String(), strings.Join(o.Currencies, ", ")})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Account", "Opened", "Currencies"},
		Rows:      rows,
	})
	return doc.String()
}
