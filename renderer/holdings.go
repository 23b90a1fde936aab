package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/folio"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// HoldingsMarkdown renders the holdings table: one row per account with its
// value, cost and gain in every target currency, and a total row.
func HoldingsMarkdown(h *folio.Holdings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Holdings (%s Value)", title(h.Valuation.String())))

	header := []string{"Account", "Holdings"}
	align := []md.TableAlignment{md.AlignLeft, md.AlignLeft}
	for _, cur := range h.Currencies {
		header = append(header, fmt.Sprintf("Value (%s)", cur), fmt.Sprintf("Cost (%s)", cur), fmt.Sprintf("Gain (%s)", cur))
		align = append(align, md.AlignRight, md.AlignRight, md.AlignRight)
	}

	var rows [][]string
	for _, account := range h.AccountNames() {
		holding := h.Accounts[account]
		row := []string{account, Amounts(holding.Units)}
		for _, cur := range h.Currencies {
			row = append(row,
				Number(holding.MarketValues[cur]),
				Number(holding.CostBasis[cur]),
				gain(holding.UnrealizedGains[cur], holding.GainRatio(cur)),
			)
		}
		rows = append(rows, row)
	}
	if len(h.Currencies) > 0 {
		total := []string{"**TOTAL**", ""}
		for _, cur := range h.Currencies {
			t := h.Totals[cur]
			total = append(total,
				"**"+Number(t.Market)+"**",
				"**"+Number(t.Cost)+"**",
				"**"+gain(t.Gain, t.GainRatio())+"**",
			)
		}
		rows = append(rows, total)
	}

	doc.Table(md.TableSet{Alignment: align, Header: header, Rows: rows})
	return doc.String()
}

// gain formats a gain and its ratio as "+450.00 (+10.0%)".
func gain(g, ratio decimal.Decimal) string {
	return fmt.Sprintf("%s%s (%s%s)", plus(g), Number(g), plus(ratio), Percent(ratio))
}

// plus returns "+" for a non negative number, its sign being printed otherwise.
func plus(d decimal.Decimal) string {
	if d.IsNegative() {
		return ""
	}
	return "+"
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
