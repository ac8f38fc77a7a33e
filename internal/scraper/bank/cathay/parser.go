// Package cathay defines the scraper and parsing logic to process the
// Cathay United Bank (國泰世華) MyBank portal.
package cathay

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
)

// HoldingColumns is the number of cells read from each holdings row.
const HoldingColumns = 4

// hiddenContent is left out of cell text, the way the browser's rendered
// text leaves it out.
const hiddenContent = `script, style, [hidden], [style*="display:none"], [style*="display: none"], [style*="visibility:hidden"], [style*="visibility: hidden"]`

// ParseHoldingRows turns the cell text of each table row into holdings, in
// row order. Rows without cells (headers, spacers) are skipped. each, when
// not nil, is called with every holding as soon as its row is parsed.
//
// Parsing stops at the first row with fewer than HoldingColumns cells
// (ErrParsingFailed) or the first error from each. The holdings parsed
// before that point are returned along with the error.
func ParseHoldingRows(rows [][]string, each func(bank.Holding) error) ([]bank.Holding, error) {
	var holdings []bank.Holding

	for i, cells := range rows {
		if len(cells) == 0 {
			continue
		}

		if len(cells) < HoldingColumns {
			return holdings, fmt.Errorf("%w: row %d has %d cell(s), want %d", bank.ErrParsingFailed, i, len(cells), HoldingColumns)
		}

		h := bank.Holding{
			Name:       singleLine(cells[0]),
			Quantity:   singleLine(cells[1]),
			CostValue:  singleLine(cells[2]),
			ProfitLoss: singleLine(cells[3]),
		}

		if each != nil {
			if err := each(h); err != nil {
				return holdings, err
			}
		}
		holdings = append(holdings, h)
	}

	return holdings, nil
}

// ParseHoldings reads the stock holdings from a captured table.
func ParseHoldings(html string) ([]bank.Holding, error) {
	rows, err := tableRows(html)
	if err != nil {
		return nil, err
	}
	return ParseHoldingRows(rows, nil)
}

// tableRows extracts the text of the td cells of every tr in html.
func tableRows(html string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bank.ErrParsingFailed, err)
	}

	var rows [][]string
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellText(cell))
		})
		rows = append(rows, cells)
	})

	return rows, nil
}

// cellText approximates the rendered text of a cell: hidden content is
// dropped and <br> and block boundaries become line breaks.
func cellText(cell *goquery.Selection) string {
	cell.Find(hiddenContent).Remove()
	cell.Find("br").ReplaceWithHtml("\n")
	cell.Find("div, p").AppendHtml("\n")

	return cell.Text()
}

// singleLine collapses every run of whitespace, line breaks included, into a
// single space and trims the result.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
