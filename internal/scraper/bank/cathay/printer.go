package cathay

import (
	"fmt"
	"io"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
)

// BankName heads every report.
const BankName = "國泰網路銀行"

// Printer writes report lines as soon as each value is scraped, so a run
// that fails halfway still leaves the lines it got. After the first write
// error every call returns that error.
type Printer struct {
	w   io.Writer
	err error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Account(account string) error {
	return p.printf("%s\n銀行帳戶:%s\n", BankName, account)
}

func (p *Printer) CashBalance(balance string) error {
	return p.printf("可用現金: %s\n", balance)
}

// StockValue also opens the holdings section.
func (p *Printer) StockValue(value string) error {
	return p.printf("股票市值: %s\n\n股票明細\n\n", value)
}

func (p *Printer) Holding(h bank.Holding) error {
	return p.printf("股票名稱: %s, 目前庫存: %s, 庫存成本現值: %s, 損益報酬率: %s\n",
		h.Name, h.Quantity, h.CostValue, h.ProfitLoss)
}

func (p *Printer) printf(format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	if _, err := fmt.Fprintf(p.w, format, args...); err != nil {
		p.err = fmt.Errorf("write report: %w", err)
	}
	return p.err
}
