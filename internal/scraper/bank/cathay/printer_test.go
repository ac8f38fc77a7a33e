package cathay

import (
	"bytes"
	"errors"
	"testing"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_Report(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	require.NoError(t, p.Account("001-123-456789"))
	require.NoError(t, p.CashBalance("9,999"))
	require.NoError(t, p.StockValue("9,999"))
	require.NoError(t, p.Holding(bank.Holding{
		Name:       "Example Corp US",
		Quantity:   "10",
		CostValue:  "USD 100 USD 110",
		ProfitLoss: "+USD 10 +10%",
	}))

	want := "國泰網路銀行\n" +
		"銀行帳戶:001-123-456789\n" +
		"可用現金: 9,999\n" +
		"股票市值: 9,999\n" +
		"\n" +
		"股票明細\n" +
		"\n" +
		"股票名稱: Example Corp US, 目前庫存: 10, 庫存成本現值: USD 100 USD 110, 損益報酬率: +USD 10 +10%\n"
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestPrinter_StopsAfterFirstWriteError(t *testing.T) {
	w := &failingWriter{}
	p := NewPrinter(w)

	err := p.Account("x")
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")

	assert.Equal(t, err, p.CashBalance("y"))
	assert.Equal(t, 1, w.calls)
}
