package bank

// Report is the scraped portfolio summary. Amounts are kept exactly as the
// portal renders them, currency symbols included.
type Report struct {
	BankName    string
	Account     string
	CashBalance string
	StockValue  string
	Holdings    []Holding
}

// Holding is one row of the stock holdings table.
type Holding struct {
	Name       string
	Quantity   string
	CostValue  string // cost and current value, e.g. "USD 100 USD 110"
	ProfitLoss string // amount and rate, e.g. "+USD 10 +10%"
}
