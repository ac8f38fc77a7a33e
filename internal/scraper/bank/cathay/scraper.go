package cathay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
	"github.com/grez-lucas/cathay-scraper/internal/scraper/browser"
)

const (
	LoginURL = "https://www.cathaybk.com.tw/mybank/"

	// DefaultElementTimeout bounds every wait for a page element.
	DefaultElementTimeout = 20 * time.Second
	// DefaultPageTimeout bounds loading the login page.
	DefaultPageTimeout = 120 * time.Second
)

type CathayScraper struct {
	page    browser.Page
	session *browser.Session
	creds   Credentials

	selectors      Selectors
	loginURL       string
	elementTimeout time.Duration
	pageTimeout    time.Duration
	launch         browser.LaunchOptions
	logger         *slog.Logger
}

var _ bank.BankScraper = (*CathayScraper)(nil)

type Option func(*CathayScraper)

func WithSelectors(sel Selectors) Option {
	return func(s *CathayScraper) { s.selectors = sel }
}

// WithTimeout sets the per-element wait timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *CathayScraper) { s.elementTimeout = d }
}

func WithPageTimeout(d time.Duration) Option {
	return func(s *CathayScraper) { s.pageTimeout = d }
}

func WithLoginURL(url string) Option {
	return func(s *CathayScraper) { s.loginURL = url }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *CathayScraper) { s.logger = logger }
}

// WithHeadless toggles headless mode for the launched browser.
func WithHeadless(headless bool) Option {
	return func(s *CathayScraper) { s.launch.Headless = headless }
}

// WithBrowserBin launches a specific browser binary.
func WithBrowserBin(bin string) Option {
	return func(s *CathayScraper) { s.launch.Bin = bin }
}

// WithHijacker serves every page request through h instead of the network.
func WithHijacker(h func(*rod.Hijack)) Option {
	return func(s *CathayScraper) { s.launch.Hijack = h }
}

// NewCathayScraper launches a browser and returns a scraper driving it.
// The caller must Close it.
func NewCathayScraper(ctx context.Context, creds Credentials, opts ...Option) (*CathayScraper, error) {
	s := newScraper(nil, creds, opts...)
	s.launch.LookupTimeout = s.elementTimeout

	s.logger.Debug("launching browser", "headless", s.launch.Headless)
	session, err := browser.Launch(ctx, s.launch)
	if err != nil {
		return nil, s.fail("Launch", fmt.Errorf("%w: %w", bank.ErrBrowserLaunch, err), "")
	}

	s.session = session
	s.page = session.Page
	return s, nil
}

// New returns a scraper driving an already open page.
func New(page browser.Page, creds Credentials, opts ...Option) *CathayScraper {
	return newScraper(page, creds, opts...)
}

func newScraper(page browser.Page, creds Credentials, opts ...Option) *CathayScraper {
	s := &CathayScraper{
		page:           page,
		creds:          creds,
		selectors:      DefaultSelectors(),
		loginURL:       LoginURL,
		elementTimeout: DefaultElementTimeout,
		pageTimeout:    DefaultPageTimeout,
		launch:         browser.LaunchOptions{Headless: true},
		logger:         slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run logs in, prints the summary and holdings to out line by line, then
// logs out. It stops at the first failed step.
func (s *CathayScraper) Run(ctx context.Context, out io.Writer) (*bank.Report, error) {
	p := NewPrinter(out)

	if err := s.Login(ctx, s.creds); err != nil {
		return nil, err
	}

	report, err := s.FetchSummary(ctx, p)
	if err != nil {
		return nil, err
	}

	report.Holdings, err = s.FetchHoldings(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.Logout(ctx); err != nil {
		return nil, err
	}

	return report, nil
}

// Login fills the three login fields by script and submits the form. A
// rejected login is only noticed when the next step's wait times out.
func (s *CathayScraper) Login(ctx context.Context, creds Credentials) error {
	const op = "Login"

	s.logger.Debug("opening login page", "url", s.loginURL, "credentials", creds)
	if err := s.page.Navigate(ctx, s.loginURL, s.pageTimeout); err != nil {
		return s.fail(op, err, s.loginURL)
	}

	fields := []struct {
		sel   browser.Selector
		value string
	}{
		{s.selectors.CustID, creds.ID},
		{s.selectors.UserID, creds.Account},
		{s.selectors.Password, creds.Password},
	}

	for _, f := range fields {
		if err := s.page.WaitVisible(ctx, f.sel, s.elementTimeout); err != nil {
			return s.fail(op, err, f.sel.String())
		}
		if err := s.page.SetValue(ctx, f.sel, f.value); err != nil {
			return s.fail(op, err, f.sel.String())
		}
	}

	if err := s.press(ctx, s.selectors.LoginButton); err != nil {
		return s.fail(op, err, s.selectors.LoginButton.String())
	}

	s.logger.Debug("login submitted")
	return nil
}

// FetchSummary reads the account number, the available cash and the stock
// market value, printing each as soon as it is read, then opens the stock
// inquiry page.
func (s *CathayScraper) FetchSummary(ctx context.Context, p *Printer) (*bank.Report, error) {
	const op = "FetchSummary"

	report := &bank.Report{BankName: BankName}

	account, err := s.readVisible(ctx, s.selectors.AccountLink)
	if err != nil {
		return nil, s.fail(op, err, s.selectors.AccountLink.String())
	}
	report.Account = account
	if err := p.Account(account); err != nil {
		return nil, err
	}

	cash, err := s.readVisible(ctx, s.selectors.CashBalance)
	if err != nil {
		return nil, s.fail(op, err, s.selectors.CashBalance.String())
	}
	report.CashBalance = cash
	if err := p.CashBalance(cash); err != nil {
		return nil, err
	}

	if err := s.press(ctx, s.selectors.FundTab); err != nil {
		return nil, s.fail(op, err, s.selectors.FundTab.String())
	}

	stockValue, err := s.readVisible(ctx, s.selectors.FundBalance)
	if err != nil {
		return nil, s.fail(op, err, s.selectors.FundBalance.String())
	}
	report.StockValue = stockValue
	if err := p.StockValue(stockValue); err != nil {
		return nil, err
	}

	s.logger.Debug("opening stock inquiry")
	if err := browser.ClickNow(ctx, s.page, s.selectors.StockMenu); err != nil {
		return nil, s.fail(op, err, s.selectors.StockMenu.String())
	}

	return report, nil
}

// FetchHoldings waits for the holdings table and prints one line per row as
// each row is read. A short row stops it after the rows before it were
// printed.
func (s *CathayScraper) FetchHoldings(ctx context.Context, p *Printer) ([]bank.Holding, error) {
	const op = "FetchHoldings"
	table := s.selectors.HoldingsTable

	if err := s.page.WaitPresent(ctx, table, s.elementTimeout); err != nil {
		return nil, s.fail(op, err, table.String())
	}

	rows, err := s.page.TableRows(ctx, table)
	if err != nil {
		return nil, s.fail(op, err, table.String())
	}

	holdings, err := ParseHoldingRows(rows, p.Holding)
	if err != nil {
		if errors.Is(err, bank.ErrParsingFailed) {
			return nil, s.fail(op, err, table.String())
		}
		return nil, err
	}

	s.logger.Debug("holdings parsed", "count", len(holdings))
	return holdings, nil
}

func (s *CathayScraper) Logout(ctx context.Context) error {
	if err := s.press(ctx, s.selectors.LogoutLink); err != nil {
		return s.fail("Logout", err, s.selectors.LogoutLink.String())
	}
	s.logger.Debug("logged out")
	return nil
}

// Close shuts down the browser launched by NewCathayScraper. It is a no-op
// for scrapers built with New.
func (s *CathayScraper) Close() error {
	if s.session == nil {
		return nil
	}
	err := s.session.Close()
	s.session = nil
	return err
}

func (s *CathayScraper) readVisible(ctx context.Context, sel browser.Selector) (string, error) {
	if err := s.page.WaitVisible(ctx, sel, s.elementTimeout); err != nil {
		return "", err
	}
	return s.page.Text(ctx, sel)
}

func (s *CathayScraper) press(ctx context.Context, sel browser.Selector) error {
	if err := s.page.WaitClickable(ctx, sel, s.elementTimeout); err != nil {
		return err
	}
	return s.page.Click(ctx, sel)
}

func (s *CathayScraper) fail(op string, err error, details string) error {
	s.logger.Debug("step failed", "op", op, "details", details, "err", err)
	return &bank.ScraperError{
		BankCode:  bank.BankCathay,
		Operation: op,
		Cause:     classify(err),
		Details:   details,
	}
}

// classify maps driver errors onto the bank sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, bank.ErrTimeout), errors.Is(err, bank.ErrElementNotFound):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", bank.ErrTimeout, err)
	case errors.Is(err, browser.ErrScriptFailed):
		return fmt.Errorf("%w: %w", bank.ErrElementNotFound, err)
	default:
		return err
	}
}
