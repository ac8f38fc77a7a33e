package cathay

import (
	"fmt"
	"os"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/browser"
	"gopkg.in/yaml.v2"
)

// Selectors for the Cathay United Bank MyBank portal.
type Selectors struct {
	// Login page
	CustID      browser.Selector `yaml:"cust_id"`
	UserID      browser.Selector `yaml:"user_id"`
	Password    browser.Selector `yaml:"password"`
	LoginButton browser.Selector `yaml:"login_button"`

	// Overview page
	AccountLink browser.Selector `yaml:"account_link"`
	CashBalance browser.Selector `yaml:"cash_balance"`
	FundTab     browser.Selector `yaml:"fund_tab"`
	FundBalance browser.Selector `yaml:"fund_balance"`
	// StockMenu is clicked immediately by script, there is no wait before it.
	StockMenu browser.Selector `yaml:"stock_menu"`

	// Stock inquiry page
	HoldingsTable browser.Selector `yaml:"holdings_table"`

	// Header
	LogoutLink browser.Selector `yaml:"logout_link"`
}

// DefaultSelectors matches the portal markup at the time of writing.
func DefaultSelectors() Selectors {
	return Selectors{
		CustID:   browser.ID("CustID"),
		UserID:   browser.ID("UserIdKeyin"),
		Password: browser.ID("PasswordKeyin"),
		LoginButton: browser.XPath(
			"//button[@type='button' and @class='btn no-print btn-fill js-login btn btn-fill w-100 u-pos-relative' and @onclick='NormalDataCheck()']",
		),

		AccountLink: browser.XPath("//a[contains(@onclick, 'AutoGoMenu') and @class='link u-fs-14']"),
		CashBalance: browser.ID("TD-balance"),
		FundTab:     browser.ID("tabFUND"),
		FundBalance: browser.ID("FUND-balance"),
		StockMenu:   browser.CSS(`a[href="javascript:void(0)"][onclick="AutoGoMenu('SAcctInq','S0404_StockInq')"]`),

		HoldingsTable: browser.ID("SubStocks"),

		LogoutLink: browser.XPath("//a[@onclick='IsNeedCheckReconcil()']"),
	}
}

// LoadSelectors reads a YAML file of selector overrides on top of
// DefaultSelectors. Keys missing from the file keep their default.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("read selectors file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &sel); err != nil {
		return sel, fmt.Errorf("parse selectors file %s: %w", path, err)
	}

	return sel, nil
}

// NamedSelector pairs a selector with its config key.
type NamedSelector struct {
	Name     string
	Selector browser.Selector
}

// All lists every selector in portal flow order.
func (s Selectors) All() []NamedSelector {
	return []NamedSelector{
		{"cust_id", s.CustID},
		{"user_id", s.UserID},
		{"password", s.Password},
		{"login_button", s.LoginButton},
		{"account_link", s.AccountLink},
		{"cash_balance", s.CashBalance},
		{"fund_tab", s.FundTab},
		{"fund_balance", s.FundBalance},
		{"stock_menu", s.StockMenu},
		{"holdings_table", s.HoldingsTable},
		{"logout_link", s.LogoutLink},
	}
}
