// probe-selectors opens a visible browser and, on each page you navigate
// to, reports which of the scraper's selectors are present and visible. Run
// it after the portal changes to find the selectors that need updating.
//
// Usage:
//
//	go run ./scripts/probe-selectors
//	go run ./scripts/probe-selectors -selectors=selectors.yaml
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank/cathay"
	"github.com/grez-lucas/cathay-scraper/internal/scraper/browser"
	"github.com/joho/godotenv"
)

const probeTimeout = 500 * time.Millisecond

var pages = []struct {
	Name         string
	Instructions string
}{
	{"Login page", "Wait for the login form to render (don't log in yet)"},
	{"Overview", "Log in with valid credentials, wait for the account overview"},
	{"Overview (fund tab)", "Click the fund/stock tab"},
	{"Stock inquiry", "Open the stock inquiry page (證券庫存)"},
}

func main() {
	selectorsFile := flag.String("selectors", "", "YAML selector overrides (default: built-in selectors)")
	flag.Parse()

	_ = godotenv.Load()

	sel := cathay.DefaultSelectors()
	if *selectorsFile != "" {
		var err error
		sel, err = cathay.LoadSelectors(*selectorsFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	session, err := browser.Launch(ctx, browser.LaunchOptions{
		Headless:      false,
		Bin:           os.Getenv("CATHAY_CHROME_BIN"),
		LookupTimeout: probeTimeout,
	})
	if err != nil {
		fmt.Printf("Error launching browser: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = session.Close() }()

	page := session.Page
	if err := page.Navigate(ctx, cathay.LoginURL, cathay.DefaultPageTimeout); err != nil {
		fmt.Printf("Warning: could not open %s: %v\n", cathay.LoginURL, err)
	}

	reader := bufio.NewReader(os.Stdin)

	for _, pg := range pages {
		fmt.Println("----------------------------------------------------------------")
		fmt.Printf("PAGE: %s\n", pg.Name)
		fmt.Printf("  -> %s\n", pg.Instructions)
		fmt.Print("  Press ENTER when ready (or 'skip'/'quit'): ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))

		if input == "quit" {
			break
		}
		if input == "skip" {
			fmt.Printf("  Skipped.\n\n")
			continue
		}

		if err := browser.WaitFramesStable(page.Raw(), 500*time.Millisecond); err != nil {
			fmt.Printf("  Warning: page did not settle: %v\n", err)
		}

		fmt.Println()
		for _, ns := range sel.All() {
			fmt.Printf("  %-8s %-16s %s\n", probe(ctx, page, ns.Selector), ns.Name, ns.Selector)
		}
		fmt.Println()
	}
}

func probe(ctx context.Context, page browser.Page, sel browser.Selector) string {
	if err := page.WaitPresent(ctx, sel, probeTimeout); err != nil {
		return "-"
	}
	if err := page.WaitVisible(ctx, sel, probeTimeout); err != nil {
		return "hidden"
	}
	return "VISIBLE"
}
