// capture-fixtures opens a visible browser and saves the HTML and a
// screenshot of each MyBank page you navigate to. The HTML files become the
// parser fixtures under internal/scraper/bank/{bank}/testdata/fixtures.
//
// Usage:
//
//	go run ./scripts/capture-fixtures -bank=cathay
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank/cathay"
	"github.com/grez-lucas/cathay-scraper/internal/scraper/browser"
	"github.com/joho/godotenv"
)

// Pages to capture for each bank
var capturePages = map[string][]PageCapture{
	"cathay": {
		{Name: "login_page", Instructions: "Open the login page (don't login yet)"},
		{Name: "login_error", Instructions: "Enter INVALID credentials and submit"},
		{Name: "overview", Instructions: "Login with VALID credentials, wait for the account overview"},
		{Name: "overview_fund", Instructions: "Click the fund/stock tab (#tabFUND)"},
		{Name: "holdings", Instructions: "Open the stock inquiry page (證券庫存)"},
		{Name: "logout", Instructions: "Logout of the page before quitting (or skip)"},
	},
}

var startURLs = map[string]string{
	"cathay": cathay.LoginURL,
}

type PageCapture struct {
	Name         string
	Instructions string
}

func main() {
	bankCode := flag.String("bank", "", "Bank code: cathay")
	outputDir := flag.String("output", "", "Output directory (default: internal/scraper/bank/{bank}/testdata/fixtures)")
	flag.Parse()

	pages, ok := capturePages[*bankCode]
	if !ok {
		fmt.Println("Usage: go run ./scripts/capture-fixtures -bank=cathay")
		os.Exit(1)
	}

	// CATHAY_CHROME_BIN may live in .env
	_ = godotenv.Load()

	outDir := *outputDir
	if outDir == "" {
		outDir = filepath.Join("internal", "scraper", "bank", *bankCode, "testdata", "fixtures")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("================================================================")
	fmt.Printf("  FIXTURE CAPTURE: %s\n", strings.ToUpper(*bankCode))
	fmt.Printf("  Output: %s\n", outDir)
	fmt.Println("================================================================")
	fmt.Println()

	ctx := context.Background()
	session, err := browser.Launch(ctx, browser.LaunchOptions{
		Headless: false,
		Bin:      os.Getenv("CATHAY_CHROME_BIN"),
	})
	if err != nil {
		fmt.Printf("Error launching browser: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = session.Close() }()

	if err := session.Page.Navigate(ctx, startURLs[*bankCode], cathay.DefaultPageTimeout); err != nil {
		fmt.Printf("Warning: could not open %s: %v\n", startURLs[*bankCode], err)
	}

	page := session.Page.Raw()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Instructions:")
	fmt.Println("   - Follow the prompts below in the browser window")
	fmt.Println("   - Press ENTER after completing each step")
	fmt.Println("   - Type 'skip' to skip a page, 'quit' to exit")
	fmt.Println()

	for _, capture := range pages {
		fmt.Println("----------------------------------------------------------------")
		fmt.Printf("Capturing: %s.html\n", capture.Name)
		fmt.Printf("  -> %s\n", capture.Instructions)
		fmt.Print("  Press ENTER when ready (or 'skip'/'quit'): ")

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))

		if input == "quit" {
			break
		}
		if input == "skip" {
			fmt.Printf("  Skipped %s\n\n", capture.Name)
			continue
		}

		if err := browser.WaitFramesStable(page, time.Second); err != nil {
			fmt.Printf("  Warning: page did not settle: %v\n", err)
		}

		screenshotPath := filepath.Join(outDir, capture.Name+".png")
		if buf, err := page.Screenshot(true, nil); err != nil {
			fmt.Printf("  Warning: screenshot failed: %v\n", err)
		} else if err := os.WriteFile(screenshotPath, buf, 0o644); err != nil {
			fmt.Printf("  Warning: saving screenshot: %v\n", err)
		} else {
			fmt.Printf("  Screenshot: %s\n", screenshotPath)
		}

		html, err := page.HTML()
		if err != nil {
			fmt.Printf("  Error capturing HTML: %v\n\n", err)
			continue
		}

		htmlPath := filepath.Join(outDir, capture.Name+".html")
		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			fmt.Printf("  Error saving HTML: %v\n\n", err)
			continue
		}

		pageURL := ""
		if info, err := page.Info(); err == nil {
			pageURL = info.URL
		}
		fmt.Printf("  Saved: %s\n", htmlPath)
		fmt.Printf("  URL: %s\n", pageURL)
		if capture.Name == "holdings" {
			checkHoldings(ctx, session.Page)
		}
		fmt.Println()
	}

	saveMetadata(outDir, *bankCode)

	fmt.Println("================================================================")
	fmt.Println("Capture complete!")
	fmt.Println()
	fmt.Println("IMPORTANT: Sanitize sensitive data before committing!")
	fmt.Println("   Run: go run ./scripts/sanitize-fixtures -bank=" + *bankCode)
	fmt.Println("================================================================")
}

// checkHoldings tells whether the captured holdings table still parses.
func checkHoldings(ctx context.Context, page browser.Page) {
	table := cathay.DefaultSelectors().HoldingsTable

	html, err := page.HTML(ctx, table)
	if err != nil {
		fmt.Printf("  Warning: holdings table %s not found: %v\n", table, err)
		return
	}

	holdings, err := cathay.ParseHoldings(html)
	if err != nil {
		fmt.Printf("  Warning: holdings table does not parse: %v\n", err)
		return
	}
	fmt.Printf("  Holdings table parses: %d row(s)\n", len(holdings))
}

func saveMetadata(outDir, bankCode string) {
	metadata := fmt.Sprintf(`# Fixture Metadata
bank: %s
captured_at: %s
captured_by: %s

## Files
See .html files in this directory.
Screenshots (.png) provided for visual reference.

## Notes
- Sanitize before committing (scripts/sanitize-fixtures)
- Re-capture when the portal markup changes; scripts/probe-selectors tells
  which selectors stopped matching
`, bankCode, time.Now().Format(time.RFC3339), os.Getenv("USER"))

	metaPath := filepath.Join(outDir, "README.md")
	if err := os.WriteFile(metaPath, []byte(metadata), 0o644); err != nil {
		fmt.Printf("Warning: saving metadata: %v\n", err)
	}
}
