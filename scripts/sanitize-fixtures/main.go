// sanitize-fixtures redacts personal data from captured HTML fixtures.
//
// Usage:
//
//	go run ./scripts/sanitize-fixtures -bank=cathay [-dry-run]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var sanitizePatterns = []struct {
	Pattern     *regexp.Regexp
	Replacement string
	Description string
}{
	// Taiwan national ID: one letter, 1 or 2, eight digits
	{
		regexp.MustCompile(`\b[A-Z][12]\d{8}\b`),
		`A123456789`,
		"National ID",
	},

	// Cathay deposit account, with or without dashes (e.g. 001-123-456789)
	{
		regexp.MustCompile(`\b\d{3}-?\d{3}-?\d{6}\b`),
		`000-000-000000`,
		"Account number",
	},

	// Greeting with the customer name (e.g. 王小明 您好)
	{
		regexp.MustCompile(`[\p{Han}]{2,4}(\s*)(您好|先生|小姐)`),
		"王大明$1$2",
		"Customer name",
	},

	// Session tokens / CSRF tokens
	{
		regexp.MustCompile(`(?i)(token|csrf|session|__RequestVerificationToken)["\s:=]+["']?[a-zA-Z0-9_\-+/=]{20,}["']?`),
		`$1="REDACTED"`,
		"Token",
	},

	// Cookies in HTML
	{
		regexp.MustCompile(`(?i)document\.cookie\s*=\s*["'][^"']+["']`),
		`document.cookie="REDACTED"`,
		"Cookie",
	},
}

func main() {
	bankCode := flag.String("bank", "", "Bank code: cathay")
	dryRun := flag.Bool("dry-run", false, "Show what would be changed without modifying files")
	flag.Parse()

	if *bankCode == "" {
		fmt.Println("Usage: go run ./scripts/sanitize-fixtures -bank=cathay [-dry-run]")
		os.Exit(1)
	}

	fixturesDir := filepath.Join("internal", "scraper", "bank", *bankCode, "testdata", "fixtures")

	files, err := filepath.Glob(filepath.Join(fixturesDir, "*.html"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No HTML files found in %s\n", fixturesDir)
		os.Exit(1)
	}

	fmt.Printf("Sanitizing fixtures for %s\n", *bankCode)
	if *dryRun {
		fmt.Println("    (DRY RUN - no files will be modified)")
	}
	fmt.Println()

	for _, file := range files {
		sanitizeFile(file, *dryRun)
	}

	fmt.Println()
	fmt.Println("Sanitization complete!")
	if *dryRun {
		fmt.Println("    Run without -dry-run to apply changes")
	}
}

func sanitizeFile(path string, dryRun bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", path, err)
		return
	}

	sanitized := string(content)
	var changes []string

	for _, p := range sanitizePatterns {
		if n := len(p.Pattern.FindAllStringIndex(sanitized, -1)); n > 0 {
			sanitized = p.Pattern.ReplaceAllString(sanitized, p.Replacement)
			changes = append(changes, fmt.Sprintf("  - %s: %d matched", p.Description, n))
		}
	}

	filename := filepath.Base(path)
	if len(changes) == 0 {
		fmt.Printf("%s: No sensitive data found\n", filename)
		return
	}

	fmt.Printf("%s: Found sensitive data\n", filename)
	for _, change := range changes {
		fmt.Println(change)
	}

	if dryRun {
		return
	}
	if err := os.WriteFile(path, []byte(sanitized), 0o644); err != nil {
		fmt.Printf("    Error writing %s: %v\n", path, err)
		return
	}
	fmt.Println("    Sanitized and saved")
}
