// sanitize-har removes sensitive data from HAR files before committing.
//
// Usage:
//
//	go run ./scripts/sanitize-har -bank=cathay -scenario=report-success
//	go run ./scripts/sanitize-har -input=recording.har.json -output=sanitized.har.json
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/testutil"
)

func main() {
	// Conventional path flags
	bankCode := flag.String("bank", "", "Bank code: cathay")
	scenario := flag.String("scenario", "", "Scenario name (e.g., report-success)")

	// Direct path flags
	inputPath := flag.String("input", "", "Input HAR file path")
	outputPath := flag.String("output", "", "Output HAR file path (defaults to input path)")

	dryRun := flag.Bool("dry-run", false, "Show what would be redacted without modifying")

	flag.Parse()

	var inPath, outPath string
	switch {
	case *bankCode != "" && *scenario != "":
		// internal/scraper/bank/{bank}/testdata/recordings/{scenario}.har.json
		inPath = filepath.Join("internal", "scraper", "bank", *bankCode, "testdata", "recordings", *scenario+".har.json")
		outPath = inPath
	case *inputPath != "":
		inPath = *inputPath
		outPath = *inputPath
		if *outputPath != "" {
			outPath = *outputPath
		}
	default:
		flag.Usage()
		os.Exit(1)
	}

	har, err := testutil.LoadHAR(inPath)
	if err != nil {
		fmt.Printf("Error loading HAR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d entries from %s\n", len(har.Entries), inPath)

	sanitized := testutil.SanitizeHAR(har)

	redactions := diff(har, sanitized)
	fmt.Printf("Redacted %d sensitive values\n", len(redactions))
	for _, r := range redactions {
		fmt.Println("  - " + r)
	}

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes written.")
		return
	}

	if err := testutil.SaveHAR(outPath, sanitized); err != nil {
		fmt.Printf("Error saving HAR: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sanitized HAR saved to: %s\n", outPath)
}

// diff describes every value SanitizeHAR changed.
func diff(original, sanitized *testutil.HARLog) []string {
	var out []string

	for i, orig := range original.Entries {
		san := sanitized.Entries[i]
		where := fmt.Sprintf("entry %d %s %s", i+1, orig.Request.Method, truncateURL(orig.Request.URL))

		if orig.Request.URL != san.Request.URL {
			out = append(out, where+": URL query")
		}
		for j, h := range orig.Request.Headers {
			if h.Value != san.Request.Headers[j].Value {
				out = append(out, fmt.Sprintf("%s: request header %q", where, h.Name))
			}
		}
		if orig.Request.PostData != nil && orig.Request.PostData.Text != san.Request.PostData.Text {
			out = append(out, where+": request body")
		}
		for j, h := range orig.Response.Headers {
			if h.Value != san.Response.Headers[j].Value {
				out = append(out, fmt.Sprintf("%s: response header %q", where, h.Name))
			}
		}
		if orig.Response.Content.Text != san.Response.Content.Text {
			out = append(out, where+": response body")
		}
	}

	return out
}

func truncateURL(url string) string {
	if len(url) > 80 {
		return url[:77] + "..."
	}
	return url
}
