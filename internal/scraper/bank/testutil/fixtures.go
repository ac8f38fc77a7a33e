// Package testutil loads the captured HTML fixtures of each bank.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// LoadFixture reads an HTML fixture file for the given bank
func LoadFixture(t *testing.T, bankCode, name string) string {
	t.Helper()

	data, err := os.ReadFile(FixturePath(bankCode, name))
	if err != nil {
		t.Fatalf("Failed to load fixture %s/%s: %v", bankCode, name, err)
	}

	return string(data)
}

// FixturePath returns where the fixture name of bankCode lives:
// bank/{bankCode}/testdata/fixtures/{name}.html
func FixturePath(bankCode, name string) string {
	// Get path relative to this file
	_, filename, _, _ := runtime.Caller(0)
	baseDir := filepath.Dir(filepath.Dir(filename)) // up to bank/

	return filepath.Join(baseDir, bankCode, "testdata", "fixtures", name+".html")
}
