// Package bank defines the common structs and logic used throughout bank
// implementations.
package bank

import (
	"context"
	"io"
)

type BankScraper interface {
	// Run logs in, writes the report to out as each value is read, and logs out.
	Run(ctx context.Context, out io.Writer) (*Report, error)

	// Close releases the browser session.
	Close() error
}

type BankCode string

const (
	BankCathay BankCode = "CATHAY"
)
