package bank

import (
	"errors"
	"fmt"
)

var (
	ErrUsage         = errors.New("usage error")
	ErrBrowserLaunch = errors.New("failed to launch browser")

	ErrElementNotFound = errors.New("element not found")
	ErrTimeout         = errors.New("operation timed out")

	ErrParsingFailed = errors.New("failed to parse bank response")
)

// ScraperError provides detailed error context
type ScraperError struct {
	BankCode  BankCode
	Operation string
	Cause     error
	Details   string
}

func (e *ScraperError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("[%s] %s failed: %v", e.BankCode, e.Operation, e.Cause)
	}
	return fmt.Sprintf("[%s] %s failed: %v - %s", e.BankCode, e.Operation, e.Cause, e.Details)
}

func (e *ScraperError) Unwrap() error {
	return e.Cause
}
