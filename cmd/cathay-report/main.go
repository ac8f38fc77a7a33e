// cathay-report logs into Cathay United Bank MyBank and prints the account
// balance and stock holdings.
//
// Usage:
//
//	cathay-report <id> <account> <password>
//
// CATHAY_ID, CATHAY_ACCOUNT and CATHAY_PASSWORD override the arguments. A
// .env file in the working directory is loaded first.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank"
	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank/cathay"
	"github.com/joho/godotenv"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = "Usage: cathay-report <id> <account> <password>"

// scraperFactory builds the scraper for a run. Tests swap it out.
type scraperFactory func(ctx context.Context, creds cathay.Credentials, opts ...cathay.Option) (bank.BankScraper, error)

func launchScraper(ctx context.Context, creds cathay.Credentials, opts ...cathay.Option) (bank.BankScraper, error) {
	s, err := cathay.NewCathayScraper(ctx, creds, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func main() {
	// A missing .env is fine, the environment and args still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.LookupEnv, os.Stdout, os.Stderr, launchScraper)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, lookup func(string) (string, bool), stdout, stderr io.Writer, newScraper scraperFactory) int {
	// No flag parsing: a password may well start with "-".
	creds, err := cathay.ResolveCredentials(args, lookup)
	if err != nil {
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	cfg, err := loadConfig(lookup)
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return exitError
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	opts, err := cfg.scraperOptions(logger)
	if err != nil {
		logger.Error("failed to load selectors", "err", err)
		return exitError
	}

	scraper, err := newScraper(ctx, creds, opts...)
	if err != nil {
		logger.Error("failed to start browser", "err", err)
		return exitError
	}
	defer func() {
		if err := scraper.Close(); err != nil {
			logger.Warn("failed to close browser", "err", err)
		}
	}()

	if _, err := scraper.Run(ctx, stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Error("interrupted", "err", err)
		} else {
			logger.Error("report failed", "err", err)
		}
		return exitError
	}

	return exitOK
}
