package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/bank/cathay"
)

// Developer settings read from the environment (or .env).
const (
	envHeadless  = "CATHAY_HEADLESS"
	envChromeBin = "CATHAY_CHROME_BIN"
	envSelectors = "CATHAY_SELECTORS"
	envLogLevel  = "CATHAY_LOG_LEVEL"
)

type config struct {
	Headless      bool
	ChromeBin     string
	SelectorsFile string
	LogLevel      slog.Level
}

func loadConfig(lookup func(string) (string, bool)) (config, error) {
	cfg := config{Headless: true, LogLevel: slog.LevelWarn}

	if v, ok := lookup(envHeadless); ok && v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", envHeadless, err)
		}
		cfg.Headless = headless
	}

	cfg.ChromeBin, _ = lookup(envChromeBin)
	cfg.SelectorsFile, _ = lookup(envSelectors)

	if v, ok := lookup(envLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return cfg, fmt.Errorf("%s: %w", envLogLevel, err)
		}
	}

	return cfg, nil
}

// scraperOptions turns the config into scraper options.
func (c config) scraperOptions(logger *slog.Logger) ([]cathay.Option, error) {
	opts := []cathay.Option{
		cathay.WithHeadless(c.Headless),
		cathay.WithLogger(logger),
	}

	if c.ChromeBin != "" {
		opts = append(opts, cathay.WithBrowserBin(c.ChromeBin))
	}

	if c.SelectorsFile != "" {
		sel, err := cathay.LoadSelectors(c.SelectorsFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cathay.WithSelectors(sel))
	}

	return opts, nil
}
