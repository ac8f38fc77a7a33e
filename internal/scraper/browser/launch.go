package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// LaunchOptions configures the browser process started by Launch.
type LaunchOptions struct {
	// Headless runs without a window. Visible mode starts maximized instead
	// of using the fixed window size.
	Headless bool
	// Bin overrides the browser binary; empty lets rod pick or download one.
	Bin string
	// LookupTimeout bounds element lookups for non-wait page operations.
	LookupTimeout time.Duration
	// Hijack, when set, serves every request of the page (HAR replay).
	Hijack func(*rod.Hijack)
}

// Session owns the browser process and the single stealth page used by a run.
type Session struct {
	Page *RodPage

	launcher *launcher.Launcher
	browser  *rod.Browser
	router   *rod.HijackRouter
}

// Launch starts a browser with automation fingerprints suppressed and opens
// one stealth page.
func Launch(ctx context.Context, opts LaunchOptions) (*Session, error) {
	l := launcher.New().
		Context(ctx).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled")

	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	if opts.Headless {
		l = l.Headless(true).Set("window-size", "1920,1080")
	} else {
		l = l.Headless(false).Set("start-maximized")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	s := &Session{launcher: l, browser: browser}

	page, err := stealth.Page(browser)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open stealth page: %w", err)
	}

	if opts.Hijack != nil {
		s.router = page.HijackRequests()
		s.router.MustAdd("*", opts.Hijack)
		go s.router.Run()
	}

	lookup := opts.LookupTimeout
	if lookup <= 0 {
		lookup = 20 * time.Second
	}
	s.Page = NewRodPage(page, lookup)

	return s, nil
}

// Close shuts the browser down and removes its temporary profile.
func (s *Session) Close() error {
	if s.router != nil {
		_ = s.router.Stop()
	}

	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()

	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}
