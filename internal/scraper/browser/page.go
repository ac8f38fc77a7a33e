package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// ErrScriptFailed is returned when an in-page script reports it could not do
// its job (e.g. the element it targets does not exist).
var ErrScriptFailed = errors.New("in-page script reported failure")

// Page is the set of page capabilities a bank scraper needs. Every element
// interaction goes through in-page script calls rather than simulated input.
type Page interface {
	// Navigate loads url and waits for the load event.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// WaitVisible blocks until sel is rendered and visible.
	WaitVisible(ctx context.Context, sel Selector, timeout time.Duration) error
	// WaitClickable blocks until sel is visible and not disabled.
	WaitClickable(ctx context.Context, sel Selector, timeout time.Duration) error
	// WaitPresent blocks until sel is attached to the DOM.
	WaitPresent(ctx context.Context, sel Selector, timeout time.Duration) error

	// SetValue assigns the element's value property directly.
	SetValue(ctx context.Context, sel Selector, value string) error
	// Click calls the element's click() method.
	Click(ctx context.Context, sel Selector) error
	// Text returns the rendered text of the element.
	Text(ctx context.Context, sel Selector) (string, error)
	// HTML returns the outer HTML of the element.
	HTML(ctx context.Context, sel Selector) (string, error)
	// TableRows returns, for every tr under sel, the rendered text of its td
	// cells. Rows without td cells come back empty.
	TableRows(ctx context.Context, sel Selector) ([][]string, error)

	// Script runs a page-level function and returns its boolean result.
	Script(ctx context.Context, js string, args ...any) (bool, error)
}

// WaitError describes a wait condition that was not met in time.
type WaitError struct {
	Selector  Selector
	Condition string
	Err       error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait %s %s: %v", e.Condition, e.Selector, e.Err)
}

func (e *WaitError) Unwrap() error {
	return e.Err
}

// RodPage implements Page on top of a rod page.
type RodPage struct {
	page *rod.Page

	// lookupTimeout bounds element lookups done by non-wait operations.
	lookupTimeout time.Duration
}

var _ Page = (*RodPage)(nil)

func NewRodPage(page *rod.Page, lookupTimeout time.Duration) *RodPage {
	return &RodPage{page: page, lookupTimeout: lookupTimeout}
}

// Raw exposes the underlying rod page for tooling that needs more than Page.
func (p *RodPage) Raw() *rod.Page {
	return p.page
}

func (p *RodPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load of %s: %w", url, err)
	}
	return nil
}

func (p *RodPage) WaitVisible(ctx context.Context, sel Selector, timeout time.Duration) error {
	return p.wait(ctx, sel, timeout, "visible", func(el *rod.Element) error {
		return el.WaitVisible()
	})
}

func (p *RodPage) WaitClickable(ctx context.Context, sel Selector, timeout time.Duration) error {
	return p.wait(ctx, sel, timeout, "clickable", func(el *rod.Element) error {
		if err := el.WaitVisible(); err != nil {
			return err
		}
		return el.WaitEnabled()
	})
}

func (p *RodPage) WaitPresent(ctx context.Context, sel Selector, timeout time.Duration) error {
	return p.wait(ctx, sel, timeout, "present", nil)
}

func (p *RodPage) SetValue(ctx context.Context, sel Selector, value string) error {
	return p.withElement(ctx, sel, func(el *rod.Element) error {
		_, err := el.Eval(`(v) => { this.value = v }`, value)
		return err
	})
}

func (p *RodPage) Click(ctx context.Context, sel Selector) error {
	return p.withElement(ctx, sel, func(el *rod.Element) error {
		_, err := el.Eval(`() => this.click()`)
		return err
	})
}

func (p *RodPage) Text(ctx context.Context, sel Selector) (string, error) {
	var text string
	err := p.withElement(ctx, sel, func(el *rod.Element) error {
		var err error
		text, err = el.Text()
		return err
	})
	return text, err
}

func (p *RodPage) HTML(ctx context.Context, sel Selector) (string, error) {
	var html string
	err := p.withElement(ctx, sel, func(el *rod.Element) error {
		var err error
		html, err = el.HTML()
		return err
	})
	return html, err
}

// tableRowsJS reads innerText so hidden cell content is left out.
const tableRowsJS = `() => Array.from(this.querySelectorAll('tr')).map(
	(tr) => Array.from(tr.querySelectorAll('td')).map((td) => td.innerText)
)`

func (p *RodPage) TableRows(ctx context.Context, sel Selector) ([][]string, error) {
	var rows [][]string
	err := p.withElement(ctx, sel, func(el *rod.Element) error {
		res, err := el.Eval(tableRowsJS)
		if err != nil {
			return err
		}
		return res.Value.Unmarshal(&rows)
	})
	return rows, err
}

func (p *RodPage) Script(ctx context.Context, js string, args ...any) (bool, error) {
	res, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return false, fmt.Errorf("eval script: %w", err)
	}
	return res.Value.Bool(), nil
}

// wait finds sel within timeout and then runs cond, still bound by timeout.
func (p *RodPage) wait(ctx context.Context, sel Selector, timeout time.Duration, condition string, cond func(*rod.Element) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	el, err := find(p.page.Context(ctx), sel)
	if err == nil && cond != nil {
		err = cond(el)
	}
	if err != nil {
		return &WaitError{Selector: sel, Condition: condition, Err: err}
	}
	return nil
}

func (p *RodPage) withElement(ctx context.Context, sel Selector, fn func(*rod.Element) error) error {
	ctx, cancel := context.WithTimeout(ctx, p.lookupTimeout)
	defer cancel()

	el, err := find(p.page.Context(ctx), sel)
	if err != nil {
		return &WaitError{Selector: sel, Condition: "present", Err: err}
	}
	if err := fn(el); err != nil {
		return fmt.Errorf("%s: %w", sel, err)
	}
	return nil
}

// find retries until the element exists or the page context is done.
func find(page *rod.Page, sel Selector) (*rod.Element, error) {
	switch sel.By {
	case ByXPath:
		return page.ElementX(sel.Value)
	case ByID:
		return page.Element(`[id="` + sel.Value + `"]`)
	default:
		return page.Element(sel.Value)
	}
}
