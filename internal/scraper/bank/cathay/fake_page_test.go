package cathay

import (
	"context"
	"fmt"
	"time"

	"github.com/grez-lucas/cathay-scraper/internal/scraper/browser"
)

// fakeElement is one element of the fake DOM.
type fakeElement struct {
	text string
	html string
}

// fakePage is an in-memory browser.Page. Elements missing from the DOM make
// every wait fail the way a timed out rod wait does.
type fakePage struct {
	dom map[browser.Selector]fakeElement

	// scriptOK is what in-page scripts report back.
	scriptOK bool

	navigated []string
	pageWaits []time.Duration
	values    map[browser.Selector]string
	clicks    []browser.Selector
	scripts   [][]any
	waits     []time.Duration
}

var _ browser.Page = (*fakePage)(nil)

func newFakePage() *fakePage {
	return &fakePage{
		dom:      make(map[browser.Selector]fakeElement),
		values:   make(map[browser.Selector]string),
		scriptOK: true,
	}
}

// withDefaultDOM fills the page with the elements a successful run reads.
func (f *fakePage) withDefaultDOM(holdingsHTML string) *fakePage {
	sel := DefaultSelectors()
	for _, s := range []browser.Selector{sel.CustID, sel.UserID, sel.Password, sel.LoginButton, sel.FundTab, sel.LogoutLink} {
		f.dom[s] = fakeElement{}
	}
	f.dom[sel.AccountLink] = fakeElement{text: "001-123-456789"}
	f.dom[sel.CashBalance] = fakeElement{text: "9,999"}
	f.dom[sel.FundBalance] = fakeElement{text: "9,999"}
	f.dom[sel.HoldingsTable] = fakeElement{html: holdingsHTML}
	return f
}

func (f *fakePage) remove(sel browser.Selector) *fakePage {
	delete(f.dom, sel)
	return f
}

func (f *fakePage) Navigate(_ context.Context, url string, timeout time.Duration) error {
	f.navigated = append(f.navigated, url)
	f.pageWaits = append(f.pageWaits, timeout)
	return nil
}

func (f *fakePage) WaitVisible(ctx context.Context, sel browser.Selector, timeout time.Duration) error {
	return f.wait(ctx, sel, timeout, "visible")
}

func (f *fakePage) WaitClickable(ctx context.Context, sel browser.Selector, timeout time.Duration) error {
	return f.wait(ctx, sel, timeout, "clickable")
}

func (f *fakePage) WaitPresent(ctx context.Context, sel browser.Selector, timeout time.Duration) error {
	return f.wait(ctx, sel, timeout, "present")
}

func (f *fakePage) SetValue(_ context.Context, sel browser.Selector, value string) error {
	if _, ok := f.dom[sel]; !ok {
		return fmt.Errorf("set value: %s missing", sel)
	}
	f.values[sel] = value
	return nil
}

func (f *fakePage) Click(_ context.Context, sel browser.Selector) error {
	if _, ok := f.dom[sel]; !ok {
		return fmt.Errorf("click: %s missing", sel)
	}
	f.clicks = append(f.clicks, sel)
	return nil
}

func (f *fakePage) Text(_ context.Context, sel browser.Selector) (string, error) {
	el, ok := f.dom[sel]
	if !ok {
		return "", fmt.Errorf("text: %s missing", sel)
	}
	return el.text, nil
}

func (f *fakePage) HTML(_ context.Context, sel browser.Selector) (string, error) {
	el, ok := f.dom[sel]
	if !ok {
		return "", fmt.Errorf("html: %s missing", sel)
	}
	return el.html, nil
}

// TableRows reads the cells out of the element's html the way the fixture
// parser does.
func (f *fakePage) TableRows(_ context.Context, sel browser.Selector) ([][]string, error) {
	el, ok := f.dom[sel]
	if !ok {
		return nil, fmt.Errorf("table rows: %s missing", sel)
	}
	return tableRows(el.html)
}

func (f *fakePage) Script(_ context.Context, _ string, args ...any) (bool, error) {
	f.scripts = append(f.scripts, args)
	return f.scriptOK, nil
}

func (f *fakePage) wait(ctx context.Context, sel browser.Selector, timeout time.Duration, condition string) error {
	f.waits = append(f.waits, timeout)
	if err := ctx.Err(); err != nil {
		return &browser.WaitError{Selector: sel, Condition: condition, Err: err}
	}
	if _, ok := f.dom[sel]; !ok {
		return &browser.WaitError{Selector: sel, Condition: condition, Err: context.DeadlineExceeded}
	}
	return nil
}
