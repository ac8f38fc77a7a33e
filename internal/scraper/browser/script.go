package browser

import (
	"context"
	"fmt"
)

// clickNowJS clicks the first element matching (by, value) without waiting
// for it, and reports whether one existed.
const clickNowJS = `(by, value) => {
	let el = null;
	if (by === 'xpath') {
		el = document.evaluate(value, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	} else if (by === 'id') {
		el = document.getElementById(value);
	} else {
		el = document.querySelector(value);
	}
	if (!el) return false;
	el.click();
	return true;
}`

// ClickNow fires the click handler of sel immediately through an in-page
// script. It does not wait for sel to appear.
func ClickNow(ctx context.Context, p Page, sel Selector) error {
	ok, err := p.Script(ctx, clickNowJS, byPrefixes[sel.By], sel.Value)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no element matches %s", ErrScriptFailed, sel)
	}
	return nil
}
