package browser

import (
	"time"

	"github.com/go-rod/rod"
)

// WaitFramesStable waits until the page DOM and the DOM of every visible
// iframe below it stop changing for d. Frames that cannot be entered are
// skipped.
func WaitFramesStable(page *rod.Page, d time.Duration) error {
	if err := page.WaitDOMStable(d, 0); err != nil {
		return err
	}

	iframes, err := page.Elements("iframe")
	if err != nil {
		return nil
	}

	for _, iframe := range iframes {
		if visible, _ := iframe.Visible(); !visible {
			continue
		}

		frame, err := iframe.Frame()
		if err != nil {
			continue
		}

		if err := WaitFramesStable(frame, d); err != nil {
			return err
		}
	}

	return nil
}
