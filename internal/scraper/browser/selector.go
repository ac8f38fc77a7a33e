// Package browser provides utilities for browser automation with Rod.
package browser

import (
	"fmt"
	"strings"
)

// By tells how a Selector value is matched against the DOM.
type By int

const (
	ByCSS By = iota
	ByID
	ByXPath
)

var byPrefixes = map[By]string{
	ByCSS:   "css",
	ByID:    "id",
	ByXPath: "xpath",
}

// Selector locates one element on a page.
type Selector struct {
	By    By
	Value string
}

func CSS(query string) Selector  { return Selector{By: ByCSS, Value: query} }
func ID(id string) Selector      { return Selector{By: ByID, Value: id} }
func XPath(expr string) Selector { return Selector{By: ByXPath, Value: expr} }

// String renders the selector in the "by:value" form accepted by ParseSelector.
func (s Selector) String() string {
	return byPrefixes[s.By] + ":" + s.Value
}

// ParseSelector parses "id:CustID", "xpath://a[@id='x']" or "css:table tr".
// A value without a known prefix is treated as CSS.
func ParseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}

	prefix, value, found := strings.Cut(raw, ":")
	if found {
		for by, p := range byPrefixes {
			if strings.EqualFold(prefix, p) {
				if value == "" {
					return Selector{}, fmt.Errorf("selector %q has no value", raw)
				}
				return Selector{By: by, Value: value}, nil
			}
		}
	}

	return CSS(raw), nil
}

// UnmarshalYAML lets selectors be written as plain strings in config files.
func (s *Selector) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}

	parsed, err := ParseSelector(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
