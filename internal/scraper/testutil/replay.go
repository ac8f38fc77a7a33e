package testutil

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const maxRedirects = 10

// Replayer serves recorded HTTP responses to a hijacked rod page.
type Replayer struct {
	// byURL indexes entries by full URL, byPath by URL without the query.
	// The first recorded entry wins for both.
	byURL  map[string]*HAREntry
	byPath map[string]*HAREntry

	// passthrough sends unmatched requests to the network instead of a 404.
	passthrough bool

	logger *slog.Logger
}

type ReplayerOption func(*Replayer)

// WithPassthrough allows unmatched requests to go to the real network.
func WithPassthrough(enabled bool) ReplayerOption {
	return func(r *Replayer) { r.passthrough = enabled }
}

// WithVerbose logs every matched and unmatched request to stderr.
func WithVerbose(enabled bool) ReplayerOption {
	return func(r *Replayer) {
		if enabled {
			r.logger = slog.Default().With("component", "replayer")
		}
	}
}

func NewReplayer(har *HARLog, opts ...ReplayerOption) *Replayer {
	r := &Replayer{
		byURL:  make(map[string]*HAREntry),
		byPath: make(map[string]*HAREntry),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(r)
	}

	for i := range har.Entries {
		entry := &har.Entries[i]
		if _, ok := r.byURL[entry.Request.URL]; !ok {
			r.byURL[entry.Request.URL] = entry
		}
		if key, ok := pathKey(entry.Request.URL); ok {
			if _, exists := r.byPath[key]; !exists {
				r.byPath[key] = entry
			}
		}
	}

	return r
}

// Middleware returns a rod hijack handler serving the recording.
func (r *Replayer) Middleware() func(*rod.Hijack) {
	return func(h *rod.Hijack) {
		reqURL := h.Request.URL().String()

		entry, ok := r.Lookup(reqURL)
		if !ok {
			r.logger.Info("no recording", "url", reqURL)
			if r.passthrough {
				_ = h.LoadResponse(http.DefaultClient, true)
				return
			}
			r.serveNotFound(h)
			return
		}

		entry = r.followRedirects(entry)
		r.logger.Info("replaying", "url", reqURL, "status", entry.Response.Status)
		r.serve(h, entry)
	}
}

// Lookup finds the recorded entry for a URL, falling back to a match that
// ignores the query string.
func (r *Replayer) Lookup(rawURL string) (*HAREntry, bool) {
	if entry, ok := r.byURL[rawURL]; ok {
		return entry, true
	}
	if key, ok := pathKey(rawURL); ok {
		entry, found := r.byPath[key]
		return entry, found
	}
	return nil, false
}

// followRedirects resolves a recorded 3xx chain to its final recorded entry.
// The chain stops at the first target missing from the recording.
func (r *Replayer) followRedirects(entry *HAREntry) *HAREntry {
	current := entry

	for range maxRedirects {
		if current.Response.Status < 300 || current.Response.Status >= 400 {
			return current
		}

		location, ok := header(current.Response.Headers, "Location")
		if !ok || location == "" {
			return current
		}

		target, found := r.Lookup(resolve(current.Request.URL, location))
		if !found {
			r.logger.Info("redirect target not recorded", "location", location)
			return current
		}
		current = target
	}

	return current
}

func (r *Replayer) serve(h *rod.Hijack, entry *HAREntry) {
	resp := entry.Response

	body := []byte(resp.Content.Text)
	if resp.Content.Encoding == "base64" {
		if decoded, err := base64.StdEncoding.DecodeString(resp.Content.Text); err == nil {
			body = decoded
		}
	}

	var headers []*proto.FetchHeaderEntry
	for _, hdr := range resp.Headers {
		switch strings.ToLower(hdr.Name) {
		case "content-encoding", "content-length", "location":
			continue
		}
		headers = append(headers, &proto.FetchHeaderEntry{Name: hdr.Name, Value: hdr.Value})
	}
	if _, ok := header(resp.Headers, "Content-Type"); !ok && resp.Content.MimeType != "" {
		headers = append(headers, &proto.FetchHeaderEntry{Name: "Content-Type", Value: resp.Content.MimeType})
	}

	payload := h.Response.Payload()
	payload.ResponseCode = resp.Status
	payload.ResponseHeaders = headers
	payload.Body = body
}

func (r *Replayer) serveNotFound(h *rod.Hijack) {
	payload := h.Response.Payload()
	payload.ResponseCode = http.StatusNotFound
	payload.ResponseHeaders = []*proto.FetchHeaderEntry{
		{Name: "Content-Type", Value: "application/json"},
	}
	payload.Body = []byte(`{"error": "no recording found for URL"}`)
}

// Stats returns statistics about the replayer's index.
func (r *Replayer) Stats() map[string]int {
	return map[string]int{
		"exact_matches": len(r.byURL),
		"path_matches":  len(r.byPath),
	}
}

func pathKey(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	return parsed.Scheme + "://" + parsed.Host + parsed.Path, true
}

// resolve makes a possibly relative Location absolute against base.
func resolve(base, location string) string {
	b, err := url.Parse(base)
	if err != nil {
		return location
	}
	l, err := url.Parse(location)
	if err != nil {
		return location
	}
	return b.ResolveReference(l).String()
}
