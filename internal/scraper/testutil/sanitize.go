package testutil

import (
	"net/url"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveKey matches form fields, query params, headers and JSON keys that
// carry secrets. CustID, UserIdKeyin and PasswordKeyin are the MyBank login
// form fields.
var sensitiveKey = regexp.MustCompile(`(?i)password|passwd|pwd|secret|token|session|sess_|auth|jwt|bearer|api_?key|credential|access_key|private_key|custid|useridkeyin|cookie|csrf|xsrf`)

// sensitiveJSONField matches "key": value pairs whose key is sensitive.
var sensitiveJSONField = regexp.MustCompile(`("[^"]*"\s*:\s*)("(?:[^"\\]|\\.)*"|[^",}\]\s]+)`)

// SensitiveHeaders are headers that should be redacted.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"proxy-authorization": true,
}

// SanitizeHAR returns a copy of har with secrets replaced by [REDACTED].
func SanitizeHAR(har *HARLog) *HARLog {
	out := &HARLog{Entries: make([]HAREntry, len(har.Entries))}

	for i, e := range har.Entries {
		req := e.Request
		req.URL = sanitizeURL(req.URL)
		req.Headers = sanitizeHeaders(req.Headers)
		if req.PostData != nil {
			pd := *req.PostData
			pd.Text = sanitizeBody(pd.Text)
			req.PostData = &pd
		}

		resp := e.Response
		resp.Headers = sanitizeHeaders(resp.Headers)
		resp.Content.Text = sanitizeBody(resp.Content.Text)

		out.Entries[i] = HAREntry{Request: req, Response: resp}
	}

	return out
}

func isSensitiveKey(key string) bool {
	return sensitiveKey.MatchString(key)
}

func sanitizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	for key := range query {
		if isSensitiveKey(key) {
			query.Set(key, redacted)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

func sanitizeHeaders(headers []HARHeader) []HARHeader {
	if headers == nil {
		return nil
	}

	out := make([]HARHeader, len(headers))
	for i, h := range headers {
		out[i] = h
		if SensitiveHeaders[strings.ToLower(h.Name)] || isSensitiveKey(h.Name) {
			out[i].Value = redacted
		}
	}
	return out
}

func sanitizeBody(body string) string {
	trimmed := strings.TrimSpace(body)
	switch {
	case trimmed == "":
		return body
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return sanitizeJSONBody(body)
	case strings.Contains(body, "=") && !strings.HasPrefix(trimmed, "<"):
		return sanitizeFormBody(body)
	default:
		return body
	}
}

func sanitizeFormBody(body string) string {
	values, err := url.ParseQuery(body)
	if err != nil {
		return body
	}

	changed := false
	for key := range values {
		if isSensitiveKey(key) {
			values.Set(key, redacted)
			changed = true
		}
	}
	if !changed {
		return body
	}

	return values.Encode()
}

func sanitizeJSONBody(body string) string {
	return sensitiveJSONField.ReplaceAllStringFunc(body, func(m string) string {
		parts := sensitiveJSONField.FindStringSubmatch(m)
		key := strings.Trim(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(parts[1]), ":")), `"`)
		if !isSensitiveKey(key) {
			return m
		}
		return parts[1] + `"` + redacted + `"`
	})
}
