package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedSession() *HARLog {
	return &HARLog{Entries: []HAREntry{
		{
			Request: HARRequest{Method: "GET", URL: "https://www.cathaybk.com.tw/mybank/"},
			Response: HARResponse{
				Status:  302,
				Headers: []HARHeader{{Name: "Location", Value: "/MyBank/Quicklinks/Home/Login"}},
			},
		},
		{
			Request:  HARRequest{Method: "GET", URL: "https://www.cathaybk.com.tw/MyBank/Quicklinks/Home/Login"},
			Response: HARResponse{Status: 200, Content: HARContent{MimeType: "text/html", Text: "<html>login</html>"}},
		},
		{
			Request:  HARRequest{Method: "GET", URL: "https://www.cathaybk.com.tw/MyBank/api/stock?v=1"},
			Response: HARResponse{Status: 200, Content: HARContent{MimeType: "application/json", Text: `{"v":1}`}},
		},
		{
			Request:  HARRequest{Method: "GET", URL: "https://www.cathaybk.com.tw/MyBank/api/stock?v=2"},
			Response: HARResponse{Status: 200, Content: HARContent{MimeType: "application/json", Text: `{"v":2}`}},
		},
	}}
}

func TestReplayer_Lookup(t *testing.T) {
	r := NewReplayer(recordedSession())

	entry, ok := r.Lookup("https://www.cathaybk.com.tw/MyBank/api/stock?v=2")
	require.True(t, ok)
	assert.Equal(t, `{"v":2}`, entry.Response.Content.Text)

	// Unknown query falls back to the first recording of the path.
	entry, ok = r.Lookup("https://www.cathaybk.com.tw/MyBank/api/stock?v=9")
	require.True(t, ok)
	assert.Equal(t, `{"v":1}`, entry.Response.Content.Text)

	_, ok = r.Lookup("https://www.cathaybk.com.tw/elsewhere")
	assert.False(t, ok)

	assert.Equal(t, map[string]int{"exact_matches": 4, "path_matches": 3}, r.Stats())
}

func TestReplayer_FollowRedirects(t *testing.T) {
	r := NewReplayer(recordedSession())
	start, ok := r.Lookup("https://www.cathaybk.com.tw/mybank/")
	require.True(t, ok)

	final := r.followRedirects(start)

	assert.Equal(t, 200, final.Response.Status)
	assert.Equal(t, "<html>login</html>", final.Response.Content.Text)
}

func TestReplayer_FollowRedirects_TargetNotRecorded(t *testing.T) {
	har := &HARLog{Entries: []HAREntry{{
		Request: HARRequest{URL: "https://www.cathaybk.com.tw/mybank/"},
		Response: HARResponse{
			Status:  301,
			Headers: []HARHeader{{Name: "location", Value: "https://elsewhere.example/"}},
		},
	}}}
	r := NewReplayer(har)

	final := r.followRedirects(&har.Entries[0])

	assert.Equal(t, 301, final.Response.Status)
}

func TestLoadHAR_DevToolsAndBareFormats(t *testing.T) {
	dir := t.TempDir()

	devtools := filepath.Join(dir, "devtools.har")
	require.NoError(t, os.WriteFile(devtools, []byte(`{"log": {"version": "1.2", "entries": [
		{"request": {"method": "POST", "url": "https://www.cathaybk.com.tw/mybank/", "postData": {"mimeType": "application/x-www-form-urlencoded", "text": "CustID=x"}},
		 "response": {"status": 200, "content": {"mimeType": "text/html", "text": "ok"}}}
	]}}`), 0o644))

	har, err := LoadHAR(devtools)
	require.NoError(t, err)
	require.Len(t, har.Entries, 1)
	assert.Equal(t, "CustID=x", har.Entries[0].Request.PostData.Text)

	bare := filepath.Join(dir, "bare.har.json")
	require.NoError(t, SaveHAR(bare, har))

	again, err := LoadHAR(bare)
	require.NoError(t, err)
	assert.Equal(t, har, again)
}

func TestLoadHAR_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.har")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadHAR(path)

	assert.ErrorContains(t, err, "parse HAR JSON")
}
