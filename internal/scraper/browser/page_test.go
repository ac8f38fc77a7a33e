package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPage launches a headless browser on about:blank with body set to
// html. The browser is closed via t.Cleanup.
func setupPage(t *testing.T, html string) *RodPage {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	session, err := Launch(context.Background(), LaunchOptions{Headless: true, LookupTimeout: 2 * time.Second})
	if err != nil {
		t.Skipf("Skipping: no browser available: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })

	page := session.Page
	require.NoError(t, page.Navigate(context.Background(), "about:blank", 10*time.Second))
	page.Raw().MustEval(`(html) => { document.body.innerHTML = html }`, html)

	return page
}

func TestRodPage_SetValueAndClick(t *testing.T) {
	page := setupPage(t, `
		<input id="CustID" type="text">
		<button type="button" onclick="document.getElementById('out').textContent = document.getElementById('CustID').value">go</button>
		<span id="out"></span>`)
	ctx := context.Background()

	require.NoError(t, page.WaitVisible(ctx, ID("CustID"), time.Second))
	require.NoError(t, page.SetValue(ctx, ID("CustID"), "A123456789"))
	require.NoError(t, page.WaitClickable(ctx, XPath("//button[@type='button']"), time.Second))
	require.NoError(t, page.Click(ctx, XPath("//button[@type='button']")))

	text, err := page.Text(ctx, ID("out"))
	require.NoError(t, err)
	assert.Equal(t, "A123456789", text)
}

func TestRodPage_WaitVisible_HiddenTimesOut(t *testing.T) {
	page := setupPage(t, `<div id="TD-balance" style="display:none">9,999</div>`)

	err := page.WaitVisible(context.Background(), ID("TD-balance"), 300*time.Millisecond)

	var waitErr *WaitError
	require.ErrorAs(t, err, &waitErr)
	assert.Equal(t, "visible", waitErr.Condition)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Present is enough for WaitPresent.
	assert.NoError(t, page.WaitPresent(context.Background(), ID("TD-balance"), time.Second))
}

func TestRodPage_WaitClickable_DisabledTimesOut(t *testing.T) {
	page := setupPage(t, `<button id="login" disabled>login</button>`)

	err := page.WaitClickable(context.Background(), ID("login"), 300*time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRodPage_HTML(t *testing.T) {
	page := setupPage(t, `<table id="SubStocks"><tbody><tr><td>A</td></tr></tbody></table>`)

	html, err := page.HTML(context.Background(), CSS("table#SubStocks"))

	require.NoError(t, err)
	assert.Contains(t, html, `<table id="SubStocks">`)
	assert.Contains(t, html, "<td>A</td>")
}

func TestClickNow(t *testing.T) {
	page := setupPage(t, `
		<a href="javascript:void(0)" onclick="document.title = 'stocks'">庫存</a>
		<a href="javascript:void(0)" onclick="document.title = 'logout'">登出</a>`)
	ctx := context.Background()

	require.NoError(t, ClickNow(ctx, page, CSS(`a[onclick="document.title = 'stocks'"]`)))
	assert.Equal(t, "stocks", page.Raw().MustEval(`() => document.title`).Str())

	require.NoError(t, ClickNow(ctx, page, XPath(`//a[contains(@onclick, 'logout')]`)))
	assert.Equal(t, "logout", page.Raw().MustEval(`() => document.title`).Str())

	err := ClickNow(ctx, page, ID("missing"))
	assert.ErrorIs(t, err, ErrScriptFailed)
}

func TestRodPage_TableRows_RenderedText(t *testing.T) {
	page := setupPage(t, `<table id="SubStocks">
		<tr><th>股票名稱</th><th>目前庫存</th></tr>
		<tr><td>A<span style="display:none">HIDDEN</span></td><td>USD 1<br>USD 2</td></tr>
		<tr><td colspan="2">查無資料</td></tr>
	</table>`)

	rows, err := page.TableRows(context.Background(), ID("SubStocks"))

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Empty(t, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "USD 1\nUSD 2", rows[1][1])
	assert.Equal(t, []string{"查無資料"}, rows[2])
}
