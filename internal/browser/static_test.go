package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const listingHTML = `<html><body>
<div id="listContainer">
  <div class="cust-job-tuple layout-wrapper">
    <a class="title" href="https://example.test/job-1">Go Developer</a>
    <span class="expwdth"> 0-2 Yrs </span>
  </div>
  <div class="cust-job-tuple layout-wrapper">
    <a class="title" href="https://example.test/job-2">Data Analyst</a>
  </div>
</div>
</body></html>`

func newStaticServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs-in-india-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jobscout-test", r.UserAgent())
		w.Write([]byte(listingHTML))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStaticPage_NavigateAndQuery(t *testing.T) {
	srv := newStaticServer(t)
	session, err := NewStaticLauncher(StaticOptions{UserAgent: "jobscout-test"}).Launch(context.Background())
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage()
	require.NoError(t, err)
	defer page.Close()

	out := page.Navigate(srv.URL+"/jobs-in-india-1", 2*time.Second)
	require.True(t, out.OK(), "navigate: %v", out.Err)
	assert.True(t, page.WaitForSelector("#listContainer", time.Second).OK())

	cards, err := page.QueryAll("div.cust-job-tuple.layout-wrapper")
	require.NoError(t, err)
	require.Len(t, cards, 2)

	title, err := cards[0].QuerySingle("a.title")
	require.NoError(t, err)
	require.NotNil(t, title)
	text, _ := title.Text()
	href, _ := title.Attribute("href")
	assert.Equal(t, "Go Developer", text)
	assert.Equal(t, "https://example.test/job-1", href)

	missing, err := cards[1].QuerySingle("span.expwdth")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	wait := page.WaitForSelector("div.not-there", time.Second)
	assert.Equal(t, StatusTimeout, wait.Status)
}

func TestStaticPage_Timeouts(t *testing.T) {
	srv := newStaticServer(t)
	session, err := NewStaticLauncher(StaticOptions{}).Launch(context.Background())
	require.NoError(t, err)
	page, _ := session.NewPage()

	out := page.Navigate(srv.URL+"/slow", 50*time.Millisecond)
	assert.Equal(t, StatusTimeout, out.Status)

	//nothing loaded after a failed navigation
	_, err = page.QueryAll("div")
	assert.ErrorIs(t, err, errNoDocument)
}

func TestStaticPage_NotFoundIsFailure(t *testing.T) {
	srv := newStaticServer(t)
	session, _ := NewStaticLauncher(StaticOptions{}).Launch(context.Background())
	page, _ := session.NewPage()

	out := page.Navigate(srv.URL+"/missing", time.Second)
	assert.Equal(t, StatusFailure, out.Status)
}

func TestStaticLauncher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStaticLauncher(StaticOptions{}).Launch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type shotPage struct {
	staticPage
}

func (p *shotPage) Screenshot(path string) error {
	return os.WriteFile(path, []byte("png"), 0644)
}

func TestScreenshotDebugger(t *testing.T) {
	assert.Nil(t, NewScreenshotDebugger("", zap.NewNop()))

	var disabled *ScreenshotDebugger
	path, err := disabled.CaptureAndLog(&shotPage{}, "x", "y")
	assert.NoError(t, err)
	assert.Empty(t, path)

	dir := filepath.Join(t.TempDir(), "shots")
	dbg := NewScreenshotDebugger(dir, zap.NewNop())
	dbg.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	path, err = dbg.CaptureAndLog(&shotPage{}, "naukri india/page 2", "page failed")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "naukri-india-page-2_2026-01-02_03-04-05.png"), path)
	assert.FileExists(t, path)

	//static pages can't render images
	path, err = dbg.CaptureAndLog(&staticPage{}, "plain", "skip")
	assert.NoError(t, err)
	assert.Empty(t, path)
	assert.False(t, strings.HasSuffix(path, ".png"))
}
