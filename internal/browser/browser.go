// Narrow browser abstraction used by the scrapers.
// Two drivers implement it: Playwright (JS-rendered pages) and a static
// colly/goquery driver for server-rendered HTML.

package browser

import (
	"context"
	"time"
)

// Launcher starts a browser session. One session serves a whole crawl run.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Session owns the browser for the duration of a run
type Session interface {
	//NewPage opens an isolated page (tab). The caller must Close it.
	NewPage() (Page, error)
	Close() error
}

// Page is a single tab. Navigation and waits are bounded by explicit timeouts
// and report their result as an Outcome instead of an error.
type Page interface {
	Navigate(url string, timeout time.Duration) Outcome
	WaitForSelector(selector string, timeout time.Duration) Outcome
	QueryAll(selector string) ([]Element, error)
	//QuerySingle returns nil, nil when nothing matches
	QuerySingle(selector string) (Element, error)
	Close() error
}

// Element is a DOM node found on a page
type Element interface {
	QueryAll(selector string) ([]Element, error)
	QuerySingle(selector string) (Element, error)
	Text() (string, error)
	//Attribute returns "" when the attribute is missing
	Attribute(name string) (string, error)
}

// Screenshotter is implemented by pages that can render themselves to an image.
type Screenshotter interface {
	Screenshot(path string) error
}
