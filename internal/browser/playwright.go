package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

type PlaywrightOptions struct {
	Headless  bool
	SlowMo    time.Duration
	UserAgent string
}

// PlaywrightLauncher starts Chromium through playwright-go.
type PlaywrightLauncher struct {
	opts PlaywrightOptions
}

func NewPlaywrightLauncher(opts PlaywrightOptions) *PlaywrightLauncher {
	return &PlaywrightLauncher{opts: opts}
}

func (l *PlaywrightLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.opts.Headless),
		SlowMo:   playwright.Float(float64(l.opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if l.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(l.opts.UserAgent)
	}
	browserCtx, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	return &playwrightSession{pw: pw, browser: browser, ctx: browserCtx}, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
}

func (s *playwrightSession) NewPage() (Page, error) {
	page, err := s.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &playwrightPage{page: page}, nil
}

func (s *playwrightSession) Close() error {
	return errors.Join(s.ctx.Close(), s.browser.Close(), s.pw.Stop())
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) Navigate(url string, timeout time.Duration) Outcome {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   millis(timeout),
	})
	return FromError(err)
}

func (p *playwrightPage) WaitForSelector(selector string, timeout time.Duration) Outcome {
	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: millis(timeout),
	})
	return FromError(err)
}

func (p *playwrightPage) QueryAll(selector string) ([]Element, error) {
	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapHandles(handles), nil
}

func (p *playwrightPage) QuerySingle(selector string) (Element, error) {
	handle, err := p.page.QuerySelector(selector)
	if err != nil || handle == nil {
		return nil, err
	}
	return &playwrightElement{handle: handle}, nil
}

func (p *playwrightPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) QueryAll(selector string) ([]Element, error) {
	handles, err := e.handle.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapHandles(handles), nil
}

func (e *playwrightElement) QuerySingle(selector string) (Element, error) {
	handle, err := e.handle.QuerySelector(selector)
	if err != nil || handle == nil {
		return nil, err
	}
	return &playwrightElement{handle: handle}, nil
}

func (e *playwrightElement) Text() (string, error) {
	return e.handle.InnerText()
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	return e.handle.GetAttribute(name)
}

func wrapHandles(handles []playwright.ElementHandle) []Element {
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &playwrightElement{handle: h})
	}
	return elements
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
