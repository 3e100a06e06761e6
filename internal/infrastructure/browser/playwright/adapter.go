// Package playwright runs searches through a Playwright-driven Chromium.
package playwright

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserConfig struct {
	Headless bool
	Timeout  time.Duration
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

type BrowserAdapter struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	timeout time.Duration
	closed  bool
}

func NewBrowserAdapter(cfg BrowserConfig) (*BrowserAdapter, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		pw:      pw,
		browser: browser,
		page:    page,
		timeout: cfg.Timeout,
	}, nil
}

func (b *BrowserAdapter) Navigate(_ context.Context, url string) error {
	opts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad}
	if b.timeout > 0 {
		opts.Timeout = playwright.Float(float64(b.timeout.Milliseconds()))
	}
	if _, err := b.page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Document(_ context.Context) (output.SearchContext, error) {
	if b.closed {
		return nil, fmt.Errorf("browser is closed")
	}
	return &pageContext{page: b.page}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	return b.page.URL()
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	_ = b.browser.Close()
	_ = b.pw.Stop()
}
