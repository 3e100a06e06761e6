// Package selenium runs searches through a WebDriver session.
package selenium

import (
	"context"
	"fmt"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const defaultRemoteURL = "http://localhost:4444/wd/hub"

type BrowserConfig struct {
	// RemoteURL is the WebDriver endpoint (Selenium server or chromedriver).
	RemoteURL string
	Headless  bool
	NoSandbox bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		RemoteURL: defaultRemoteURL,
		Headless:  true,
	}
}

type BrowserAdapter struct {
	wd     selenium.WebDriver
	closed bool
}

func NewBrowserAdapter(cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.RemoteURL == "" {
		cfg.RemoteURL = defaultRemoteURL
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}
	chromeCaps := chrome.Capabilities{
		Args: []string{"--disable-dev-shm-usage"},
	}
	if cfg.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if cfg.NoSandbox {
		chromeCaps.Args = append(chromeCaps.Args, "--no-sandbox")
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, cfg.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}
	return NewFromWebDriver(wd), nil
}

// NewFromWebDriver adopts an existing session.
func NewFromWebDriver(wd selenium.WebDriver) *BrowserAdapter {
	return &BrowserAdapter{wd: wd}
}

func (b *BrowserAdapter) Navigate(_ context.Context, url string) error {
	if err := b.wd.Get(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) Document(_ context.Context) (output.SearchContext, error) {
	if b.closed {
		return nil, fmt.Errorf("webdriver session is closed")
	}
	return &driverContext{wd: b.wd}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	url, err := b.wd.CurrentURL()
	if err != nil {
		return ""
	}
	return url
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true
	_ = b.wd.Quit()
}
