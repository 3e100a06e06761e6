// Package static searches parsed HTML documents without a browser. There is
// no script execution and no layout engine: visibility is derived from
// markup and inline styles, and geometry from absolutely positioned inline
// boxes.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserAdapter struct {
	client *http.Client
	root   *html.Node
	url    string
}

func NewBrowserAdapter(client *http.Client) *BrowserAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &BrowserAdapter{client: client}
}

// NewFromHTML returns an adapter holding an already loaded document.
func NewFromHTML(doc string) (*BrowserAdapter, error) {
	b := NewBrowserAdapter(nil)
	if err := b.load(strings.NewReader(doc), "about:blank"); err != nil {
		return nil, err
	}
	return b, nil
}

// Navigate loads http(s) URLs through the client and anything else as a
// local file path, with or without the file:// scheme.
func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return b.fetch(ctx, url)
	}

	f, err := os.Open(strings.TrimPrefix(url, "file://"))
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return b.load(f, url)
}

func (b *BrowserAdapter) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("navigation failed: %s returned %s", url, resp.Status)
	}
	return b.load(resp.Body, url)
}

func (b *BrowserAdapter) load(r io.Reader, url string) error {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	b.root = root
	b.url = url
	return nil
}

func (b *BrowserAdapter) Document(_ context.Context) (output.SearchContext, error) {
	if b.root == nil {
		return nil, fmt.Errorf("no document is loaded")
	}
	return &documentContext{root: b.root}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	return b.url
}

func (b *BrowserAdapter) Close() {
	b.root = nil
}
