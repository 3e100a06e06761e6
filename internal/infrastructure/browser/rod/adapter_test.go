package rod

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Headless)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.False(t, cfg.NoSandbox, "Should be secure by default")
	assert.False(t, cfg.DevTools)
	assert.Empty(t, cfg.ControlURL)
}

func newTestAdapter(t *testing.T, html string) (*BrowserAdapter, output.SearchContext) {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests are skipped in short mode")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	adapter, err := NewBrowserAdapter(ctx, DefaultConfig())
	if err != nil {
		t.Skipf("browser is not available: %v", err)
	}
	t.Cleanup(adapter.Close)

	require.NoError(t, adapter.Navigate(ctx, server.URL))
	doc, err := adapter.Document(ctx)
	require.NoError(t, err)
	return adapter, doc
}

func findOne(t *testing.T, sc output.SearchContext, by entity.By) output.Element {
	t.Helper()
	found, err := sc.FindElements(context.Background(), by)
	require.NoError(t, err)
	require.Len(t, found, 1, by.String())
	return found[0]
}

func TestBrowserAdapter_FindElementsByEveryQueryKind(t *testing.T) {
	_, doc := newTestAdapter(t, LocatorHTML)
	ctx := context.Background()

	for _, by := range []entity.By{
		entity.ByXPath("//div[@id='half']"),
		entity.ByCSS("#half"),
		entity.ByID("half"),
		entity.ByClassName("wide"),
	} {
		el := findOne(t, doc, by)
		text, err := el.Text(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Half", text)
	}

	divs, err := doc.FindElements(ctx, entity.ByTagName("div"))
	require.NoError(t, err)
	assert.Len(t, divs, 2)

	none, err := doc.FindElements(ctx, entity.ByID("missing"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBrowserAdapter_ElementState(t *testing.T) {
	_, doc := newTestAdapter(t, LocatorHTML)
	ctx := context.Background()

	hidden := findOne(t, doc, entity.ByID("hidden"))
	displayed, err := hidden.IsDisplayed(ctx)
	require.NoError(t, err)
	assert.False(t, displayed)

	off := findOne(t, doc, entity.ByID("off"))
	enabled, err := off.IsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	agree := findOne(t, doc, entity.ByID("agree"))
	selected, err := agree.IsSelected(ctx)
	require.NoError(t, err)
	assert.True(t, selected)

	name := findOne(t, doc, entity.ByID("name"))
	value, present, err := name.Attribute(ctx, "value")
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "John", value)

	about := findOne(t, doc, entity.ByID("about"))
	_, present, err = about.Attribute(ctx, "placeholder")
	require.NoError(t, err)
	assert.False(t, present)

	tag, err := about.TagName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", tag)
}

func TestBrowserAdapter_GeometryAndParent(t *testing.T) {
	_, doc := newTestAdapter(t, LocatorHTML)
	ctx := context.Background()

	half := findOne(t, doc, entity.ByID("half"))
	rect, err := half.Geometry(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 200, rect.Width, 0.5)

	parent := findOne(t, half, entity.ByXPath(".."))
	assert.NotEqual(t, half.ID(), parent.ID())
	parentRect, err := parent.Geometry(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 400, parentRect.Width, 0.5)

	again := findOne(t, doc, entity.ByCSS("#half"))
	assert.Equal(t, half.ID(), again.ID(), "the same node keeps its id across queries")
}

func TestBrowserAdapter_ScrollIntoView(t *testing.T) {
	_, doc := newTestAdapter(t, ScrollHTML)
	ctx := context.Background()

	far := findOne(t, doc, entity.ByID("far"))
	scroller, ok := far.(output.Scroller)
	require.True(t, ok)
	require.NoError(t, scroller.ScrollIntoView(ctx))

	rect, err := far.Geometry(ctx)
	require.NoError(t, err)
	assert.Less(t, rect.Y, 3000.0)
}

func TestBrowserAdapter_CloseTwice(t *testing.T) {
	adapter, _ := newTestAdapter(t, LocatorHTML)

	adapter.Close()
	adapter.Close()

	assert.False(t, adapter.IsReady())
	_, err := adapter.Document(context.Background())
	assert.Error(t, err)
}
