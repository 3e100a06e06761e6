package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividus-framework/vividus-sub002/internal/adapter/filter"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/browser/static"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/logger"
)

const form = `<html><body>
<div id="outer"><p id="inner"><span id="leaf">Sign   in</span></p></div>
<a id="home" href="/">Home</a>
<label for="email">Email</label><input id="email" type="text"/>
<input id="query" type="text" placeholder="Search"/>
<button id="go" name="go-button">Go</button>
<input id="send" type="submit" value="Send"/>
<label><input id="remember" type="checkbox"/>Remember me</label>
</body></html>`

func TestTextStrategies_AgainstDocument(t *testing.T) {
	page, err := static.NewFromHTML(form)
	require.NoError(t, err)
	sc, err := page.Document(context.Background())
	require.NoError(t, err)

	finder := newFinder()
	log := logger.NewNop()

	tests := []struct {
		name     string
		strategy output.SearchStrategy
		value    string
		want     []string
	}{
		{"case sensitive text innermost", NewCaseSensitiveTextSearch(finder), "Sign in", []string{"leaf"}},
		{"case sensitive text no fold", NewCaseSensitiveTextSearch(finder), "SIGN IN", []string{}},
		{"case insensitive text", NewCaseInsensitiveTextSearch(finder, log), "SIGN IN", []string{"leaf"}},
		{"link text", NewLinkTextSearch(finder, log), "Home", []string{"home"}},
		{"field by label", NewFieldNameSearch(finder, log), "Email", []string{"email"}},
		{"field by placeholder", NewFieldNameSearch(finder, log), "Search", []string{"query"}},
		{"element by attribute", NewElementNameSearch(finder, log), "Search", []string{"query"}},
		{"element by text", NewElementNameSearch(finder, log), "Home", []string{"home"}},
		{"button by text", NewButtonNameSearch(finder, log), "Go", []string{"go"}},
		{"button by attribute", NewButtonNameSearch(finder, log), "go-button", []string{"go"}},
		{"submit input by value", NewButtonNameSearch(finder, log), "Send", []string{"send"}},
		{"checkbox nested in label", NewCheckboxNameSearch(finder, log), "Remember me", []string{"remember"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := tt.strategy.Search(context.Background(), sc, entity.NewSearchParameters(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, htmlIDs(t, found))
		})
	}
}

func TestLinkURLSearch_FollowsLinkCaseConfig(t *testing.T) {
	page, err := static.NewFromHTML(`<html><body>
<a id="contact" href=" https://example.com/contact ">Contact</a>
<a id="other" href="https://example.com/contact/more">More</a>
</body></html>`)
	require.NoError(t, err)
	sc, err := page.Document(context.Background())
	require.NoError(t, err)

	tests := []struct {
		name          string
		caseSensitive bool
		value         string
		want          []string
	}{
		{"sensitive exact", true, "https://example.com/contact", []string{"contact"}},
		{"sensitive rejects case", true, "HTTPS://EXAMPLE.COM/CONTACT", []string{}},
		{"insensitive folds case", false, "HTTPS://EXAMPLE.COM/CONTACT", []string{"contact"}},
		{"insensitive whole href only", false, "https://example.com", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := NewLinkURLSearch(newFinder(), filter.LinkConfig{CaseSensitive: tt.caseSensitive})
			found, err := strategy.Search(context.Background(), sc, noWait(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, htmlIDs(t, found))
		})
	}
}

func TestLinkURLQuery(t *testing.T) {
	assert.Equal(t, entity.ByXPath(".//a[normalize-space(@href)='/Home']"),
		LinkURLQuery(xpath.CaseSensitive, "/Home"))
	assert.Equal(t,
		entity.ByXPath(".//a[normalize-space(translate(@href, 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'))='/home']"),
		LinkURLQuery(xpath.CaseInsensitive, "/Home"))
}
