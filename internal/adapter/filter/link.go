package filter

import (
	"context"
	"net/url"
	"strings"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
)

type LinkConfig struct {
	CaseSensitive bool
}

// NewLinkURLFilter keeps links whose href points to the value. A value
// without scheme and host is compared with the path, query and fragment of
// the href, so "/about" matches "https://example.com/about".
func NewLinkURLFilter(cfg LinkConfig) Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		href, present, err := el.Attribute(ctx, "href")
		if err != nil || !present {
			return false, err
		}
		return sameURL(href, value, cfg.CaseSensitive), nil
	}}
}

func NewLinkURLPartFilter(cfg LinkConfig) Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		href, present, err := el.Attribute(ctx, "href")
		if err != nil || !present {
			return false, err
		}
		if !cfg.CaseSensitive {
			return strings.Contains(strings.ToLower(href), strings.ToLower(value)), nil
		}
		return strings.Contains(href, value), nil
	}}
}

func sameURL(href, expected string, caseSensitive bool) bool {
	eq := func(a, b string) bool {
		if caseSensitive {
			return a == b
		}
		return strings.EqualFold(a, b)
	}
	if eq(href, expected) {
		return true
	}

	actual, err := url.Parse(href)
	if err != nil {
		return false
	}
	want, err := url.Parse(expected)
	if err != nil {
		return false
	}
	if actual.Opaque != "" || want.Opaque != "" {
		return false
	}
	if want.Scheme == "" && want.Host == "" {
		return eq(pathQueryFragment(actual), pathQueryFragment(want))
	}
	return eq(actual.Scheme, want.Scheme) && eq(actual.Host, want.Host) &&
		eq(pathQueryFragment(actual), pathQueryFragment(want))
}

func pathQueryFragment(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	s := path
	if u.RawQuery != "" {
		s += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		s += "#" + u.EscapedFragment()
	}
	return s
}
