package search

import (
	"context"
	"strings"
	"unicode"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

const textTransformProperty = "text-transform"

// queryBuilder renders the structural query for one text-matching mode.
type queryBuilder func(m xpath.TextMatch, value string) entity.By

// textSearch runs the phased text lookup shared by the name and text
// strategies: a literal innermost match first, then a case-insensitive one.
// The first phase returning elements wins.
type textSearch struct {
	finder output.ElementFinder
	log    output.LoggerPort
}

func (s textSearch) phases(ctx context.Context, sc output.SearchContext, params entity.SearchParameters, build queryBuilder) ([]output.Element, bool, error) {
	elements, err := s.finder.FindElements(ctx, sc, build(xpath.CaseSensitive, params.Value()), params)
	if err != nil || len(elements) > 0 {
		return elements, false, err
	}
	elements, err = s.finder.FindElements(ctx, sc, build(xpath.CaseInsensitive, params.Value()), params)
	return elements, true, err
}

func (s textSearch) twoPhase(ctx context.Context, sc output.SearchContext, params entity.SearchParameters, build queryBuilder) ([]output.Element, error) {
	elements, _, err := s.phases(ctx, sc, params, build)
	return elements, err
}

// transformAware behaves like twoPhase but keeps case-insensitive matches
// only when their CSS text-transform renders the expected value as typed.
func (s textSearch) transformAware(ctx context.Context, sc output.SearchContext, params entity.SearchParameters, build queryBuilder) ([]output.Element, error) {
	elements, caseInsensitive, err := s.phases(ctx, sc, params, build)
	if err != nil || !caseInsensitive || len(elements) == 0 {
		return elements, err
	}

	expected := params.Value()
	if expected == "" {
		return elements, nil
	}

	result := make([]output.Element, 0, len(elements))
	for _, el := range elements {
		transform, err := el.CSSValue(ctx, textTransformProperty)
		if err != nil {
			return nil, err
		}
		rendered, ok := applyTextTransform(transform, expected)
		if ok && rendered == expected {
			result = append(result, el)
		}
	}
	if len(result) < len(elements) {
		s.log.Debug("Case-insensitive matches rejected by text-transform", "value", expected,
			"found", len(elements), "kept", len(result))
	}
	return result, nil
}

// applyTextTransform renders value the way the CSS text-transform would.
// It reports false for transforms that do not change letter case.
func applyTextTransform(transform, value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(transform)) {
	case "uppercase":
		return strings.ToUpper(value), true
	case "lowercase":
		return strings.ToLower(value), true
	case "capitalize":
		return capitalize(value), true
	default:
		return "", false
	}
}

// capitalize upper-cases the first letter of every word. Any rune that is
// neither a letter nor a digit starts a new word, so "foo-bar" renders as
// "Foo-Bar".
func capitalize(s string) string {
	runes := []rune(s)
	startOfWord := true
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			startOfWord = true
			continue
		}
		if startOfWord {
			runes[i] = unicode.ToUpper(r)
		}
		startOfWord = false
	}
	return string(runes)
}
