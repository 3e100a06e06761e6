// Package filter holds the filter strategies applied to found elements.
// Every filter returns its input untouched for an empty value and otherwise
// keeps the matching elements in their original order.
package filter

import (
	"context"
	"strings"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
)

type predicate func(ctx context.Context, el output.Element, value string) (bool, error)

// Predicate adapts a per-element check into a FilterStrategy.
type Predicate struct {
	match predicate
}

var _ output.FilterStrategy = Predicate{}

func (p Predicate) Filter(ctx context.Context, elements []output.Element, value string) ([]output.Element, error) {
	if value == "" {
		return elements, nil
	}
	result := make([]output.Element, 0, len(elements))
	for _, el := range elements {
		ok, err := p.match(ctx, el, value)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, el)
		}
	}
	return result, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func text(ctx context.Context, el output.Element) (string, error) {
	t, err := el.Text(ctx)
	if err != nil {
		return "", err
	}
	return normalizeSpace(t), nil
}

// NewTextPartFilter keeps elements whose text contains the value.
func NewTextPartFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		t, err := text(ctx, el)
		return err == nil && strings.Contains(t, value), err
	}}
}

func NewCaseSensitiveTextFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		t, err := text(ctx, el)
		return err == nil && t == normalizeSpace(value), err
	}}
}

func NewCaseInsensitiveTextFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		t, err := text(ctx, el)
		return err == nil && strings.EqualFold(t, normalizeSpace(value)), err
	}}
}

func attributeMatch(name string, compare func(actual, expected string) bool) Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		actual, present, err := el.Attribute(ctx, name)
		if err != nil || !present {
			return false, err
		}
		return compare(actual, value), nil
	}}
}

func equals(actual, expected string) bool {
	return actual == expected
}

func NewTooltipFilter() Predicate {
	return attributeMatch("title", equals)
}

func NewPlaceholderFilter() Predicate {
	return attributeMatch("placeholder", equals)
}

func NewClassAttributePartFilter() Predicate {
	return attributeMatch("class", strings.Contains)
}

func NewImageSrcPartFilter() Predicate {
	return attributeMatch("src", strings.Contains)
}

// NewValidationIconSourceFilter matches the icon rendered through the CSS
// background-image of the element.
func NewValidationIconSourceFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		image, err := el.CSSValue(ctx, "background-image")
		if err != nil {
			return false, err
		}
		return strings.Contains(image, `url("`+value+`")`), nil
	}}
}
