package service

import (
	"fmt"
	"strings"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/input"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

const (
	filterMarker   = "->filter"
	relativeMarker = ">>"
	byPrefix       = "By."
)

var _ input.LocatorParser = (*LocatorParser)(nil)

// LocatorParser reads locators written as
//
//	type(value)[:visibility][->filter.kind(value)[.kind(value)...]]
//
// Type and kind names are case-insensitive and may carry a "By." prefix.
type LocatorParser struct {
	types *LocatorTypeRegistry
}

func NewLocatorParser(types *LocatorTypeRegistry) *LocatorParser {
	return &LocatorParser{types: types}
}

func (p *LocatorParser) Parse(locator string) (*entity.Locator, error) {
	s := strings.TrimSpace(locator)
	s = strings.TrimPrefix(s, byPrefix)

	name, value, rest, err := scanCall(s)
	if err != nil {
		return nil, formatError(locator, err)
	}
	searchType, ok := p.types.LookupName(name)
	if !ok {
		return nil, entity.ErrUnknownLocatorType.WithMessage(fmt.Sprintf("Unsupported locator type: %s", name))
	}

	params := entity.NewSearchParameters(value)
	if strings.HasPrefix(rest, ":") {
		end := strings.Index(rest, filterMarker)
		if end < 0 {
			end = len(rest)
		}
		visibility, err := entity.ParseVisibility(rest[1:end])
		if err != nil {
			return nil, err
		}
		params = params.WithVisibility(visibility)
		rest = rest[end:]
	}

	builder := entity.NewLocatorBuilder(p.types, searchType.ID, params)
	if rest != "" {
		if !strings.HasPrefix(rest, filterMarker) {
			return nil, formatError(locator, fmt.Errorf("unexpected trailing text '%s'", rest))
		}
		rest = rest[len(filterMarker):]
		if rest == "" {
			return nil, formatError(locator, fmt.Errorf("filter list is empty"))
		}
		for rest != "" {
			if !strings.HasPrefix(rest, ".") {
				return nil, formatError(locator, fmt.Errorf("expected '.' before filter at '%s'", rest))
			}
			var kind, filterValue string
			kind, filterValue, rest, err = scanCall(rest[1:])
			if err != nil {
				return nil, formatError(locator, err)
			}
			filterType, ok := p.types.LookupName(kind)
			if !ok {
				return nil, entity.ErrUnknownLocatorType.WithMessage(fmt.Sprintf("Unsupported filter type: %s", kind))
			}
			builder = builder.Filter(filterType.ID, filterValue)
		}
	}

	return builder.Build()
}

func formatError(locator string, cause error) error {
	return entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf("Invalid locator format '%s'", locator)).WithCause(cause)
}

// scanCall reads name(value) from the head of s and returns the remainder.
// Parentheses inside value must balance.
func scanCall(s string) (name, value, rest string, err error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return "", "", "", fmt.Errorf("expected name(value) at '%s'", s)
	}
	name = s[:open]
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return "", "", "", fmt.Errorf("invalid name '%s'", name)
		}
	}
	closing, err := matchingParen(s, open)
	if err != nil {
		return "", "", "", err
	}
	return name, s[open+1 : closing], s[closing+1:], nil
}

// matchingParen returns the index of the parenthesis closing the one at open.
func matchingParen(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unbalanced parentheses in '%s'", s[open:])
}

// splitTopLevel splits s on sep occurrences outside parentheses.
func splitTopLevel(s, sep string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth--
		case depth == 0 && strings.HasPrefix(s[i:], sep):
			parts = append(parts, s[start:i])
			start = i + len(sep)
			i += len(sep) - 1
		}
	}
	return append(parts, s[start:])
}

// ParseRelativeExpression checks the syntax of root>>position(locator)
// chains. Position keywords are validated here; the nested locators are
// validated when they are resolved.
func ParseRelativeExpression(value string) (entity.RelativeExpression, error) {
	segments := splitTopLevel(strings.TrimSpace(value), relativeMarker)
	root := strings.TrimSpace(segments[0])
	if _, _, _, err := scanCall(strings.TrimPrefix(root, byPrefix)); err != nil {
		return entity.RelativeExpression{}, entity.ErrInvalidLocatorFormat.WithMessage(
			"Incorrect relative locator format - unable to parse root element locator").WithCause(err)
	}
	if len(segments) == 1 {
		return entity.RelativeExpression{}, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf(
			"Incorrect relative locator format - expected at least one '>>position(locator)' clause in '%s'", value))
	}

	expr := entity.RelativeExpression{Root: root}
	for _, segment := range segments[1:] {
		keyword, locator, rest, err := scanCall(strings.TrimSpace(segment))
		if err != nil {
			return entity.RelativeExpression{}, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf(
				"Incorrect relative locator format - unable to parse clause '%s'", segment)).WithCause(err)
		}
		if strings.TrimSpace(rest) != "" {
			return entity.RelativeExpression{}, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf(
				"Incorrect relative locator format - unexpected text '%s' after clause", rest))
		}
		position, err := entity.ParseRelativePosition(keyword)
		if err != nil {
			return entity.RelativeExpression{}, err
		}
		expr.Clauses = append(expr.Clauses, entity.RelativeClause{
			Position: position,
			Locator:  strings.TrimSpace(locator),
		})
	}
	return expr, nil
}
