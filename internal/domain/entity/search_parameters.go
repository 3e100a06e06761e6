package entity

import (
	"fmt"
	"strings"
)

type Visibility int

const (
	Visible Visibility = iota
	Invisible
	All
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Invisible:
		return "invisible"
	case All:
		return "all"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v", "visible":
		return Visible, nil
	case "i", "invisible":
		return Invisible, nil
	case "a", "all":
		return All, nil
	default:
		return Visible, ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf("Illegal visibility type '%s'. Expected one of 'visible', 'invisible', 'all'", s))
	}
}

// SearchParameters is immutable: the With helpers return modified copies.
type SearchParameters struct {
	value          string
	visibility     Visibility
	waitForElement bool
}

func NewSearchParameters(value string) SearchParameters {
	return SearchParameters{
		value:          value,
		visibility:     Visible,
		waitForElement: true,
	}
}

func (p SearchParameters) Value() string {
	return p.value
}

func (p SearchParameters) Visibility() Visibility {
	return p.visibility
}

func (p SearchParameters) WaitForElement() bool {
	return p.waitForElement
}

func (p SearchParameters) WithValue(value string) SearchParameters {
	p.value = value
	return p
}

func (p SearchParameters) WithVisibility(v Visibility) SearchParameters {
	p.visibility = v
	return p
}

func (p SearchParameters) WithWaitForElement(wait bool) SearchParameters {
	p.waitForElement = wait
	return p
}

func (p SearchParameters) String() string {
	return fmt.Sprintf("{value=%q, visibility=%s, wait=%t}", p.value, p.visibility, p.waitForElement)
}
