package entity

import (
	"fmt"
	"strings"
)

type ElementState string

const (
	StateEnabled     ElementState = "ENABLED"
	StateDisabled    ElementState = "DISABLED"
	StateSelected    ElementState = "SELECTED"
	StateNotSelected ElementState = "NOT_SELECTED"
	StateVisible     ElementState = "VISIBLE"
	StateNotVisible  ElementState = "NOT_VISIBLE"
)

var states = []ElementState{StateEnabled, StateDisabled, StateSelected, StateNotSelected, StateVisible, StateNotVisible}

// ParseState accepts the state name in any case, with spaces or underscores
// between words ("not selected", "NOT_SELECTED").
func ParseState(s string) (ElementState, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_"))
	for _, state := range states {
		if string(state) == normalized {
			return state, nil
		}
	}
	return "", ErrInvalidFilterValue.WithMessage(fmt.Sprintf("Unknown element state '%s'", s))
}

func (s ElementState) String() string {
	return string(s)
}
