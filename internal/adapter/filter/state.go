package filter

import (
	"context"
	"strings"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

// StateMatches consults the live element state.
func StateMatches(ctx context.Context, el output.Element, state entity.ElementState) (bool, error) {
	switch state {
	case entity.StateEnabled:
		return el.IsEnabled(ctx)
	case entity.StateDisabled:
		enabled, err := el.IsEnabled(ctx)
		return !enabled, err
	case entity.StateSelected:
		return el.IsSelected(ctx)
	case entity.StateNotSelected:
		selected, err := el.IsSelected(ctx)
		return !selected, err
	case entity.StateVisible:
		return el.IsDisplayed(ctx)
	case entity.StateNotVisible:
		displayed, err := el.IsDisplayed(ctx)
		return !displayed, err
	default:
		return false, entity.ErrInvalidFilterValue.WithMessage("Unknown element state '" + string(state) + "'")
	}
}

func NewStateFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		state, err := entity.ParseState(value)
		if err != nil {
			return false, err
		}
		return StateMatches(ctx, el, state)
	}}
}

// NewDropDownStateFilter applies the state check to <select> elements only.
func NewDropDownStateFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		state, err := entity.ParseState(value)
		if err != nil {
			return false, err
		}
		isSelect, err := isDropDown(ctx, el)
		if err != nil || !isSelect {
			return false, err
		}
		return StateMatches(ctx, el, state)
	}}
}

func isDropDown(ctx context.Context, el output.Element) (bool, error) {
	tag, err := el.TagName(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(tag, "select"), nil
}
