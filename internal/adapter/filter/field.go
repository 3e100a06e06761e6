package filter

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var optionsQuery = entity.ByXPath(".//option")

// SelectedOptionTexts returns the normalized texts of the selected options
// of a drop-down, in document order.
func SelectedOptionTexts(ctx context.Context, dropDown output.Element) ([]string, error) {
	options, err := dropDown.FindElements(ctx, optionsQuery)
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, option := range options {
		selected, err := option.IsSelected(ctx)
		if err != nil {
			return nil, err
		}
		if !selected {
			continue
		}
		t, err := text(ctx, option)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, nil
}

// NewDropDownTextFilter keeps drop-downs with a selected option whose text
// equals the value. A drop-down without selection never matches.
func NewDropDownTextFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		texts, err := SelectedOptionTexts(ctx, el)
		if err != nil {
			return false, err
		}
		for _, t := range texts {
			if t == value {
				return true, nil
			}
		}
		return false, nil
	}}
}

// fieldText reads the selected option text for drop-downs and the live value
// property for other fields.
func fieldText(ctx context.Context, el output.Element) (string, bool, error) {
	dropDown, err := isDropDown(ctx, el)
	if err != nil {
		return "", false, err
	}
	if dropDown {
		texts, err := SelectedOptionTexts(ctx, el)
		if err != nil || len(texts) == 0 {
			return "", false, err
		}
		return strings.Join(texts, " "), true, nil
	}
	return el.Attribute(ctx, "value")
}

func NewFieldTextFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		actual, present, err := fieldText(ctx, el)
		return err == nil && present && actual == value, err
	}}
}

func NewFieldTextPartFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		actual, present, err := fieldText(ctx, el)
		return err == nil && present && strings.Contains(actual, value), err
	}}
}

// NewRelativeToParentWidthFilter keeps elements whose width, as a floored
// percentage of the parent width, equals the value.
func NewRelativeToParentWidthFilter() Predicate {
	return Predicate{match: func(ctx context.Context, el output.Element, value string) (bool, error) {
		expected, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return false, entity.ErrInvalidFilterValue.WithMessage(
				"Relative to parent width must be an integer percentage, got '" + value + "'").WithCause(err)
		}
		parents, err := el.FindElements(ctx, entity.ByXPath(xpath.Parent))
		if err != nil || len(parents) == 0 {
			return false, err
		}
		rect, err := el.Geometry(ctx)
		if err != nil {
			return false, err
		}
		parentRect, err := parents[0].Geometry(ctx)
		if err != nil {
			return false, err
		}
		if parentRect.Width <= 0 {
			return false, nil
		}
		return int(math.Floor(rect.Width/parentRect.Width*100)) == expected, nil
	}}
}
