package search

import (
	"context"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

type VisibilityEvaluator struct {
	log output.LoggerPort
}

func NewVisibilityEvaluator(log output.LoggerPort) *VisibilityEvaluator {
	return &VisibilityEvaluator{log: log}
}

// Filter keeps the elements satisfying visibility, preserving their order.
func (v *VisibilityEvaluator) Filter(ctx context.Context, elements []output.Element, visibility entity.Visibility) ([]output.Element, error) {
	if visibility == entity.All || len(elements) == 0 {
		return elements, nil
	}

	result := make([]output.Element, 0, len(elements))
	for _, el := range elements {
		var (
			visible bool
			err     error
		)
		if visibility == entity.Visible {
			visible, err = v.IsVisible(ctx, el)
		} else {
			visible, err = el.IsDisplayed(ctx)
		}
		if err != nil {
			return nil, err
		}
		if visible == (visibility == entity.Visible) {
			result = append(result, el)
		}
	}
	return result, nil
}

// IsVisible treats an element reported hidden as visible when it becomes
// displayed after being scrolled into the viewport.
func (v *VisibilityEvaluator) IsVisible(ctx context.Context, el output.Element) (bool, error) {
	displayed, err := el.IsDisplayed(ctx)
	if err != nil || displayed {
		return displayed, err
	}

	scroller, ok := el.(output.Scroller)
	if !ok {
		return false, nil
	}
	if err := scroller.ScrollIntoView(ctx); err != nil {
		v.log.Debug("Unable to scroll element into view", "element", el.ID(), "error", err)
		return false, nil
	}
	return el.IsDisplayed(ctx)
}
