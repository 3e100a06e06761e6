package output

import (
	"context"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

// SearchContext runs structural queries. A query without matches returns an
// empty slice, not an error.
type SearchContext interface {
	FindElements(ctx context.Context, by entity.By) ([]Element, error)
}

// Element is an opaque handle to a node owned by the driver. Elements found
// within an element are searched relative to it.
type Element interface {
	SearchContext

	// ID is a driver-specific reference; equal IDs denote the same node.
	ID() string
	TagName(ctx context.Context) (string, error)
	Text(ctx context.Context) (string, error)
	// Attribute returns the live value and whether it is present.
	Attribute(ctx context.Context, name string) (string, bool, error)
	CSSValue(ctx context.Context, property string) (string, error)
	IsDisplayed(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	IsSelected(ctx context.Context) (bool, error)
	Geometry(ctx context.Context) (entity.Rect, error)
}

// WrapsElement is implemented by elements decorating another element.
type WrapsElement interface {
	Unwrap() Element
}

// Scroller is implemented by elements that can be scrolled into the viewport.
type Scroller interface {
	ScrollIntoView(ctx context.Context) error
}

// Unwrap strips every wrapping layer from el.
func Unwrap(el Element) Element {
	for {
		w, ok := el.(WrapsElement)
		if !ok {
			return el
		}
		inner := w.Unwrap()
		if inner == nil {
			return el
		}
		el = inner
	}
}
