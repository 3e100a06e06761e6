package output

import (
	"context"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

// SearchStrategy finds candidates for search kinds that have no direct
// structural query.
type SearchStrategy interface {
	Search(ctx context.Context, sc SearchContext, params entity.SearchParameters) ([]Element, error)
}

// FilterStrategy narrows a candidate set. The result is a subsequence of
// elements; an empty value returns elements untouched.
type FilterStrategy interface {
	Filter(ctx context.Context, elements []Element, value string) ([]Element, error)
}

// ElementFinder executes structural queries honouring visibility and
// wait-for-element.
type ElementFinder interface {
	FindElements(ctx context.Context, sc SearchContext, by entity.By, params entity.SearchParameters) ([]Element, error)
}

type StrategyRegistry interface {
	RegisterSearch(id entity.LocatorTypeID, s SearchStrategy)
	RegisterFilter(id entity.LocatorTypeID, f FilterStrategy)
	Search(id entity.LocatorTypeID) (SearchStrategy, bool)
	Filter(id entity.LocatorTypeID) (FilterStrategy, bool)
}
