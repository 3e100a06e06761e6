package search

import (
	"context"
	"fmt"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/input"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

var _ input.ElementLocator = (*UseCase)(nil)

// UseCase resolves locators: search, then filters in declaration order, then
// child pruning.
type UseCase struct {
	strategies output.StrategyRegistry
	finder     output.ElementFinder
	logger     output.LoggerPort
}

func New(
	strategies output.StrategyRegistry,
	finder output.ElementFinder,
	logger output.LoggerPort,
) *UseCase {
	return &UseCase{
		strategies: strategies,
		finder:     finder,
		logger:     logger,
	}
}

func (uc *UseCase) FindElements(ctx context.Context, sc output.SearchContext, locator *entity.Locator) ([]output.Element, error) {
	if sc == nil {
		uc.logger.Info("Search context is not set, skipping search", "locator", locator.String())
		return nil, nil
	}

	elements, err := uc.search(ctx, sc, locator)
	if err != nil {
		return nil, err
	}

	elements, err = uc.applyFilters(ctx, elements, locator)
	if err != nil {
		return nil, err
	}

	return uc.pruneByChildren(ctx, elements, locator.Children())
}

func (uc *UseCase) FindElement(ctx context.Context, sc output.SearchContext, locator *entity.Locator) (output.Element, bool, error) {
	elements, err := uc.FindElements(ctx, sc, locator)
	if err != nil || len(elements) == 0 {
		return nil, false, err
	}
	return elements[0], true, nil
}

func (uc *UseCase) FindElementsBy(ctx context.Context, sc output.SearchContext, by entity.By, params entity.SearchParameters) ([]output.Element, error) {
	return uc.finder.FindElements(ctx, sc, by, params)
}

func (uc *UseCase) search(ctx context.Context, sc output.SearchContext, locator *entity.Locator) ([]output.Element, error) {
	searchType := locator.SearchType()
	params := locator.Parameters()

	if searchType.HasQuery() {
		return uc.finder.FindElements(ctx, sc, searchType.BuildQuery(params.Value()), params)
	}

	strategy, ok := uc.strategies.Search(searchType.ID)
	if !ok {
		return nil, entity.ErrMissingStrategy.WithMessage(
			fmt.Sprintf("No search strategy is registered for '%s'", searchType.ID))
	}

	return strategy.Search(ctx, sc, params)
}

func (uc *UseCase) applyFilters(ctx context.Context, elements []output.Element, locator *entity.Locator) ([]output.Element, error) {
	for _, entry := range locator.Filters() {
		filter, ok := uc.strategies.Filter(entry.Type.ID)
		if !ok {
			return nil, entity.ErrMissingStrategy.WithMessage(
				fmt.Sprintf("No filter strategy is registered for '%s'", entry.Type.ID))
		}
		for _, value := range entry.Values {
			if len(elements) == 0 {
				return elements, nil
			}
			before := len(elements)
			filtered, err := filter.Filter(ctx, elements, value)
			if err != nil {
				return nil, err
			}
			uc.logger.Debug("Filter applied", "filter", entry.Type.ID, "value", value,
				"before", before, "after", len(filtered))
			elements = filtered
		}
	}
	return elements, nil
}

// pruneByChildren keeps the elements in which every child locator resolves to
// at least one element.
func (uc *UseCase) pruneByChildren(ctx context.Context, elements []output.Element, children []*entity.Locator) ([]output.Element, error) {
	if len(children) == 0 {
		return elements, nil
	}

	result := make([]output.Element, 0, len(elements))
	for _, el := range elements {
		ok, err := uc.hasAllChildren(ctx, el, children)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, el)
		}
	}
	return result, nil
}

func (uc *UseCase) hasAllChildren(ctx context.Context, el output.Element, children []*entity.Locator) (bool, error) {
	for _, child := range children {
		found, err := uc.FindElements(ctx, el, child)
		if err != nil {
			return false, err
		}
		if len(found) == 0 {
			uc.logger.Debug("Element pruned, child locator matched nothing", "child", child.String())
			return false, nil
		}
	}
	return true, nil
}
