package input

import (
	"context"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

type ElementLocator interface {
	FindElements(ctx context.Context, sc output.SearchContext, locator *entity.Locator) ([]output.Element, error)
	FindElement(ctx context.Context, sc output.SearchContext, locator *entity.Locator) (output.Element, bool, error)
	FindElementsBy(ctx context.Context, sc output.SearchContext, by entity.By, params entity.SearchParameters) ([]output.Element, error)
}

// LocatorParser converts the textual locator form into a validated Locator.
type LocatorParser interface {
	Parse(locator string) (*entity.Locator, error)
}

type CaseResult struct {
	Case   entity.SuiteCase
	Found  int
	Passed bool
	// Err is set when the case could not be resolved, e.g. a malformed locator.
	Err error
}

// SuiteChecker resolves every case of a suite against the opened page.
type SuiteChecker interface {
	Check(ctx context.Context, suite *entity.Suite) ([]CaseResult, error)
}
