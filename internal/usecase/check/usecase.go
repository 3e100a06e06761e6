package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/input"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

var _ input.SuiteChecker = (*UseCase)(nil)

type UseCase struct {
	browser output.BrowserPort
	parser  input.LocatorParser
	locator input.ElementLocator
	logger  output.LoggerPort
}

func New(
	browser output.BrowserPort,
	parser input.LocatorParser,
	locator input.ElementLocator,
	logger output.LoggerPort,
) *UseCase {
	return &UseCase{
		browser: browser,
		parser:  parser,
		locator: locator,
		logger:  logger,
	}
}

// Check resolves the cases in order, navigating only when a case names a
// page other than the one already open. Locator errors fail the case;
// navigation and driver errors abort the run.
func (uc *UseCase) Check(ctx context.Context, suite *entity.Suite) ([]input.CaseResult, error) {
	results := make([]input.CaseResult, 0, len(suite.Cases))
	opened := ""

	for _, c := range suite.Cases {
		log := uc.logger.WithField("case", c.Name)

		if c.URL != "" && c.URL != opened {
			if err := uc.browser.Navigate(ctx, c.URL); err != nil {
				return results, fmt.Errorf("open %s: %w", c.URL, err)
			}
			opened = c.URL
		}

		result, err := uc.checkCase(ctx, c)
		if err != nil {
			return results, err
		}

		if result.Passed {
			log.Info("Locator check passed", "found", result.Found)
		} else {
			log.Warn("Locator check failed", "found", result.Found, "expected", c.Expectation(), "error", result.Err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (uc *UseCase) checkCase(ctx context.Context, c entity.SuiteCase) (input.CaseResult, error) {
	result := input.CaseResult{Case: c}

	locator, err := uc.parser.Parse(c.Locator)
	if err != nil {
		result.Err = err
		return result, nil
	}

	doc, err := uc.browser.Document(ctx)
	if err != nil {
		return result, fmt.Errorf("read document: %w", err)
	}

	found, err := uc.locator.FindElements(ctx, doc, locator)
	if err != nil {
		if errors.Is(err, entity.ErrDriver) || ctx.Err() != nil {
			return result, err
		}
		result.Err = err
		return result, nil
	}

	result.Found = len(found)
	result.Passed = c.Satisfied(result.Found)
	return result, nil
}
