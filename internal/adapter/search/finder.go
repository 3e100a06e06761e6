package search

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

const defaultPollingInterval = 200 * time.Millisecond

var _ output.ElementFinder = (*Finder)(nil)

var errNothingFound = errors.New("no elements found yet")

type FinderConfig struct {
	// WaitTimeout bounds how long a search with wait-for-element polls for
	// the first match. Zero disables polling.
	WaitTimeout     time.Duration
	PollingInterval time.Duration
}

func DefaultFinderConfig() FinderConfig {
	return FinderConfig{
		WaitTimeout:     0,
		PollingInterval: defaultPollingInterval,
	}
}

// Finder runs structural queries and applies the visibility requirement of
// the search parameters to the result.
type Finder struct {
	cfg        FinderConfig
	visibility *VisibilityEvaluator
	log        output.LoggerPort
}

func NewFinder(cfg FinderConfig, log output.LoggerPort) *Finder {
	if cfg.PollingInterval <= 0 {
		cfg.PollingInterval = defaultPollingInterval
	}
	return &Finder{
		cfg:        cfg,
		visibility: NewVisibilityEvaluator(log),
		log:        log,
	}
}

func (f *Finder) FindElements(ctx context.Context, sc output.SearchContext, by entity.By, params entity.SearchParameters) ([]output.Element, error) {
	if sc == nil {
		f.log.Info("Search context is not set, skipping search", "query", by.String())
		return nil, nil
	}

	elements, err := f.query(ctx, sc, by, params.WaitForElement())
	if err != nil {
		return nil, err
	}
	f.log.Info("Total number of elements found", "query", by.String(), "count", len(elements))

	return f.visibility.Filter(ctx, elements, params.Visibility())
}

func (f *Finder) query(ctx context.Context, sc output.SearchContext, by entity.By, wait bool) ([]output.Element, error) {
	if !wait || f.cfg.WaitTimeout <= 0 {
		return sc.FindElements(ctx, by)
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.cfg.WaitTimeout)
	defer cancel()

	var elements []output.Element
	operation := func() error {
		found, err := sc.FindElements(ctx, by)
		if err != nil {
			return backoff.Permanent(err)
		}
		elements = found
		if len(found) == 0 {
			return errNothingFound
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.NewConstantBackOff(f.cfg.PollingInterval), waitCtx))
	switch {
	case err == nil:
		return elements, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, errNothingFound), errors.Is(err, context.DeadlineExceeded):
		f.log.Debug("No elements appeared within wait timeout", "query", by.String(), "timeout", f.cfg.WaitTimeout.String())
		return nil, nil
	default:
		return nil, err
	}
}
