package search

import (
	"context"
	"fmt"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/input"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/application/service"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

var _ output.SearchStrategy = (*RelativeSearch)(nil)

// LocatorResolver resolves nested locators through the full search pipeline.
type LocatorResolver interface {
	FindElements(ctx context.Context, sc output.SearchContext, locator *entity.Locator) ([]output.Element, error)
}

// RelativeQuery is a structural anchor constrained by positions relative to
// already resolved reference elements.
type RelativeQuery struct {
	Anchor      entity.By
	Constraints []RelativeConstraint
}

type RelativeConstraint struct {
	Position  entity.RelativePosition
	Reference output.Element
	Rect      entity.Rect
}

func (q RelativeQuery) String() string {
	s := q.Anchor.String()
	for _, c := range q.Constraints {
		s += fmt.Sprintf(" %s %s", c.Position, c.Reference.ID())
	}
	return s
}

// RelativeSearch resolves "root>>position(other)" expressions.
type RelativeSearch struct {
	resolver LocatorResolver
	parser   input.LocatorParser
	finder   output.ElementFinder
	log      output.LoggerPort
}

func NewRelativeSearch(resolver LocatorResolver, parser input.LocatorParser, finder output.ElementFinder, log output.LoggerPort) *RelativeSearch {
	return &RelativeSearch{
		resolver: resolver,
		parser:   parser,
		finder:   finder,
		log:      log,
	}
}

func (s *RelativeSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	expr, err := service.ParseRelativeExpression(params.Value())
	if err != nil {
		return nil, err
	}

	root, err := s.parser.Parse(expr.Root)
	if err != nil {
		return nil, entity.ErrInvalidLocatorFormat.WithMessage(
			"Incorrect relative locator format - unable to parse root element locator").WithCause(err)
	}

	rootElements, err := s.resolver.FindElements(ctx, sc, root)
	if err != nil {
		return nil, err
	}
	if len(rootElements) == 0 {
		s.log.Info("No elements found by relative root locator", "locator", root.String())
		return nil, nil
	}

	if !root.SearchType().HasQuery() {
		return nil, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf(
			"Relative locator root must be a structural query, but '%s' search is used", root.SearchType().Label))
	}

	query := RelativeQuery{Anchor: root.SearchType().BuildQuery(root.Parameters().Value())}
	for _, clause := range expr.Clauses {
		other, err := s.parser.Parse(clause.Locator)
		if err != nil {
			return nil, err
		}
		references, err := s.resolver.FindElements(ctx, sc, other)
		if err != nil {
			return nil, err
		}
		if len(references) == 0 {
			s.log.Info("No reference element found for relative position", "position", clause.Position.String(),
				"locator", other.String())
			return nil, nil
		}
		reference := output.Unwrap(references[0])
		rect, err := reference.Geometry(ctx)
		if err != nil {
			return nil, err
		}
		query.Constraints = append(query.Constraints, RelativeConstraint{
			Position:  clause.Position,
			Reference: reference,
			Rect:      rect,
		})
	}

	result, err := s.execute(ctx, sc, query, params)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		s.log.Info("Elements located by relative root were found, but none of them is placed in the expected position",
			"query", query.String())
	}
	return result, nil
}

func (s *RelativeSearch) execute(ctx context.Context, sc output.SearchContext, query RelativeQuery, params entity.SearchParameters) ([]output.Element, error) {
	candidates, err := s.finder.FindElements(ctx, sc, query.Anchor, params)
	if err != nil {
		return nil, err
	}

	references := make(map[string]struct{}, len(query.Constraints))
	for _, c := range query.Constraints {
		references[c.Reference.ID()] = struct{}{}
	}

	result := make([]output.Element, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = output.Unwrap(candidate)
		if _, isReference := references[candidate.ID()]; isReference {
			continue
		}
		rect, err := candidate.Geometry(ctx)
		if err != nil {
			return nil, err
		}
		if matchesAll(rect, query.Constraints) {
			result = append(result, candidate)
		}
	}
	return result, nil
}

func matchesAll(rect entity.Rect, constraints []RelativeConstraint) bool {
	for _, c := range constraints {
		if !c.Position.Matches(rect, c.Rect) {
			return false
		}
	}
	return true
}
