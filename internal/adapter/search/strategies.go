package search

import (
	"context"

	"github.com/vividus-framework/vividus-sub002/internal/adapter/filter"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var (
	_ output.SearchStrategy = (*CaseSensitiveTextSearch)(nil)
	_ output.SearchStrategy = (*CaseInsensitiveTextSearch)(nil)
	_ output.SearchStrategy = (*ElementNameSearch)(nil)
	_ output.SearchStrategy = (*LinkTextSearch)(nil)
	_ output.SearchStrategy = (*LinkURLSearch)(nil)
	_ output.SearchStrategy = (*ButtonNameSearch)(nil)
	_ output.SearchStrategy = (*FieldNameSearch)(nil)
)

func textEquals(m xpath.TextMatch, value string) string {
	return m.Equals(".", value)
}

// CaseSensitiveTextSearch finds the innermost elements whose normalized text
// equals the value exactly.
type CaseSensitiveTextSearch struct {
	finder output.ElementFinder
}

func NewCaseSensitiveTextSearch(finder output.ElementFinder) *CaseSensitiveTextSearch {
	return &CaseSensitiveTextSearch{finder: finder}
}

func (s *CaseSensitiveTextSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	by := entity.ByXPath(xpath.Innermost(textEquals(xpath.CaseSensitive, params.Value())))
	return s.finder.FindElements(ctx, sc, by, params)
}

type CaseInsensitiveTextSearch struct {
	text textSearch
}

func NewCaseInsensitiveTextSearch(finder output.ElementFinder, log output.LoggerPort) *CaseInsensitiveTextSearch {
	return &CaseInsensitiveTextSearch{text: textSearch{finder: finder, log: log}}
}

func (s *CaseInsensitiveTextSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	return s.text.twoPhase(ctx, sc, params, CaseInsensitiveTextQuery)
}

func CaseInsensitiveTextQuery(m xpath.TextMatch, value string) entity.By {
	return entity.ByXPath(xpath.Innermost(textEquals(m, value)))
}

// ElementNameSearch matches elements by any attribute value or by text.
type ElementNameSearch struct {
	text textSearch
}

func NewElementNameSearch(finder output.ElementFinder, log output.LoggerPort) *ElementNameSearch {
	return &ElementNameSearch{text: textSearch{finder: finder, log: log}}
}

func (s *ElementNameSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	return s.text.twoPhase(ctx, sc, params, ElementNameQuery)
}

func ElementNameQuery(m xpath.TextMatch, value string) entity.By {
	return entity.ByXPath(xpath.Innermost(xpath.Or(m.AnyAttributeEquals(value), textEquals(m, value))))
}

type LinkTextSearch struct {
	text textSearch
}

func NewLinkTextSearch(finder output.ElementFinder, log output.LoggerPort) *LinkTextSearch {
	return &LinkTextSearch{text: textSearch{finder: finder, log: log}}
}

func (s *LinkTextSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	return s.text.transformAware(ctx, sc, params, LinkTextQuery)
}

func LinkTextQuery(m xpath.TextMatch, value string) entity.By {
	return entity.ByXPath(xpath.Innermost(xpath.And(xpath.LocalNameIn("a"), textEquals(m, value))))
}

// LinkURLSearch finds links by their whole href. Case folding follows the
// same link configuration the URL filters use.
type LinkURLSearch struct {
	finder output.ElementFinder
	match  xpath.TextMatch
}

func NewLinkURLSearch(finder output.ElementFinder, cfg filter.LinkConfig) *LinkURLSearch {
	match := xpath.CaseInsensitive
	if cfg.CaseSensitive {
		match = xpath.CaseSensitive
	}
	return &LinkURLSearch{finder: finder, match: match}
}

func (s *LinkURLSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	return s.finder.FindElements(ctx, sc, LinkURLQuery(s.match, params.Value()), params)
}

func LinkURLQuery(m xpath.TextMatch, value string) entity.By {
	return entity.ByXPath(".//a[" + m.Equals("@href", value) + "]")
}

// ButtonNameSearch matches <button> elements and button-like inputs by text
// or by any attribute value (name, value, aria-label, ...).
type ButtonNameSearch struct {
	text textSearch
}

func NewButtonNameSearch(finder output.ElementFinder, log output.LoggerPort) *ButtonNameSearch {
	return &ButtonNameSearch{text: textSearch{finder: finder, log: log}}
}

func (s *ButtonNameSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	return s.text.transformAware(ctx, sc, params, ButtonNameQuery)
}

var buttonTest = xpath.Or(
	xpath.LocalNameIn("button"),
	xpath.And(xpath.LocalNameIn("input"), "(@type='submit' or @type='button' or @type='reset')"),
)

func ButtonNameQuery(m xpath.TextMatch, value string) entity.By {
	return entity.ByXPath(xpath.Innermost(xpath.And(buttonTest,
		xpath.Or(m.AnyAttributeEquals(value), textEquals(m, value)))))
}

// FieldNameSearch matches editable fields by any attribute value or through
// a <label for> pointing at them.
type FieldNameSearch struct {
	text textSearch
}

func NewFieldNameSearch(finder output.ElementFinder, log output.LoggerPort) *FieldNameSearch {
	return &FieldNameSearch{text: textSearch{finder: finder, log: log}}
}

func (s *FieldNameSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	return s.text.twoPhase(ctx, sc, params, FieldNameQuery)
}

var fieldTest = xpath.Or(
	xpath.And(xpath.LocalNameIn("input"),
		"not(@type='hidden' or @type='submit' or @type='button' or @type='reset' or @type='image')"),
	xpath.LocalNameIn("textarea", "select"),
	"@contenteditable='true'",
)

func FieldNameQuery(m xpath.TextMatch, value string) entity.By {
	labelled := "@id=//label[" + textEquals(m, value) + "]/@for"
	return entity.ByXPath(xpath.Innermost(xpath.And(fieldTest, xpath.Or(m.AnyAttributeEquals(value), labelled))))
}
