package entity

import (
	"fmt"
	"strings"
)

// LocatorTypes resolves catalog entries by identifier.
type LocatorTypes interface {
	Lookup(id LocatorTypeID) (*LocatorType, bool)
	Order(id LocatorTypeID) int
}

type FilterEntry struct {
	Type   *LocatorType
	Values []string
}

// Locator is the validated, read-only description of an element search.
type Locator struct {
	searchType *LocatorType
	parameters SearchParameters
	filters    []FilterEntry
	children   []*Locator
}

func (l *Locator) SearchType() *LocatorType {
	return l.searchType
}

func (l *Locator) Parameters() SearchParameters {
	return l.parameters
}

// Filters returns the filter kinds in the order they were first added.
func (l *Locator) Filters() []FilterEntry {
	result := make([]FilterEntry, len(l.filters))
	for i, f := range l.filters {
		result[i] = FilterEntry{Type: f.Type, Values: append([]string(nil), f.Values...)}
	}
	return result
}

func (l *Locator) Children() []*Locator {
	return append([]*Locator(nil), l.children...)
}

func (l *Locator) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(%s)", l.searchType.ID, l.parameters.Value())
	if l.parameters.Visibility() != Visible {
		fmt.Fprintf(&sb, ":%s", l.parameters.Visibility())
	}
	if len(l.filters) > 0 {
		sb.WriteString("->filter")
		for _, f := range l.filters {
			for _, v := range f.Values {
				fmt.Fprintf(&sb, ".%s(%s)", f.Type.ID, v)
			}
		}
	}
	if len(l.children) > 0 {
		children := make([]string, len(l.children))
		for i, child := range l.children {
			children[i] = child.String()
		}
		fmt.Fprintf(&sb, " [%s]", strings.Join(children, ", "))
	}
	return sb.String()
}

type pendingFilter struct {
	id    LocatorTypeID
	value string
}

// LocatorBuilder accumulates a locator description. Every method returns a new
// builder, so a builder value can be reused as a template. Validation happens
// once, in Build.
type LocatorBuilder struct {
	types      LocatorTypes
	searchType LocatorTypeID
	parameters SearchParameters
	filters    []pendingFilter
	children   []*Locator
}

func NewLocatorBuilder(types LocatorTypes, searchType LocatorTypeID, parameters SearchParameters) LocatorBuilder {
	return LocatorBuilder{
		types:      types,
		searchType: searchType,
		parameters: parameters,
	}
}

func (b LocatorBuilder) Filter(id LocatorTypeID, value string) LocatorBuilder {
	filters := make([]pendingFilter, len(b.filters), len(b.filters)+1)
	copy(filters, b.filters)
	b.filters = append(filters, pendingFilter{id: id, value: value})
	return b
}

func (b LocatorBuilder) Child(child *Locator) LocatorBuilder {
	children := make([]*Locator, len(b.children), len(b.children)+1)
	copy(children, b.children)
	b.children = append(children, child)
	return b
}

func (b LocatorBuilder) Build() (*Locator, error) {
	searchType, ok := b.types.Lookup(b.searchType)
	if !ok {
		return nil, ErrUnknownLocatorType.WithMessage(fmt.Sprintf("Unsupported locator type: %s", b.searchType))
	}
	if searchType.FilterOnly {
		return nil, ErrUnknownLocatorType.WithMessage(fmt.Sprintf("'%s' can be used only as a filter", searchType.Label))
	}
	if searchType.ValidateValue != nil {
		if err := searchType.ValidateValue(b.parameters.Value()); err != nil {
			return nil, err
		}
	}

	present := []*LocatorType{searchType}
	var entries []FilterEntry
	index := make(map[LocatorTypeID]int)

	for _, pf := range b.filters {
		filterType, ok := b.types.Lookup(pf.id)
		if !ok {
			return nil, ErrUnknownLocatorType.WithMessage(fmt.Sprintf("Unsupported filter type: %s", pf.id))
		}
		if !searchType.IsFilterCompatible(filterType.ID) {
			return nil, ErrUnsupportedFilter.WithMessage(fmt.Sprintf("Filter by '%s' is not supported for '%s' search",
				filterType.Label, searchType.Label)).WithDetails(map[string]any{
				"search": searchType.ID.String(),
				"filter": filterType.ID.String(),
			})
		}
		if i, exists := index[filterType.ID]; exists {
			if err := validateFilterValue(filterType, pf.value); err != nil {
				return nil, err
			}
			entries[i].Values = append(entries[i].Values, pf.value)
			continue
		}
		for _, other := range present {
			if other.CompetesWith(filterType.ID) || filterType.CompetesWith(other.ID) {
				return nil, b.competingError(filterType, other)
			}
		}
		if err := validateFilterValue(filterType, pf.value); err != nil {
			return nil, err
		}
		index[filterType.ID] = len(entries)
		entries = append(entries, FilterEntry{Type: filterType, Values: []string{pf.value}})
		present = append(present, filterType)
	}

	return &Locator{
		searchType: searchType,
		parameters: b.parameters,
		filters:    entries,
		children:   append([]*Locator(nil), b.children...),
	}, nil
}

// competingError names the pair with the later registered kind first, so the
// message does not depend on which of the two was added first.
func (b LocatorBuilder) competingError(x, y *LocatorType) error {
	first, second := x, y
	if b.types.Order(y.ID) > b.types.Order(x.ID) {
		first, second = y, x
	}
	return ErrCompetingAttributes.WithMessage(fmt.Sprintf("Competing attributes: '%s' and '%s'",
		first.Label, second.Label)).WithDetails(map[string]any{
		"first":  first.ID.String(),
		"second": second.ID.String(),
	})
}

func validateFilterValue(t *LocatorType, value string) error {
	if t.ValidateValue == nil || value == "" {
		return nil
	}
	return t.ValidateValue(value)
}
