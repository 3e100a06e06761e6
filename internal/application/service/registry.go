package service

import (
	"fmt"
	"sort"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

var _ entity.LocatorTypes = (*LocatorTypeRegistry)(nil)

// LocatorTypeRegistry is the validated catalog of locator types. It is built
// once and shared read-only.
type LocatorTypeRegistry struct {
	types map[entity.LocatorTypeID]*entity.LocatorType
	keys  map[string]entity.LocatorTypeID
	order map[entity.LocatorTypeID]int
}

func NewLocatorTypeRegistry(types ...*entity.LocatorType) (*LocatorTypeRegistry, error) {
	r := &LocatorTypeRegistry{
		types: make(map[entity.LocatorTypeID]*entity.LocatorType, len(types)),
		keys:  make(map[string]entity.LocatorTypeID, len(types)),
		order: make(map[entity.LocatorTypeID]int, len(types)),
	}

	for i, t := range types {
		if _, exists := r.keys[t.ID.Key()]; exists {
			return nil, registryError("locator type '%s' is registered twice", t.ID)
		}
		r.types[t.ID] = t
		r.keys[t.ID.Key()] = t.ID
		r.order[t.ID] = i
	}

	for _, t := range types {
		for _, f := range t.Filters {
			if _, ok := r.types[f]; !ok {
				return nil, registryError("locator type '%s' accepts unknown filter '%s'", t.ID, f)
			}
		}
		for _, c := range t.Competing {
			other, ok := r.types[c]
			if !ok {
				return nil, registryError("locator type '%s' competes with unknown type '%s'", t.ID, c)
			}
			if !other.CompetesWith(t.ID) {
				return nil, registryError("competing types are registered asymmetrically: '%s' lists '%s' but not vice versa", t.ID, c)
			}
		}
	}

	return r, nil
}

func registryError(format string, args ...any) error {
	return entity.ErrInvalidRegistry.WithMessage(fmt.Sprintf(format, args...))
}

func (r *LocatorTypeRegistry) Lookup(id entity.LocatorTypeID) (*entity.LocatorType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// LookupName resolves a type by its identifier in any letter case.
func (r *LocatorTypeRegistry) LookupName(name string) (*entity.LocatorType, bool) {
	id, ok := r.keys[entity.LocatorTypeID(name).Key()]
	if !ok {
		return nil, false
	}
	return r.types[id], true
}

func (r *LocatorTypeRegistry) Order(id entity.LocatorTypeID) int {
	if i, ok := r.order[id]; ok {
		return i
	}
	return -1
}

// All returns the registered types in declaration order.
func (r *LocatorTypeRegistry) All() []*entity.LocatorType {
	result := make([]*entity.LocatorType, 0, len(r.types))
	for _, t := range r.types {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return r.order[result[i].ID] < r.order[result[j].ID]
	})
	return result
}

var _ output.StrategyRegistry = (*StrategyRegistryImpl)(nil)

type StrategyRegistryImpl struct {
	searches map[entity.LocatorTypeID]output.SearchStrategy
	filters  map[entity.LocatorTypeID]output.FilterStrategy
}

func NewStrategyRegistry() *StrategyRegistryImpl {
	return &StrategyRegistryImpl{
		searches: make(map[entity.LocatorTypeID]output.SearchStrategy),
		filters:  make(map[entity.LocatorTypeID]output.FilterStrategy),
	}
}

func (r *StrategyRegistryImpl) RegisterSearch(id entity.LocatorTypeID, s output.SearchStrategy) {
	r.searches[id] = s
}

func (r *StrategyRegistryImpl) RegisterFilter(id entity.LocatorTypeID, f output.FilterStrategy) {
	r.filters[id] = f
}

func (r *StrategyRegistryImpl) Search(id entity.LocatorTypeID) (output.SearchStrategy, bool) {
	s, ok := r.searches[id]
	return s, ok
}

func (r *StrategyRegistryImpl) Filter(id entity.LocatorTypeID) (output.FilterStrategy, bool) {
	f, ok := r.filters[id]
	return f, ok
}

// Verify reports every catalog entry that cannot be executed: search types
// without a direct query or a search strategy, and filter kinds without a
// filter strategy.
func (r *StrategyRegistryImpl) Verify(types *LocatorTypeRegistry) error {
	for _, t := range types.All() {
		if !t.FilterOnly && !t.HasQuery() {
			if _, ok := r.searches[t.ID]; !ok {
				return entity.ErrMissingStrategy.WithMessage(fmt.Sprintf("no search strategy registered for '%s'", t.Label))
			}
		}
		for _, f := range t.Filters {
			if _, ok := r.filters[f]; !ok {
				return entity.ErrMissingStrategy.WithMessage(fmt.Sprintf("no filter strategy registered for '%s'", f))
			}
		}
	}
	return nil
}
