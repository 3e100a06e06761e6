package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividus-framework/vividus-sub002/internal/adapter/filter"
	adapter "github.com/vividus-framework/vividus-sub002/internal/adapter/search"
	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/application/service"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
	"github.com/vividus-framework/vividus-sub002/internal/fakedom"
	"github.com/vividus-framework/vividus-sub002/internal/infrastructure/logger"
)

type fixture struct {
	parser     *service.LocatorParser
	strategies *service.StrategyRegistryImpl
	uc         *UseCase
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	types, err := service.NewDefaultLocatorTypeRegistry()
	require.NoError(t, err)

	log := logger.NewNop()
	finder := adapter.NewFinder(adapter.DefaultFinderConfig(), log)
	strategies := service.NewStrategyRegistry()
	strategies.RegisterFilter(entity.TextPart, filter.NewTextPartFilter())
	strategies.RegisterFilter(entity.State, filter.NewStateFilter())

	return fixture{
		parser:     service.NewLocatorParser(types),
		strategies: strategies,
		uc:         New(strategies, finder, log),
	}
}

func (f fixture) parse(t *testing.T, s string) *entity.Locator {
	t.Helper()
	locator, err := f.parser.Parse(s)
	require.NoError(t, err)
	return locator
}

func ids(elements []output.Element) []string {
	result := make([]string, len(elements))
	for i, el := range elements {
		result[i] = el.ID()
	}
	return result
}

var links = entity.ByXPath("//a")

func TestUseCase_NilSearchContext(t *testing.T) {
	f := newFixture(t)

	found, err := f.uc.FindElements(context.Background(), nil, f.parse(t, "xpath(//a)"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUseCase_FiltersApplyInOrder(t *testing.T) {
	f := newFixture(t)
	signIn := fakedom.NewElement("sign-in").WithText("Sign in")
	signUp := fakedom.NewElement("sign-up").WithText("Sign up").Disabled()
	help := fakedom.NewElement("help").WithText("Help")
	sc := fakedom.NewContext().On(links, signIn, signUp, help)

	found, err := f.uc.FindElements(context.Background(), sc,
		f.parse(t, "xpath(//a)->filter.textPart(Sign).state(ENABLED)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"sign-in"}, ids(found))

	assert.Zero(t, help.Calls("IsEnabled"), "state filter sees only text matches")
	assert.Equal(t, 1, signUp.Calls("IsEnabled"))
}

func TestUseCase_EmptySetStopsFilterChain(t *testing.T) {
	f := newFixture(t)
	help := fakedom.NewElement("help").WithText("Help")
	sc := fakedom.NewContext().On(links, help)

	found, err := f.uc.FindElements(context.Background(), sc,
		f.parse(t, "xpath(//a)->filter.textPart(Sign).state(ENABLED)"))
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Zero(t, help.Calls("IsEnabled"))
}

func TestUseCase_PrunesByChildLocators(t *testing.T) {
	f := newFixture(t)
	icon := entity.ByXPath(".//i")
	withIcon := fakedom.NewElement("with-icon")
	withIcon.On(icon, fakedom.NewElement("icon"))
	withoutIcon := fakedom.NewElement("without-icon")
	sc := fakedom.NewContext().On(links, withIcon, withoutIcon)

	child := f.parse(t, "xpath(.//i)")
	types, err := service.NewDefaultLocatorTypeRegistry()
	require.NoError(t, err)
	locator, err := entity.NewLocatorBuilder(types, entity.XPath, entity.NewSearchParameters("//a")).
		Child(child).
		Build()
	require.NoError(t, err)

	found, err := f.uc.FindElements(context.Background(), sc, locator)
	require.NoError(t, err)
	assert.Equal(t, []string{"with-icon"}, ids(found))
	assert.Equal(t, 1, withoutIcon.QueryCount(icon))
}

func TestUseCase_MissingStrategies(t *testing.T) {
	f := newFixture(t)
	sc := fakedom.NewContext().On(links, fakedom.NewElement("a"))

	_, err := f.uc.FindElements(context.Background(), sc, f.parse(t, "buttonName(Go)"))
	require.ErrorIs(t, err, entity.ErrMissingStrategy)
	assert.EqualError(t, err, "No search strategy is registered for 'buttonName'")

	_, err = f.uc.FindElements(context.Background(), sc, f.parse(t, "xpath(//a)->filter.tooltip(x)"))
	require.ErrorIs(t, err, entity.ErrMissingStrategy)
	assert.EqualError(t, err, "No filter strategy is registered for 'tooltip'")
}

func TestUseCase_RegisteredSearchStrategy(t *testing.T) {
	f := newFixture(t)
	log := logger.NewNop()
	f.strategies.RegisterSearch(entity.ButtonName,
		adapter.NewButtonNameSearch(adapter.NewFinder(adapter.DefaultFinderConfig(), log), log))

	button := fakedom.NewElement("go")
	sc := fakedom.NewContext()
	sc.On(adapter.ButtonNameQuery(xpath.CaseSensitive, "Go"), button)

	found, ok, err := f.uc.FindElement(context.Background(), sc, f.parse(t, "buttonName(Go)"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "go", found.ID())
}

func TestUseCase_DriverErrorPropagatesUnchanged(t *testing.T) {
	f := newFixture(t)
	driverErr := entity.ErrDriver.WithMessage("tab crashed")
	sc := fakedom.NewContext().FailWith(driverErr)

	_, ok, err := f.uc.FindElement(context.Background(), sc, f.parse(t, "xpath(//a)"))
	assert.False(t, ok)
	assert.Same(t, driverErr, err)
}

func TestUseCase_FindElementsBy(t *testing.T) {
	f := newFixture(t)
	hidden := fakedom.NewElement("hidden").Hidden()
	sc := fakedom.NewContext().On(links, hidden)

	found, err := f.uc.FindElementsBy(context.Background(), sc, links,
		entity.NewSearchParameters("").WithVisibility(entity.All))
	require.NoError(t, err)
	assert.Equal(t, []string{"hidden"}, ids(found))

	_, ok, err := f.uc.FindElement(context.Background(), sc, f.parse(t, "xpath(//a)"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUseCase_MultipleStateValuesAreConjunctive(t *testing.T) {
	f := newFixture(t)
	enabledShown := fakedom.NewElement("enabled-shown")
	enabledHidden := fakedom.NewElement("enabled-hidden").Hidden()
	disabledShown := fakedom.NewElement("disabled-shown").Disabled()
	sc := fakedom.NewContext().On(links, enabledShown, enabledHidden, disabledShown)

	found, err := f.uc.FindElements(context.Background(), sc,
		f.parse(t, "xpath(//a):all->filter.state(ENABLED).state(NOT_VISIBLE)"))
	require.NoError(t, err)
	assert.Equal(t, []string{"enabled-hidden"}, ids(found))

	assert.Zero(t, disabledShown.Calls("IsDisplayed"), "second value sees only the first value's survivors")
}
