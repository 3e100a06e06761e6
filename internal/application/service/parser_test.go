package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

func newParser(t *testing.T) *LocatorParser {
	t.Helper()
	types, err := NewDefaultLocatorTypeRegistry()
	require.NoError(t, err)
	return NewLocatorParser(types)
}

func TestLocatorParser_Parse(t *testing.T) {
	parser := newParser(t)

	tests := []struct {
		input      string
		searchType entity.LocatorTypeID
		value      string
		visibility entity.Visibility
		filters    map[entity.LocatorTypeID][]string
	}{
		{
			input:      "id(submit)",
			searchType: entity.ID,
			value:      "submit",
			visibility: entity.Visible,
		},
		{
			input:      "By.xpath(//div[contains(@class, 'a')])",
			searchType: entity.XPath,
			value:      "//div[contains(@class, 'a')]",
			visibility: entity.Visible,
		},
		{
			input:      "  CSSSELECTOR(.menu > li):i",
			searchType: entity.CSSSelector,
			value:      ".menu > li",
			visibility: entity.Invisible,
		},
		{
			input:      "xpath(//a):all->filter.textPart(Sign).STATE(ENABLED).textPart(in)",
			searchType: entity.XPath,
			value:      "//a",
			visibility: entity.All,
			filters: map[entity.LocatorTypeID][]string{
				entity.TextPart: {"Sign", "in"},
				entity.State:    {"ENABLED"},
			},
		},
		{
			input:      "caseSensitiveText(Don't stop)->filter.tooltip(It's (fine))",
			searchType: entity.CaseSensitiveText,
			value:      "Don't stop",
			visibility: entity.Visible,
			filters: map[entity.LocatorTypeID][]string{
				entity.Tooltip: {"It's (fine)"},
			},
		},
		{
			input:      "buttonName()",
			searchType: entity.ButtonName,
			value:      "",
			visibility: entity.Visible,
		},
		{
			input:      "relative(xpath(//a)>>near10px(id(x))>>below(linkText(Home)))",
			searchType: entity.Relative,
			value:      "xpath(//a)>>near10px(id(x))>>below(linkText(Home))",
			visibility: entity.Visible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			locator, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.searchType, locator.SearchType().ID)
			assert.Equal(t, tt.value, locator.Parameters().Value())
			assert.Equal(t, tt.visibility, locator.Parameters().Visibility())

			filters := make(map[entity.LocatorTypeID][]string)
			for _, f := range locator.Filters() {
				filters[f.Type.ID] = f.Values
			}
			if tt.filters == nil {
				assert.Empty(t, filters)
			} else {
				assert.Equal(t, tt.filters, filters)
			}
		})
	}
}

func TestLocatorParser_Errors(t *testing.T) {
	parser := newParser(t)

	tests := []struct {
		input    string
		sentinel error
	}{
		{"submit", entity.ErrInvalidLocatorFormat},
		{"id(submit", entity.ErrInvalidLocatorFormat},
		{"id(a)b", entity.ErrInvalidLocatorFormat},
		{"id(a)->filter", entity.ErrInvalidLocatorFormat},
		{"id(a)->filter textPart(x)", entity.ErrInvalidLocatorFormat},
		{"id(a):sometimes", entity.ErrInvalidLocatorFormat},
		{"my-type(a)", entity.ErrInvalidLocatorFormat},
		{"unknown(a)", entity.ErrUnknownLocatorType},
		{"id(a)->filter.unknown(x)", entity.ErrUnknownLocatorType},
		{"textPart(a)", entity.ErrUnknownLocatorType},
		{"imageSrc(a.png)->filter.placeholder(x)", entity.ErrUnsupportedFilter},
		{"caseSensitiveText(a)->filter.caseInsensitiveText(a)", entity.ErrCompetingAttributes},
		{"id(a)->filter.state(BROKEN)", entity.ErrInvalidFilterValue},
		{"relative(xpath(//a)>>nearby(id(x)))", entity.ErrInvalidNearFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestParseRelativeExpression(t *testing.T) {
	expr, err := ParseRelativeExpression(" xpath(//a[text()='>>'])>>above( id(ref) )>>near25px(xpath(//b)) ")
	require.NoError(t, err)

	assert.Equal(t, "xpath(//a[text()='>>'])", expr.Root)
	require.Len(t, expr.Clauses, 2)
	assert.Equal(t, entity.PositionAbove, expr.Clauses[0].Position.Position)
	assert.Equal(t, "id(ref)", expr.Clauses[0].Locator)
	assert.Equal(t, entity.RelativePosition{Position: entity.PositionNear, Distance: 25}, expr.Clauses[1].Position)
	assert.Equal(t, "xpath(//a[text()='>>'])>>above(id(ref))>>near25px(xpath(//b))", expr.String())
}

func TestParseRelativeExpression_Errors(t *testing.T) {
	tests := []struct {
		input    string
		sentinel error
	}{
		{"xpath(//a)", entity.ErrInvalidLocatorFormat},
		{"xpath(//a)>>", entity.ErrInvalidLocatorFormat},
		{"xpath(//a)>>above(id(x)) trailing", entity.ErrInvalidLocatorFormat},
		{"xpath(//a>>above(id(x))", entity.ErrInvalidLocatorFormat},
		{"xpath(//a)>>inside(id(x))", entity.ErrUnsupportedPosition},
		{"xpath(//a)>>nearSomePx(id(x))", entity.ErrInvalidNearFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseRelativeExpression(tt.input)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestLocatorParser_RelativeNearFormat(t *testing.T) {
	_, err := newParser(t).Parse("relative(xpath(/div)>>nearSomePx(id(x)))")
	require.ErrorIs(t, err, entity.ErrInvalidNearFormat)
	assert.ErrorContains(t, err, "Invalid near position format")
	assert.ErrorContains(t, err, "nearSomePx")
}
