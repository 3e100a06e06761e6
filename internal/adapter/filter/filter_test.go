package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/fakedom"
)

func allFilters() map[string]output.FilterStrategy {
	link := LinkConfig{CaseSensitive: true}
	return map[string]output.FilterStrategy{
		"textPart":              NewTextPartFilter(),
		"caseSensitiveText":     NewCaseSensitiveTextFilter(),
		"caseInsensitiveText":   NewCaseInsensitiveTextFilter(),
		"tooltip":               NewTooltipFilter(),
		"placeholder":           NewPlaceholderFilter(),
		"classAttributePart":    NewClassAttributePartFilter(),
		"imageSrcPart":          NewImageSrcPartFilter(),
		"validationIconSource":  NewValidationIconSourceFilter(),
		"linkUrl":               NewLinkURLFilter(link),
		"linkUrlPart":           NewLinkURLPartFilter(link),
		"state":                 NewStateFilter(),
		"dropDownState":         NewDropDownStateFilter(),
		"fieldText":             NewFieldTextFilter(),
		"fieldTextPart":         NewFieldTextPartFilter(),
		"dropDownText":          NewDropDownTextFilter(),
		"relativeToParentWidth": NewRelativeToParentWidthFilter(),
	}
}

func TestFilters_EmptyValueIsIdentityWithoutCalls(t *testing.T) {
	for name, f := range allFilters() {
		t.Run(name, func(t *testing.T) {
			a := fakedom.NewElement("a").WithText("x")
			b := fakedom.NewElement("b").Hidden()
			input := fakedom.Elements(a, b)

			got, err := f.Filter(context.Background(), input, "")
			require.NoError(t, err)
			assert.Equal(t, input, got)
			assert.Zero(t, a.TotalCalls())
			assert.Zero(t, b.TotalCalls())
		})
	}
}

func TestFilters_Idempotent(t *testing.T) {
	ctx := context.Background()
	elements := fakedom.Elements(
		fakedom.NewElement("1").WithText("Sign in").WithAttr("title", "Sign in").WithAttr("class", "btn primary"),
		fakedom.NewElement("2").WithText("sign IN").WithAttr("href", "https://example.com/login?next=1").Disabled(),
		fakedom.NewElement("3").WithText("Register").WithAttr("src", "/img/logo.png").
			WithCSS("background-image", `url("error.svg")`),
	)
	values := map[string]string{
		"textPart":             "in",
		"caseSensitiveText":    "Sign in",
		"caseInsensitiveText":  "sign in",
		"tooltip":              "Sign in",
		"placeholder":          "Email",
		"classAttributePart":   "primary",
		"imageSrcPart":         "logo",
		"validationIconSource": "error.svg",
		"linkUrl":              "/login?next=1",
		"linkUrlPart":          "login",
		"state":                "ENABLED",
		"dropDownState":        "ENABLED",
		"fieldText":            "x",
		"fieldTextPart":        "x",
		"dropDownText":         "x",
	}

	for name, f := range allFilters() {
		value, ok := values[name]
		if !ok {
			continue
		}
		t.Run(name, func(t *testing.T) {
			once, err := f.Filter(ctx, elements, value)
			require.NoError(t, err)
			twice, err := f.Filter(ctx, once, value)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func ids(elements []output.Element) []string {
	result := make([]string, len(elements))
	for i, el := range elements {
		result[i] = el.ID()
	}
	return result
}

func TestTextFilters(t *testing.T) {
	ctx := context.Background()
	elements := fakedom.Elements(
		fakedom.NewElement("exact").WithText("  Sign   in "),
		fakedom.NewElement("upper").WithText("SIGN IN"),
		fakedom.NewElement("other").WithText("Sign out"),
	)

	tests := []struct {
		name   string
		filter output.FilterStrategy
		value  string
		want   []string
	}{
		{"case sensitive normalizes spaces", NewCaseSensitiveTextFilter(), "Sign in", []string{"exact"}},
		{"case insensitive", NewCaseInsensitiveTextFilter(), "sign in", []string{"exact", "upper"}},
		{"text part", NewTextPartFilter(), "Sign", []string{"exact", "other"}},
		{"text part no match", NewTextPartFilter(), "Help", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filter.Filter(ctx, elements, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestAttributeFilters(t *testing.T) {
	ctx := context.Background()
	withTitle := fakedom.NewElement("title").WithAttr("title", "Help").WithAttr("class", "icon icon-help")
	withPlaceholder := fakedom.NewElement("ph").WithAttr("placeholder", "Email")
	bare := fakedom.NewElement("bare")
	elements := fakedom.Elements(withTitle, withPlaceholder, bare)

	got, err := NewTooltipFilter().Filter(ctx, elements, "Help")
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, ids(got))

	got, err = NewPlaceholderFilter().Filter(ctx, elements, "Email")
	require.NoError(t, err)
	assert.Equal(t, []string{"ph"}, ids(got))

	got, err = NewClassAttributePartFilter().Filter(ctx, elements, "help")
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, ids(got))
}

func TestValidationIconSourceFilter(t *testing.T) {
	ctx := context.Background()
	icon := fakedom.NewElement("icon").WithCSS("background-image", `url("https://cdn/icons/error.svg")`)
	plain := fakedom.NewElement("plain").WithCSS("background-image", "none")

	got, err := NewValidationIconSourceFilter().Filter(ctx, fakedom.Elements(icon, plain), "https://cdn/icons/error.svg")
	require.NoError(t, err)
	assert.Equal(t, []string{"icon"}, ids(got))
}

func TestLinkURLFilter(t *testing.T) {
	ctx := context.Background()
	absolute := fakedom.NewElement("abs").WithAttr("href", "https://example.com/about?x=1#team")
	relative := fakedom.NewElement("rel").WithAttr("href", "/about")
	other := fakedom.NewElement("other").WithAttr("href", "https://example.com/contact")
	noHref := fakedom.NewElement("none")
	elements := fakedom.Elements(absolute, relative, other, noHref)

	tests := []struct {
		name  string
		cfg   LinkConfig
		value string
		want  []string
	}{
		{"exact absolute", LinkConfig{CaseSensitive: true}, "https://example.com/about?x=1#team", []string{"abs"}},
		{"relative value matches path query fragment", LinkConfig{CaseSensitive: true}, "/about?x=1#team", []string{"abs"}},
		{"relative value equals relative href", LinkConfig{CaseSensitive: true}, "/about", []string{"rel"}},
		{"case sensitive", LinkConfig{CaseSensitive: true}, "/ABOUT", []string{}},
		{"case insensitive", LinkConfig{CaseSensitive: false}, "/ABOUT", []string{"rel"}},
		{"other host", LinkConfig{CaseSensitive: true}, "https://other.com/about?x=1#team", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLinkURLFilter(tt.cfg).Filter(ctx, elements, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	got, err := NewLinkURLPartFilter(LinkConfig{CaseSensitive: true}).Filter(ctx, elements, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"abs", "other"}, ids(got))
}

func TestStateFilter_MultipleValuesAreConjunction(t *testing.T) {
	ctx := context.Background()
	enabledSelected := fakedom.NewElement("es").Selected()
	enabledOnly := fakedom.NewElement("e")
	disabledSelected := fakedom.NewElement("ds").Disabled().Selected()
	elements := fakedom.Elements(enabledSelected, enabledOnly, disabledSelected)

	f := NewStateFilter()
	step, err := f.Filter(ctx, elements, "ENABLED")
	require.NoError(t, err)
	step, err = f.Filter(ctx, step, "selected")
	require.NoError(t, err)

	assert.Equal(t, []string{"es"}, ids(step))
}

func TestStateFilter_States(t *testing.T) {
	ctx := context.Background()
	hidden := fakedom.NewElement("hidden").Hidden()
	visible := fakedom.NewElement("visible")
	elements := fakedom.Elements(hidden, visible)

	got, err := NewStateFilter().Filter(ctx, elements, "NOT_VISIBLE")
	require.NoError(t, err)
	assert.Equal(t, []string{"hidden"}, ids(got))

	got, err = NewStateFilter().Filter(ctx, elements, "not selected")
	require.NoError(t, err)
	assert.Equal(t, []string{"hidden", "visible"}, ids(got))

	_, err = NewStateFilter().Filter(ctx, elements, "CLICKABLE")
	assert.ErrorIs(t, err, entity.ErrInvalidFilterValue)
}

func TestStateFilter_ReadsLiveState(t *testing.T) {
	ctx := context.Background()
	box := fakedom.NewElement("box")
	elements := fakedom.Elements(box)

	got, err := NewStateFilter().Filter(ctx, elements, "SELECTED")
	require.NoError(t, err)
	assert.Empty(t, got)

	box.SetSelected(true)
	got, err = NewStateFilter().Filter(ctx, elements, "SELECTED")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDropDownStateFilter_KeepsOnlySelects(t *testing.T) {
	ctx := context.Background()
	sel := fakedom.NewElement("select").WithTag("select")
	input := fakedom.NewElement("input").WithTag("input")

	got, err := NewDropDownStateFilter().Filter(ctx, fakedom.Elements(sel, input), "ENABLED")
	require.NoError(t, err)
	assert.Equal(t, []string{"select"}, ids(got))
}

func dropDown(id string, options ...*fakedom.Element) *fakedom.Element {
	sel := fakedom.NewElement(id).WithTag("select")
	sel.On(optionsQuery, fakedom.Elements(options...)...)
	return sel
}

func option(text string, selected bool) *fakedom.Element {
	o := fakedom.NewElement(text).WithTag("option").WithText(text)
	if selected {
		o.Selected()
	}
	return o
}

func TestDropDownTextFilter(t *testing.T) {
	ctx := context.Background()
	green := dropDown("green", option("Red", false), option("Green", true))
	red := dropDown("red", option("Red", true), option("Green", false))
	none := dropDown("none", option("Red", false), option("Green", false))
	multi := dropDown("multi", option("Red", true), option("Green", true))

	got, err := NewDropDownTextFilter().Filter(ctx, fakedom.Elements(green, red, none, multi), "Green")
	require.NoError(t, err)
	assert.Equal(t, []string{"green", "multi"}, ids(got))
}

func TestFieldTextFilters(t *testing.T) {
	ctx := context.Background()
	name := fakedom.NewElement("name").WithTag("input").WithAttr("value", "John Smith")
	empty := fakedom.NewElement("empty").WithTag("textarea")
	color := dropDown("color", option("Dark green", true))
	elements := fakedom.Elements(name, empty, color)

	got, err := NewFieldTextFilter().Filter(ctx, elements, "John Smith")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, ids(got))

	got, err = NewFieldTextPartFilter().Filter(ctx, elements, "green")
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, ids(got))

	got, err = NewFieldTextPartFilter().Filter(ctx, elements, "Smith")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, ids(got))
}

func TestRelativeToParentWidthFilter(t *testing.T) {
	ctx := context.Background()
	parent := fakedom.NewElement("parent").WithRect(0, 0, 300, 10)
	zeroParent := fakedom.NewElement("zero").WithRect(0, 0, 0, 10)

	third := fakedom.NewElement("third").WithRect(0, 0, 100, 10)
	third.On(entity.ByXPath(".."), parent)
	half := fakedom.NewElement("half").WithRect(0, 0, 150, 10)
	half.On(entity.ByXPath(".."), parent)
	orphan := fakedom.NewElement("orphan").WithRect(0, 0, 100, 10)
	inZero := fakedom.NewElement("inZero").WithRect(0, 0, 0, 10)
	inZero.On(entity.ByXPath(".."), zeroParent)

	elements := fakedom.Elements(third, half, orphan, inZero)

	got, err := NewRelativeToParentWidthFilter().Filter(ctx, elements, "33")
	require.NoError(t, err)
	assert.Equal(t, []string{"third"}, ids(got), "33.33 percent floors to 33")

	got, err = NewRelativeToParentWidthFilter().Filter(ctx, elements, "50")
	require.NoError(t, err)
	assert.Equal(t, []string{"half"}, ids(got))

	_, err = NewRelativeToParentWidthFilter().Filter(ctx, elements, "half")
	assert.ErrorIs(t, err, entity.ErrInvalidFilterValue)
}

func TestPredicate_PropagatesDriverErrors(t *testing.T) {
	broken := fakedom.NewElement("broken")
	broken.FailWith(entity.ErrDriver.WithMessage("stale element"))

	_, err := NewDropDownTextFilter().Filter(context.Background(), fakedom.Elements(broken), "x")
	assert.ErrorIs(t, err, entity.ErrDriver)
}
