package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var (
	_ output.SearchContext = (*documentContext)(nil)
	_ output.Element       = (*element)(nil)
)

type documentContext struct {
	root *html.Node
}

func (d *documentContext) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	return query(d.root, by)
}

func query(n *html.Node, by entity.By) ([]output.Element, error) {
	var nodes []*html.Node
	if expr, ok := xpath.FromBy(by); ok {
		found, err := htmlquery.QueryAll(n, expr)
		if err != nil {
			return nil, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf("Invalid XPath '%s'", by.Value)).WithCause(err)
		}
		nodes = found
	} else {
		sel, err := cssSelect(n, by.Value)
		if err != nil {
			return nil, err
		}
		nodes = sel
	}

	result := make([]output.Element, 0, len(nodes))
	for _, node := range nodes {
		if node.Type != html.ElementNode {
			continue
		}
		result = append(result, &element{n: node})
	}
	return result, nil
}

// cssSelect runs a CSS selector over the descendants of n. The selector is
// compiled up front since goquery silently matches nothing for invalid ones.
func cssSelect(n *html.Node, selector string) ([]*html.Node, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf("Invalid CSS selector '%s'", selector)).WithCause(err)
	}
	return goquery.NewDocumentFromNode(n).FindMatcher(matcher).Nodes, nil
}

type element struct {
	n *html.Node
}

func (e *element) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	return query(e.n, by)
}

func (e *element) ID() string {
	return fmt.Sprintf("%p", e.n)
}

func (e *element) TagName(_ context.Context) (string, error) {
	return strings.ToLower(e.n.Data), nil
}

func (e *element) Text(_ context.Context) (string, error) {
	return htmlquery.InnerText(e.n), nil
}

func (e *element) Attribute(_ context.Context, name string) (string, bool, error) {
	if name == "value" && strings.EqualFold(e.n.Data, "textarea") {
		return htmlquery.InnerText(e.n), true, nil
	}
	value, ok := attr(e.n, name)
	return value, ok, nil
}

func (e *element) CSSValue(_ context.Context, property string) (string, error) {
	return cssValue(e.n, property), nil
}

func (e *element) IsDisplayed(_ context.Context) (bool, error) {
	return displayed(e.n), nil
}

func (e *element) IsEnabled(_ context.Context) (bool, error) {
	for n := e.n; n != nil && n.Type == html.ElementNode; n = n.Parent {
		switch strings.ToLower(n.Data) {
		case "input", "button", "select", "textarea", "option", "optgroup", "fieldset":
			if _, disabled := attr(n, "disabled"); disabled {
				return false, nil
			}
		}
	}
	return true, nil
}

func (e *element) IsSelected(_ context.Context) (bool, error) {
	switch strings.ToLower(e.n.Data) {
	case "input":
		_, checked := attr(e.n, "checked")
		return checked, nil
	case "option":
		return optionSelected(e.n), nil
	default:
		return false, nil
	}
}

func (e *element) Geometry(_ context.Context) (entity.Rect, error) {
	return entity.Rect{
		X:      pixels(cssValue(e.n, "left")),
		Y:      pixels(cssValue(e.n, "top")),
		Width:  pixels(cssValue(e.n, "width")),
		Height: pixels(cssValue(e.n, "height")),
	}, nil
}
