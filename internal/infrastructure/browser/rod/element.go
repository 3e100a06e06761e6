package rod

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var (
	_ output.SearchContext = (*pageContext)(nil)
	_ output.Element       = (*element)(nil)
	_ output.Scroller      = (*element)(nil)
)

// finder is the part of rod.Page and rod.Element used for queries.
type finder interface {
	ElementsX(xpath string) (rod.Elements, error)
	Elements(selector string) (rod.Elements, error)
}

type pageContext struct {
	page *rod.Page
}

func (p *pageContext) FindElements(ctx context.Context, by entity.By) ([]output.Element, error) {
	return findElements(ctx, p.page.Context(ctx), by)
}

func findElements(ctx context.Context, f finder, by entity.By) ([]output.Element, error) {
	var (
		found rod.Elements
		err   error
	)
	if expr, ok := xpath.FromBy(by); ok {
		found, err = f.ElementsX(expr)
	} else {
		found, err = f.Elements(by.Value)
	}
	if err != nil {
		return nil, driverError(err, "query %s failed", by)
	}

	result := make([]output.Element, 0, len(found))
	for _, el := range found {
		wrapped, err := newElement(ctx, el)
		if err != nil {
			return nil, err
		}
		result = append(result, wrapped)
	}
	return result, nil
}

type element struct {
	el  *rod.Element
	id  string
	tag string
}

func newElement(ctx context.Context, el *rod.Element) (*element, error) {
	node, err := el.Context(ctx).Describe(0, false)
	if err != nil {
		return nil, driverError(err, "describe element failed")
	}
	return &element{
		el:  el,
		id:  strconv.Itoa(int(node.BackendNodeID)),
		tag: strings.ToLower(node.LocalName),
	}, nil
}

func (e *element) FindElements(ctx context.Context, by entity.By) ([]output.Element, error) {
	return findElements(ctx, e.el.Context(ctx), by)
}

func (e *element) ID() string {
	return e.id
}

func (e *element) TagName(_ context.Context) (string, error) {
	return e.tag, nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	text, err := e.el.Context(ctx).Text()
	if err != nil {
		return "", driverError(err, "read text failed")
	}
	return text, nil
}

// Attribute reads the live property for form state and the markup attribute
// otherwise.
func (e *element) Attribute(ctx context.Context, name string) (string, bool, error) {
	el := e.el.Context(ctx)
	if name == "value" {
		prop, err := el.Property(name)
		if err != nil {
			return "", false, driverError(err, "read property %s failed", name)
		}
		if prop.Nil() {
			return "", false, nil
		}
		return prop.Str(), true, nil
	}

	attr, err := el.Attribute(name)
	if err != nil {
		return "", false, driverError(err, "read attribute %s failed", name)
	}
	if attr == nil {
		return "", false, nil
	}
	return *attr, true, nil
}

func (e *element) CSSValue(ctx context.Context, property string) (string, error) {
	res, err := e.el.Context(ctx).Eval(`(p) => getComputedStyle(this).getPropertyValue(p)`, property)
	if err != nil {
		return "", driverError(err, "read css %s failed", property)
	}
	return res.Value.Str(), nil
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	visible, err := e.el.Context(ctx).Visible()
	if err != nil {
		return false, driverError(err, "check visibility failed")
	}
	return visible, nil
}

func (e *element) IsEnabled(ctx context.Context) (bool, error) {
	disabled, err := e.boolProperty(ctx, "disabled")
	return !disabled, err
}

func (e *element) IsSelected(ctx context.Context) (bool, error) {
	property := "checked"
	if e.tag == "option" {
		property = "selected"
	}
	return e.boolProperty(ctx, property)
}

func (e *element) boolProperty(ctx context.Context, name string) (bool, error) {
	prop, err := e.el.Context(ctx).Property(name)
	if err != nil {
		return false, driverError(err, "read property %s failed", name)
	}
	return truthy(prop), nil
}

func truthy(v gson.JSON) bool {
	if v.Nil() {
		return false
	}
	if b, ok := v.Val().(bool); ok {
		return b
	}
	return false
}

func (e *element) Geometry(ctx context.Context) (entity.Rect, error) {
	shape, err := e.el.Context(ctx).Shape()
	if err != nil {
		return entity.Rect{}, driverError(err, "read geometry failed")
	}
	box := shape.Box()
	if box == nil {
		return entity.Rect{}, nil
	}
	return entity.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *element) ScrollIntoView(ctx context.Context) error {
	if err := e.el.Context(ctx).ScrollIntoView(); err != nil {
		return driverError(err, "scroll into view failed")
	}
	return nil
}

func driverError(err error, format string, args ...any) error {
	return entity.ErrDriver.WithMessage(fmt.Sprintf(format, args...)).WithCause(err)
}
