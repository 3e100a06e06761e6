package playwright

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var (
	_ output.SearchContext = (*pageContext)(nil)
	_ output.Element       = (*element)(nil)
	_ output.Scroller      = (*element)(nil)
)

// handleQuerier is the query part shared by playwright.Page and
// playwright.ElementHandle.
type handleQuerier interface {
	QuerySelectorAll(selector string) ([]playwright.ElementHandle, error)
}

// Selector converts a structural query into a Playwright selector.
func Selector(by entity.By) string {
	if expr, ok := xpath.FromBy(by); ok {
		return "xpath=" + expr
	}
	return "css=" + by.Value
}

type pageContext struct {
	page playwright.Page
}

func (p *pageContext) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	return findElements(p.page, by)
}

func findElements(q handleQuerier, by entity.By) ([]output.Element, error) {
	handles, err := q.QuerySelectorAll(Selector(by))
	if err != nil {
		return nil, driverError(err, "query %s failed", by)
	}

	result := make([]output.Element, 0, len(handles))
	for _, h := range handles {
		id, err := identify(h)
		if err != nil {
			return nil, err
		}
		result = append(result, &element{h: h, id: id})
	}
	return result, nil
}

// identify tags the node with a generated id on first sight, so separate
// handles of one node share an id.
func identify(h playwright.ElementHandle) (string, error) {
	res, err := h.Evaluate(`(el, id) => el.__locateId || (el.__locateId = id)`, uuid.NewString())
	if err != nil {
		return "", driverError(err, "tag element failed")
	}
	id, ok := res.(string)
	if !ok {
		return "", entity.ErrDriver.WithMessage(fmt.Sprintf("unexpected element id %v", res))
	}
	return id, nil
}

type element struct {
	h  playwright.ElementHandle
	id string
}

func (e *element) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	return findElements(e.h, by)
}

func (e *element) ID() string {
	return e.id
}

func (e *element) evalString(expression string, arg ...interface{}) (string, bool, error) {
	res, err := e.h.Evaluate(expression, arg...)
	if err != nil {
		return "", false, err
	}
	if res == nil {
		return "", false, nil
	}
	return fmt.Sprint(res), true, nil
}

func (e *element) TagName(_ context.Context) (string, error) {
	tag, _, err := e.evalString(`el => el.tagName.toLowerCase()`)
	if err != nil {
		return "", driverError(err, "read tag name failed")
	}
	return tag, nil
}

func (e *element) Text(_ context.Context) (string, error) {
	text, err := e.h.InnerText()
	if err != nil {
		return "", driverError(err, "read text failed")
	}
	return text, nil
}

func (e *element) Attribute(_ context.Context, name string) (string, bool, error) {
	value, present, err := e.evalString(
		`(el, name) => (name === 'value' && 'value' in el) ? String(el.value) : el.getAttribute(name)`, name)
	if err != nil {
		return "", false, driverError(err, "read attribute %s failed", name)
	}
	return value, present, nil
}

func (e *element) CSSValue(_ context.Context, property string) (string, error) {
	value, _, err := e.evalString(`(el, p) => getComputedStyle(el).getPropertyValue(p)`, property)
	if err != nil {
		return "", driverError(err, "read css %s failed", property)
	}
	return value, nil
}

func (e *element) IsDisplayed(_ context.Context) (bool, error) {
	visible, err := e.h.IsVisible()
	if err != nil {
		return false, driverError(err, "check visibility failed")
	}
	return visible, nil
}

func (e *element) IsEnabled(_ context.Context) (bool, error) {
	enabled, err := e.h.IsEnabled()
	if err != nil {
		return false, driverError(err, "check enabled failed")
	}
	return enabled, nil
}

func (e *element) IsSelected(_ context.Context) (bool, error) {
	res, err := e.h.Evaluate(`el => !!(el.checked || el.selected)`)
	if err != nil {
		return false, driverError(err, "check selected failed")
	}
	selected, _ := res.(bool)
	return selected, nil
}

func (e *element) Geometry(_ context.Context) (entity.Rect, error) {
	box, err := e.h.BoundingBox()
	if err != nil {
		return entity.Rect{}, driverError(err, "read geometry failed")
	}
	if box == nil {
		return entity.Rect{}, nil
	}
	return entity.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *element) ScrollIntoView(_ context.Context) error {
	if err := e.h.ScrollIntoViewIfNeeded(); err != nil {
		return driverError(err, "scroll into view failed")
	}
	return nil
}

func driverError(err error, format string, args ...any) error {
	return entity.ErrDriver.WithMessage(fmt.Sprintf(format, args...)).WithCause(err)
}
