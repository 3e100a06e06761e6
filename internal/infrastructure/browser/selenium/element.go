package selenium

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tebeka/selenium"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

var (
	_ output.SearchContext = (*driverContext)(nil)
	_ output.Element       = (*element)(nil)
	_ output.Scroller      = (*element)(nil)
)

var byKinds = map[entity.QueryKind]string{
	entity.QueryXPath:     selenium.ByXPATH,
	entity.QueryCSS:       selenium.ByCSSSelector,
	entity.QueryID:        selenium.ByID,
	entity.QueryTagName:   selenium.ByTagName,
	entity.QueryClassName: selenium.ByClassName,
}

// finder is the query part shared by selenium.WebDriver and selenium.WebElement.
type finder interface {
	FindElements(by, value string) ([]selenium.WebElement, error)
}

type driverContext struct {
	wd selenium.WebDriver
}

func (d *driverContext) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	return findElements(d.wd, d.wd, by)
}

func findElements(wd selenium.WebDriver, f finder, by entity.By) ([]output.Element, error) {
	kind, ok := byKinds[by.Kind]
	if !ok {
		return nil, entity.ErrInvalidLocatorFormat.WithMessage(fmt.Sprintf("Unsupported query kind '%s'", by.Kind))
	}

	found, err := f.FindElements(kind, by.Value)
	if err != nil {
		// WebDriver reports an empty result of FindElements as success, so
		// any error here is a driver failure.
		return nil, driverError(err, "query %s failed", by)
	}

	result := make([]output.Element, 0, len(found))
	for _, we := range found {
		id, err := json.Marshal(we)
		if err != nil {
			return nil, driverError(err, "read element reference failed")
		}
		result = append(result, &element{wd: wd, we: we, id: string(id)})
	}
	return result, nil
}

type element struct {
	wd selenium.WebDriver
	we selenium.WebElement
	id string
}

func (e *element) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	return findElements(e.wd, e.we, by)
}

func (e *element) ID() string {
	return e.id
}

func (e *element) TagName(_ context.Context) (string, error) {
	tag, err := e.we.TagName()
	if err != nil {
		return "", driverError(err, "read tag name failed")
	}
	return strings.ToLower(tag), nil
}

func (e *element) Text(_ context.Context) (string, error) {
	text, err := e.we.Text()
	if err != nil {
		return "", driverError(err, "read text failed")
	}
	return text, nil
}

const attributeScript = `
var el = arguments[0], name = arguments[1];
if (name === 'value' && 'value' in el) { return String(el.value); }
return el.getAttribute(name);`

// Attribute runs a script because GetAttribute cannot tell an absent
// attribute from a failed call.
func (e *element) Attribute(_ context.Context, name string) (string, bool, error) {
	res, err := e.wd.ExecuteScript(attributeScript, []interface{}{e.we, name})
	if err != nil {
		return "", false, driverError(err, "read attribute %s failed", name)
	}
	if res == nil {
		return "", false, nil
	}
	return fmt.Sprint(res), true, nil
}

func (e *element) CSSValue(_ context.Context, property string) (string, error) {
	value, err := e.we.CSSProperty(property)
	if err != nil {
		return "", driverError(err, "read css %s failed", property)
	}
	return value, nil
}

func (e *element) IsDisplayed(_ context.Context) (bool, error) {
	displayed, err := e.we.IsDisplayed()
	if err != nil {
		return false, driverError(err, "check visibility failed")
	}
	return displayed, nil
}

func (e *element) IsEnabled(_ context.Context) (bool, error) {
	enabled, err := e.we.IsEnabled()
	if err != nil {
		return false, driverError(err, "check enabled failed")
	}
	return enabled, nil
}

func (e *element) IsSelected(_ context.Context) (bool, error) {
	selected, err := e.we.IsSelected()
	if err != nil {
		return false, driverError(err, "check selected failed")
	}
	return selected, nil
}

func (e *element) Geometry(_ context.Context) (entity.Rect, error) {
	location, err := e.we.Location()
	if err != nil {
		return entity.Rect{}, driverError(err, "read location failed")
	}
	size, err := e.we.Size()
	if err != nil {
		return entity.Rect{}, driverError(err, "read size failed")
	}
	return entity.Rect{
		X:      float64(location.X),
		Y:      float64(location.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}, nil
}

func (e *element) ScrollIntoView(_ context.Context) error {
	if _, err := e.wd.ExecuteScript(`arguments[0].scrollIntoView({block: 'center'});`, []interface{}{e.we}); err != nil {
		return driverError(err, "scroll into view failed")
	}
	return nil
}

func driverError(err error, format string, args ...any) error {
	return entity.ErrDriver.WithMessage(fmt.Sprintf(format, args...)).WithCause(err)
}
