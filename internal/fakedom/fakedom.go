// Package fakedom provides recording in-memory implementations of the search
// ports for tests. Query answers are scripted per structural query and every
// call is counted.
package fakedom

import (
	"context"
	"sync"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

var (
	_ output.SearchContext = (*Context)(nil)
	_ output.Element       = (*Element)(nil)
	_ output.Scroller      = (*Element)(nil)
)

type Context struct {
	mu      sync.Mutex
	answers map[entity.By][]output.Element
	queries []entity.By
	err     error
}

func NewContext() *Context {
	return &Context{answers: make(map[entity.By][]output.Element)}
}

// On scripts the answer for by.
func (c *Context) On(by entity.By, elements ...output.Element) *Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[by] = elements
	return c
}

// FailWith makes every query return err.
func (c *Context) FailWith(err error) *Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	return c
}

func (c *Context) FindElements(_ context.Context, by entity.By) ([]output.Element, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, by)
	if c.err != nil {
		return nil, c.err
	}
	return append([]output.Element(nil), c.answers[by]...), nil
}

// Queries returns every query received, in order.
func (c *Context) Queries() []entity.By {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.By(nil), c.queries...)
}

func (c *Context) QueryCount(by entity.By) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, q := range c.queries {
		if q == by {
			n++
		}
	}
	return n
}

// Element is a scripted node. Zero values read as a displayed, enabled,
// unselected element without attributes.
type Element struct {
	*Context

	id       string
	tag      string
	text     string
	attrs    map[string]string
	css      map[string]string
	hidden   bool
	disabled bool
	selected bool
	rect     entity.Rect

	displayedAnswers []bool

	callsMu  sync.Mutex
	calls    map[string]int
	failures map[string]error
	scrolls  int
}

func NewElement(id string) *Element {
	return &Element{
		Context: NewContext(),
		id:      id,
		tag:     "div",
		attrs:   make(map[string]string),
		css:     make(map[string]string),
		calls:   make(map[string]int),
	}
}

func (e *Element) WithTag(tag string) *Element {
	e.tag = tag
	return e
}

func (e *Element) WithText(text string) *Element {
	e.text = text
	return e
}

func (e *Element) WithAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

func (e *Element) WithCSS(property, value string) *Element {
	e.css[property] = value
	return e
}

func (e *Element) Hidden() *Element {
	e.hidden = true
	return e
}

func (e *Element) Disabled() *Element {
	e.disabled = true
	return e
}

func (e *Element) Selected() *Element {
	e.selected = true
	return e
}

func (e *Element) WithRect(x, y, width, height float64) *Element {
	e.rect = entity.Rect{X: x, Y: y, Width: width, Height: height}
	return e
}

// WithDisplayedSequence scripts successive IsDisplayed answers; the last one
// repeats.
func (e *Element) WithDisplayedSequence(answers ...bool) *Element {
	e.displayedAnswers = answers
	return e
}

// FailMethod makes every later call of method return err.
func (e *Element) FailMethod(method string, err error) *Element {
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	if e.failures == nil {
		e.failures = make(map[string]error)
	}
	e.failures[method] = err
	return e
}

// SetSelected changes the live selection state.
func (e *Element) SetSelected(selected bool) {
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	e.selected = selected
}

func (e *Element) record(method string) error {
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	e.calls[method]++
	return e.failures[method]
}

// Calls returns how many times method was invoked.
func (e *Element) Calls(method string) int {
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	return e.calls[method]
}

// TotalCalls counts every element method call, queries included.
func (e *Element) TotalCalls() int {
	e.callsMu.Lock()
	n := 0
	for _, c := range e.calls {
		n += c
	}
	e.callsMu.Unlock()
	return n + len(e.Queries())
}

func (e *Element) Scrolls() int {
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	return e.scrolls
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) TagName(context.Context) (string, error) {
	if err := e.record("TagName"); err != nil {
		return "", err
	}
	return e.tag, nil
}

func (e *Element) Text(context.Context) (string, error) {
	if err := e.record("Text"); err != nil {
		return "", err
	}
	return e.text, nil
}

func (e *Element) Attribute(_ context.Context, name string) (string, bool, error) {
	if err := e.record("Attribute"); err != nil {
		return "", false, err
	}
	v, ok := e.attrs[name]
	return v, ok, nil
}

func (e *Element) CSSValue(_ context.Context, property string) (string, error) {
	if err := e.record("CSSValue"); err != nil {
		return "", err
	}
	return e.css[property], nil
}

func (e *Element) IsDisplayed(context.Context) (bool, error) {
	if err := e.record("IsDisplayed"); err != nil {
		return false, err
	}
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	if len(e.displayedAnswers) > 0 {
		answer := e.displayedAnswers[0]
		if len(e.displayedAnswers) > 1 {
			e.displayedAnswers = e.displayedAnswers[1:]
		}
		return answer, nil
	}
	return !e.hidden, nil
}

func (e *Element) IsEnabled(context.Context) (bool, error) {
	if err := e.record("IsEnabled"); err != nil {
		return false, err
	}
	return !e.disabled, nil
}

func (e *Element) IsSelected(context.Context) (bool, error) {
	if err := e.record("IsSelected"); err != nil {
		return false, err
	}
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	return e.selected, nil
}

func (e *Element) Geometry(context.Context) (entity.Rect, error) {
	if err := e.record("Geometry"); err != nil {
		return entity.Rect{}, err
	}
	return e.rect, nil
}

func (e *Element) ScrollIntoView(context.Context) error {
	e.callsMu.Lock()
	defer e.callsMu.Unlock()
	e.scrolls++
	return nil
}

// Wrapper decorates an element the way driver-specific wrappers do.
type Wrapper struct {
	output.Element
}

func Wrap(el output.Element) *Wrapper {
	return &Wrapper{Element: el}
}

func (w *Wrapper) Unwrap() output.Element {
	return w.Element
}

// Elements converts concrete fakes into port values.
func Elements(elements ...*Element) []output.Element {
	result := make([]output.Element, len(elements))
	for i, e := range elements {
		result[i] = e
	}
	return result
}
