package search

import (
	"context"

	"github.com/vividus-framework/vividus-sub002/internal/application/port/output"
	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var (
	_ output.SearchStrategy = (*CheckboxNameSearch)(nil)
	_ output.WrapsElement   = (*Checkbox)(nil)
)

const nestedCheckbox = ".//input[@type='checkbox']"

// Checkbox is a checkbox input found through its label. Custom-styled
// checkboxes hide the input, so the label is what the user sees.
type Checkbox struct {
	output.Element
	label output.Element
}

func (c *Checkbox) Unwrap() output.Element {
	return c.Element
}

func (c *Checkbox) Label() output.Element {
	return c.label
}

// CheckboxNameSearch resolves labels by text and returns the checkbox each
// label points to, either through its for attribute or by nesting.
type CheckboxNameSearch struct {
	finder output.ElementFinder
	log    output.LoggerPort
}

func NewCheckboxNameSearch(finder output.ElementFinder, log output.LoggerPort) *CheckboxNameSearch {
	return &CheckboxNameSearch{finder: finder, log: log}
}

func CheckboxLabelQuery(value string) entity.By {
	return entity.ByXPath(xpath.Innermost(xpath.And(xpath.LocalNameIn("label"), textEquals(xpath.CaseSensitive, value))))
}

func CheckboxByIDQuery(id string) entity.By {
	return entity.ByXPath(xpath.Format(".//input[@type='checkbox' and @id=%[1]s]", id))
}

func (s *CheckboxNameSearch) Search(ctx context.Context, sc output.SearchContext, params entity.SearchParameters) ([]output.Element, error) {
	labels, err := s.finder.FindElements(ctx, sc, CheckboxLabelQuery(params.Value()), params)
	if err != nil || len(labels) == 0 {
		return nil, err
	}

	inputParams := params.WithVisibility(entity.All).WithWaitForElement(false)
	var result []output.Element
	for _, label := range labels {
		target, present, err := label.Attribute(ctx, "for")
		if err != nil {
			return nil, err
		}

		var inputs []output.Element
		if present && target != "" {
			inputs, err = s.finder.FindElements(ctx, sc, CheckboxByIDQuery(target), inputParams)
		} else {
			inputs, err = s.finder.FindElements(ctx, label, entity.ByXPath(nestedCheckbox), inputParams)
		}
		if err != nil {
			return nil, err
		}
		if len(inputs) == 0 {
			s.log.Debug("Label does not point to a checkbox", "label", label.ID(), "for", target)
			continue
		}
		result = append(result, &Checkbox{Element: inputs[0], label: label})
	}
	return result, nil
}
