package service

import (
	"fmt"
	"strconv"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
	"github.com/vividus-framework/vividus-sub002/internal/domain/xpath"
)

var (
	commonFilters = []entity.LocatorTypeID{
		entity.State,
		entity.TextPart,
		entity.CaseSensitiveText,
		entity.CaseInsensitiveText,
		entity.Tooltip,
		entity.ClassAttributePart,
		entity.RelativeToParentWidth,
		entity.ValidationIconSource,
	}

	textFilters = with(commonFilters, entity.LinkURL, entity.LinkURLPart, entity.ImageSrcPart)

	fieldFilters = with(commonFilters, entity.Placeholder, entity.FieldText, entity.FieldTextPart,
		entity.DropDownText, entity.DropDownState)

	allFilters = with(commonFilters, entity.LinkURL, entity.LinkURLPart, entity.ImageSrcPart, entity.Placeholder,
		entity.FieldText, entity.FieldTextPart, entity.DropDownText, entity.DropDownState)
)

func with(base []entity.LocatorTypeID, extra ...entity.LocatorTypeID) []entity.LocatorTypeID {
	result := make([]entity.LocatorTypeID, 0, len(base)+len(extra))
	result = append(result, base...)
	return append(result, extra...)
}

func competing(ids ...entity.LocatorTypeID) []entity.LocatorTypeID {
	return ids
}

func xpathQuery(pattern string) func(string) entity.By {
	return func(value string) entity.By {
		return entity.ByXPath(xpath.Format(pattern, value))
	}
}

func validateState(value string) error {
	_, err := entity.ParseState(value)
	return err
}

func validatePercentage(value string) error {
	if _, err := strconv.Atoi(value); err != nil {
		return entity.ErrInvalidFilterValue.WithMessage(
			fmt.Sprintf("Relative to parent width must be an integer percentage, got '%s'", value)).WithCause(err)
	}
	return nil
}

func validateRelative(value string) error {
	_, err := ParseRelativeExpression(value)
	return err
}

// DefaultLocatorTypes returns the full catalog in declaration order. The order
// decides which label comes first in competing-attribute messages.
func DefaultLocatorTypes() []*entity.LocatorType {
	return []*entity.LocatorType{
		{
			ID:      entity.LinkText,
			Label:   "Link text",
			Filters: textFilters,
		},
		{
			ID:        entity.LinkURL,
			Label:     "URL",
			Filters:   textFilters,
			Competing: competing(entity.LinkURLPart),
		},
		{
			ID:         entity.LinkURLPart,
			Label:      "URL part",
			Filters:    textFilters,
			Competing:  competing(entity.LinkURL),
			BuildQuery: xpathQuery(".//a[contains(@href, %[1]s)]"),
		},
		{
			ID:        entity.CaseSensitiveText,
			Label:     "Case sensitive text",
			Filters:   textFilters,
			Competing: competing(entity.TextPart, entity.CaseInsensitiveText),
		},
		{
			ID:        entity.CaseInsensitiveText,
			Label:     "Case insensitive text",
			Filters:   textFilters,
			Competing: competing(entity.TextPart, entity.CaseSensitiveText),
		},
		{
			ID:         entity.Tooltip,
			Label:      "Tooltip",
			Filters:    allFilters,
			BuildQuery: xpathQuery(".//*[@title=%[1]s]"),
		},
		{
			ID:         entity.XPath,
			Label:      "XPath",
			Filters:    allFilters,
			Competing:  competing(entity.CSSSelector, entity.TagName),
			BuildQuery: entity.ByXPath,
		},
		{
			ID:         entity.CSSSelector,
			Label:      "CSS selector",
			Filters:    allFilters,
			Competing:  competing(entity.XPath, entity.TagName),
			BuildQuery: entity.ByCSS,
		},
		{
			ID:         entity.TagName,
			Label:      "Tag name",
			Filters:    allFilters,
			Competing:  competing(entity.XPath, entity.CSSSelector),
			BuildQuery: entity.ByTagName,
		},
		{
			ID:         entity.ImageSrc,
			Label:      "Image source",
			Filters:    commonFilters,
			Competing:  competing(entity.ImageSrcPart),
			BuildQuery: xpathQuery(".//img[@src=%[1]s]"),
		},
		{
			ID:         entity.ImageSrcPart,
			Label:      "Image source part",
			Filters:    commonFilters,
			Competing:  competing(entity.ImageSrc),
			BuildQuery: xpathQuery(".//img[contains(@src, %[1]s)]"),
		},
		{
			ID:      entity.ButtonName,
			Label:   "Button name",
			Filters: commonFilters,
		},
		{
			ID:      entity.FieldName,
			Label:   "Field name",
			Filters: fieldFilters,
		},
		{
			ID:         entity.TextPart,
			Label:      "Text part",
			Competing:  competing(entity.CaseSensitiveText, entity.CaseInsensitiveText),
			FilterOnly: true,
		},
		{
			ID:         entity.Placeholder,
			Label:      "Placeholder",
			FilterOnly: true,
		},
		{
			ID:            entity.State,
			Label:         "State",
			FilterOnly:    true,
			ValidateValue: validateState,
		},
		{
			ID:            entity.DropDownState,
			Label:         "Drop down state",
			FilterOnly:    true,
			ValidateValue: validateState,
		},
		{
			ID:         entity.ValidationIconSource,
			Label:      "Validation icon source",
			FilterOnly: true,
		},
		{
			ID:            entity.RelativeToParentWidth,
			Label:         "Relative to parent width",
			FilterOnly:    true,
			ValidateValue: validatePercentage,
		},
		{
			ID:         entity.ClassAttributePart,
			Label:      "Attribute class part",
			Filters:    allFilters,
			BuildQuery: xpathQuery(".//*[contains(@class, %[1]s)]"),
		},
		{
			ID:      entity.CheckboxName,
			Label:   "Checkbox name",
			Filters: commonFilters,
		},
		{
			ID:         entity.FieldText,
			Label:      "Field text",
			Competing:  competing(entity.FieldTextPart),
			FilterOnly: true,
		},
		{
			ID:         entity.FieldTextPart,
			Label:      "Field text part",
			Competing:  competing(entity.FieldText),
			FilterOnly: true,
		},
		{
			ID:         entity.DropDownText,
			Label:      "Drop down text",
			FilterOnly: true,
		},
		{
			ID:      entity.ElementName,
			Label:   "Element name",
			Filters: allFilters,
		},
		{
			ID:         entity.ID,
			Label:      "Id",
			Filters:    allFilters,
			BuildQuery: entity.ByID,
		},
		{
			ID:         entity.ClassName,
			Label:      "Class name",
			Filters:    allFilters,
			BuildQuery: entity.ByClassName,
		},
		{
			ID:            entity.Relative,
			Label:         "Relative",
			Filters:       allFilters,
			ValidateValue: validateRelative,
		},
	}
}

// NewDefaultLocatorTypeRegistry builds the registry over DefaultLocatorTypes.
func NewDefaultLocatorTypeRegistry() (*LocatorTypeRegistry, error) {
	return NewLocatorTypeRegistry(DefaultLocatorTypes()...)
}
