package entity

import "strings"

type LocatorTypeID string

const (
	LinkText              LocatorTypeID = "linkText"
	LinkURL               LocatorTypeID = "linkUrl"
	LinkURLPart           LocatorTypeID = "linkUrlPart"
	CaseSensitiveText     LocatorTypeID = "caseSensitiveText"
	CaseInsensitiveText   LocatorTypeID = "caseInsensitiveText"
	Tooltip               LocatorTypeID = "tooltip"
	XPath                 LocatorTypeID = "xpath"
	CSSSelector           LocatorTypeID = "cssSelector"
	TagName               LocatorTypeID = "tagName"
	ImageSrc              LocatorTypeID = "imageSrc"
	ImageSrcPart          LocatorTypeID = "imageSrcPart"
	ButtonName            LocatorTypeID = "buttonName"
	FieldName             LocatorTypeID = "fieldName"
	TextPart              LocatorTypeID = "textPart"
	Placeholder           LocatorTypeID = "placeholder"
	State                 LocatorTypeID = "state"
	DropDownState         LocatorTypeID = "dropDownState"
	ValidationIconSource  LocatorTypeID = "validationIconSource"
	RelativeToParentWidth LocatorTypeID = "relativeToParentWidth"
	ClassAttributePart    LocatorTypeID = "classAttributePart"
	CheckboxName          LocatorTypeID = "checkboxName"
	FieldText             LocatorTypeID = "fieldText"
	FieldTextPart         LocatorTypeID = "fieldTextPart"
	DropDownText          LocatorTypeID = "dropDownText"
	ElementName           LocatorTypeID = "elementName"
	ID                    LocatorTypeID = "id"
	ClassName             LocatorTypeID = "className"
	Relative              LocatorTypeID = "relative"
)

func (id LocatorTypeID) String() string {
	return string(id)
}

// Key is the case-insensitive lookup form of the identifier.
func (id LocatorTypeID) Key() string {
	return strings.ToLower(string(id))
}

// LocatorType is a catalog entry describing one search or filter kind.
// A kind with a BuildQuery function is resolved by a direct structural query;
// other kinds need a registered search strategy.
type LocatorType struct {
	ID        LocatorTypeID
	Label     string
	Filters   []LocatorTypeID
	Competing []LocatorTypeID
	// FilterOnly kinds narrow results but cannot head a locator.
	FilterOnly bool

	BuildQuery    func(value string) By
	ValidateValue func(value string) error
}

func (t *LocatorType) HasQuery() bool {
	return t.BuildQuery != nil
}

func (t *LocatorType) IsFilterCompatible(filter LocatorTypeID) bool {
	for _, f := range t.Filters {
		if f == filter {
			return true
		}
	}
	return false
}

func (t *LocatorType) CompetingTypes() []LocatorTypeID {
	result := make([]LocatorTypeID, len(t.Competing))
	copy(result, t.Competing)
	return result
}

func (t *LocatorType) CompetesWith(other LocatorTypeID) bool {
	for _, c := range t.Competing {
		if c == other {
			return true
		}
	}
	return false
}
