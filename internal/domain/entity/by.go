package entity

import "fmt"

type QueryKind string

const (
	QueryXPath     QueryKind = "xpath"
	QueryCSS       QueryKind = "cssSelector"
	QueryID        QueryKind = "id"
	QueryTagName   QueryKind = "tagName"
	QueryClassName QueryKind = "className"
)

// By is a structural query executed by a search context.
type By struct {
	Kind  QueryKind
	Value string
}

func ByXPath(xpath string) By {
	return By{Kind: QueryXPath, Value: xpath}
}

func ByCSS(selector string) By {
	return By{Kind: QueryCSS, Value: selector}
}

func ByID(id string) By {
	return By{Kind: QueryID, Value: id}
}

func ByTagName(tag string) By {
	return By{Kind: QueryTagName, Value: tag}
}

func ByClassName(class string) By {
	return By{Kind: QueryClassName, Value: class}
}

func (b By) String() string {
	return fmt.Sprintf("By.%s: %s", b.Kind, b.Value)
}
