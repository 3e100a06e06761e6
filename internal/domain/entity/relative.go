package entity

import "strings"

// RelativeExpression is the parsed form of "root>>position(other)>>...".
// Locators are kept in their textual form and resolved at search time.
type RelativeExpression struct {
	Root    string
	Clauses []RelativeClause
}

type RelativeClause struct {
	Position RelativePosition
	Locator  string
}

func (e RelativeExpression) String() string {
	var sb strings.Builder
	sb.WriteString(e.Root)
	for _, c := range e.Clauses {
		sb.WriteString(">>")
		sb.WriteString(c.Position.String())
		sb.WriteString("(")
		sb.WriteString(c.Locator)
		sb.WriteString(")")
	}
	return sb.String()
}
