// Package xpath builds the XPath 1.0 expressions used by the text-driven
// search strategies.
package xpath

import (
	"fmt"
	"strings"
)

const (
	upperCase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerCase = "abcdefghijklmnopqrstuvwxyz"
)

// Literal quotes s as an XPath string literal. XPath 1.0 has no escape
// sequences, so a value holding both quote kinds is assembled with concat().
func Literal(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if part != "" {
			quoted = append(quoted, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// Format substitutes quoted values into pattern; placeholders use the
// explicit index form %[1]s.
func Format(pattern string, values ...string) string {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = Literal(v)
	}
	return fmt.Sprintf(pattern, args...)
}

// LowerASCII lowercases A-Z only, matching what translate() does on the
// document side of a case-insensitive comparison.
func LowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func translateLower(expr string) string {
	return fmt.Sprintf("translate(%s, '%s', '%s')", expr, upperCase, lowerCase)
}

// TextMatch renders comparisons between a node expression and a value,
// either literally or with ASCII case folding applied to both sides.
type TextMatch struct {
	CaseInsensitive bool
}

var (
	CaseSensitive   = TextMatch{}
	CaseInsensitive = TextMatch{CaseInsensitive: true}
)

func (m TextMatch) operands(node, value string) (string, string) {
	if m.CaseInsensitive {
		return fmt.Sprintf("normalize-space(%s)", translateLower(node)), Literal(LowerASCII(value))
	}
	return fmt.Sprintf("normalize-space(%s)", node), Literal(value)
}

func (m TextMatch) Equals(node, value string) string {
	left, right := m.operands(node, value)
	return left + "=" + right
}

func (m TextMatch) Contains(node, value string) string {
	left, right := m.operands(node, value)
	return fmt.Sprintf("contains(%s, %s)", left, right)
}

// AnyAttributeEquals matches when at least one attribute of the node equals value.
func (m TextMatch) AnyAttributeEquals(value string) string {
	return "@*[" + m.Equals(".", value) + "]"
}

// Innermost selects descendants satisfying test that have no descendant
// satisfying it too, so nested markup yields one match instead of a chain
// of ancestors.
func Innermost(test string) string {
	return fmt.Sprintf(".//*[%s and not(.//*[%s])]", test, test)
}

// Or joins tests into one parenthesized disjunction.
func Or(tests ...string) string {
	return "(" + strings.Join(tests, " or ") + ")"
}

// And joins tests into one parenthesized conjunction.
func And(tests ...string) string {
	return "(" + strings.Join(tests, " and ") + ")"
}

// LocalNameIn matches elements whose local name is one of names.
func LocalNameIn(names ...string) string {
	tests := make([]string, len(names))
	for i, n := range names {
		tests[i] = "local-name()=" + Literal(n)
	}
	if len(tests) == 1 {
		return tests[0]
	}
	return Or(tests...)
}

// Parent selects the parent of the context node.
const Parent = ".."
