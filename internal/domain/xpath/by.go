package xpath

import (
	"strings"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

// FromBy rewrites id, tag name and class name queries as relative XPath so
// that drivers with a single query language can run them. CSS selectors have
// no XPath form and report false.
func FromBy(by entity.By) (string, bool) {
	switch by.Kind {
	case entity.QueryXPath:
		return by.Value, true
	case entity.QueryID:
		return ".//*[@id=" + Literal(by.Value) + "]", true
	case entity.QueryTagName:
		return ".//" + strings.ToLower(by.Value), true
	case entity.QueryClassName:
		return ".//*[contains(concat(' ', normalize-space(@class), ' '), " + Literal(" "+by.Value+" ") + ")]", true
	default:
		return "", false
	}
}
