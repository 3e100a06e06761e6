package static

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// inherited lists the properties a child takes from its ancestors when it
// declares none.
var inherited = map[string]bool{
	"text-transform": true,
	"visibility":     true,
	"color":          true,
	"font-family":    true,
	"font-size":      true,
	"font-weight":    true,
}

var nonRendered = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
	"title":    true,
	"meta":     true,
	"link":     true,
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

// inlineStyle parses the style attribute into lower-cased property names.
func inlineStyle(n *html.Node) map[string]string {
	style, ok := attr(n, "style")
	if !ok {
		return nil
	}
	result := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		result[strings.ToLower(strings.TrimSpace(name))] = value
	}
	return result
}

func cssValue(n *html.Node, property string) string {
	property = strings.ToLower(property)
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if v, ok := inlineStyle(cur)[property]; ok {
			return v
		}
		if !inherited[property] {
			break
		}
	}
	return ""
}

func displayed(n *html.Node) bool {
	if strings.EqualFold(n.Data, "input") {
		if t, _ := attr(n, "type"); strings.EqualFold(t, "hidden") {
			return false
		}
	}
	if v := cssValue(n, "visibility"); v == "hidden" || v == "collapse" {
		return false
	}
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if nonRendered[strings.ToLower(cur.Data)] {
			return false
		}
		if _, hidden := attr(cur, "hidden"); hidden {
			return false
		}
		if strings.EqualFold(inlineStyle(cur)["display"], "none") {
			return false
		}
	}
	return true
}

// optionSelected follows the browser default: a single-choice select without
// an explicitly selected option shows its first option as selected.
func optionSelected(option *html.Node) bool {
	if _, ok := attr(option, "selected"); ok {
		return true
	}
	sel := enclosingSelect(option)
	if sel == nil {
		return false
	}
	if _, multiple := attr(sel, "multiple"); multiple {
		return false
	}
	options := collectOptions(sel)
	for _, o := range options {
		if _, ok := attr(o, "selected"); ok {
			return false
		}
	}
	return len(options) > 0 && options[0] == option
}

func enclosingSelect(n *html.Node) *html.Node {
	for cur := n.Parent; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		if strings.EqualFold(cur.Data, "select") {
			return cur
		}
	}
	return nil
}

func collectOptions(n *html.Node) []*html.Node {
	var options []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if strings.EqualFold(c.Data, "option") {
				options = append(options, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return options
}

func pixels(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}
