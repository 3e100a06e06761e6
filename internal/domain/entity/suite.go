package entity

import "fmt"

// Suite is a list of named locators with the number of elements each one is
// expected to resolve to.
type Suite struct {
	// URL is opened before the first case that does not set its own.
	URL   string      `yaml:"url"`
	Cases []SuiteCase `yaml:"locators"`
}

type SuiteCase struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Locator string `yaml:"locator"`
	// Count is the exact expected number of matches. When unset, at least
	// one match is expected.
	Count *int `yaml:"count"`
}

func (c SuiteCase) Expectation() string {
	if c.Count == nil {
		return "at least 1"
	}
	return fmt.Sprintf("exactly %d", *c.Count)
}

// Satisfied reports whether found matches the expectation.
func (c SuiteCase) Satisfied(found int) bool {
	if c.Count == nil {
		return found > 0
	}
	return found == *c.Count
}
