// Package suite loads locator suite files.
package suite

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

func Load(path string) (*entity.Suite, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided suite file
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*entity.Suite, error) {
	var s entity.Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite: %w", err)
	}
	if err := normalize(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// normalize fills case defaults from the suite and rejects incomplete cases.
func normalize(s *entity.Suite) error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("suite has no locators")
	}
	for i := range s.Cases {
		c := &s.Cases[i]
		if strings.TrimSpace(c.Locator) == "" {
			return fmt.Errorf("locator #%d has no locator expression", i+1)
		}
		if c.Name == "" {
			c.Name = c.Locator
		}
		if c.URL == "" {
			c.URL = s.URL
		}
		if c.Count != nil && *c.Count < 0 {
			return fmt.Errorf("locator %q expects a negative count", c.Name)
		}
	}
	return nil
}
