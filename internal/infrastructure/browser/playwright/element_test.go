package playwright

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vividus-framework/vividus-sub002/internal/domain/entity"
)

func TestSelector(t *testing.T) {
	tests := []struct {
		by   entity.By
		want string
	}{
		{entity.ByXPath(".//a[@href='/about']"), "xpath=.//a[@href='/about']"},
		{entity.ByXPath(".."), "xpath=.."},
		{entity.ByCSS("a.btn > span"), "css=a.btn > span"},
		{entity.ByID("main"), "xpath=.//*[@id='main']"},
		{entity.ByTagName("Button"), "xpath=.//button"},
	}

	for _, tt := range tests {
		t.Run(tt.by.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Selector(tt.by))
		})
	}
}
