package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateProjectID_Format(t *testing.T) {
	id := GenerateProjectID("Main Base (Nauvis)")

	assert.Regexp(t, regexp.MustCompile(`^main-base-nauvis-[0-9a-f]{8}$`), id)
}

func TestGenerateProjectID_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateProjectID("gears"), GenerateProjectID("gears"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"gears", "gears"},
		{"  Green Circuits!! ", "green-circuits"},
		{"---", "project"},
		{"", "project"},
		{"a very long project name that keeps going", "a-very-long-project-name"},
		{"Über Fabrik", "über-fabrik"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.name))
		})
	}
}
