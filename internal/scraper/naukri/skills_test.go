package naukri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		expected []string
	}{
		{name: "Title case", raw: []string{"Python", "SQL"}, expected: []string{"Python", "Sql"}},
		{name: "Case variants collapse", raw: []string{"Python", "python", "PYTHON"}, expected: []string{"Python"}},
		{name: "First occurrence order kept", raw: []string{"docker", "AWS", "Docker", "git"}, expected: []string{"Docker", "Aws", "Git"}},
		{name: "Multi word", raw: []string{"machine learning", "Machine Learning"}, expected: []string{"Machine Learning"}},
		{name: "Blank entries dropped", raw: []string{" ", "", "  linux  "}, expected: []string{"Linux"}},
		{name: "Nil input", raw: nil, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSkills(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}
