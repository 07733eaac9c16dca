package projects_services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RepositoryNameForTitle(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{title: "Open Source Together", expected: "open-source-together"},
		{title: "  my_app v2.0!  ", expected: "my_app-v2.0"},
		{title: "Café -- Déjà vu", expected: "caf-d-j-vu"},
		{title: "???", expected: "project"},
		{title: "...hidden", expected: "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, RepositoryNameForTitle(tt.title))
		})
	}
}

func Test_RepositoryNameForTitle_TruncatesLongTitles(t *testing.T) {
	name := RepositoryNameForTitle(strings.Repeat("a", 150))

	assert.Len(t, name, maxRepositoryNameLength)
}
