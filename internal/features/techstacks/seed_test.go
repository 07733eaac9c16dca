package techstacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LoadSeed_ContainsBothTypesWithUniqueNames(t *testing.T) {
	techStacks, err := loadSeed()
	assert.NoError(t, err)

	assert.GreaterOrEqual(t, len(techStacks), 70)

	names := make(map[string]bool)
	types := make(map[TechStackType]int)
	for _, techStack := range techStacks {
		assert.False(t, names[techStack.Name], "duplicate tech stack %s", techStack.Name)
		assert.NotEmpty(t, techStack.IconURL)

		names[techStack.Name] = true
		types[techStack.Type]++
	}

	assert.Greater(t, types[TechStackTypeLanguage], 0)
	assert.Greater(t, types[TechStackTypeTech], 0)
}
