package techstacks

import (
	"github.com/google/uuid"
)

// GetSeededTechStackIDs seeds the catalog if needed and returns the first n ids.
func GetSeededTechStackIDs(n int) []uuid.UUID {
	if err := techStackService.SeedIfEmpty(); err != nil {
		panic(err)
	}

	techStacks, err := techStackService.GetAll()
	if err != nil {
		panic(err)
	}

	if n > len(techStacks) {
		n = len(techStacks)
	}

	ids := make([]uuid.UUID, 0, n)
	for _, techStack := range techStacks[:n] {
		ids = append(ids, techStack.ID)
	}

	return ids
}
