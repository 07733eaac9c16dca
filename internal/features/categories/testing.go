package categories

import (
	"github.com/google/uuid"
)

// GetSeededCategoryIDs seeds the catalog if needed and returns the first n ids.
func GetSeededCategoryIDs(n int) []uuid.UUID {
	if err := categoryService.SeedIfEmpty(); err != nil {
		panic(err)
	}

	categories, err := categoryService.GetAll()
	if err != nil {
		panic(err)
	}

	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n && i < len(categories); i++ {
		ids = append(ids, categories[i].ID)
	}

	return ids
}
