package categories

import (
	"fmt"
	"log/slog"

	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
)

type CategoryService struct {
	categoryRepository *CategoryRepository
	logger             *slog.Logger
}

func (s *CategoryService) GetAll() ([]*Category, error) {
	categories, err := s.categoryRepository.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// FindByIDs fails with CATEGORY_NOT_FOUND when any id is unknown.
func (s *CategoryService) FindByIDs(ids []uuid.UUID) ([]*Category, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	categories, err := s.categoryRepository.GetByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if len(categories) == len(unique) {
		return categories, nil
	}

	for _, category := range categories {
		delete(seen, category.ID)
	}

	missing := make([]string, 0, len(seen))
	for _, id := range unique {
		if seen[id] {
			missing = append(missing, id.String())
		}
	}

	return nil, errs.BadRequest(errs.CodeCategoryNotFound, "Some categories do not exist").
		WithExtra("missingIds", missing)
}

func (s *CategoryService) SeedIfEmpty() error {
	count, err := s.categoryRepository.Count()
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	if count > 0 {
		return nil
	}

	categories, err := loadSeed()
	if err != nil {
		return err
	}

	if err := s.categoryRepository.CreateMany(categories); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	s.logger.Info("Seeded categories", "count", len(categories))

	return nil
}
