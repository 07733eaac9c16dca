package techstacks

import (
	"fmt"
	"log/slog"

	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
)

type TechStackService struct {
	techStackRepository *TechStackRepository
	logger              *slog.Logger
}

func (s *TechStackService) GetAll() ([]*TechStack, error) {
	techStacks, err := s.techStackRepository.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get tech stacks: %w", err)
	}

	return techStacks, nil
}

// FindByIDs returns the tech stacks for ids, failing with TECH_STACK_NOT_FOUND
// when any id is unknown. Duplicate ids are collapsed.
func (s *TechStackService) FindByIDs(ids []uuid.UUID) ([]*TechStack, error) {
	unique := uniqueIDs(ids)

	techStacks, err := s.techStackRepository.GetByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get tech stacks: %w", err)
	}

	if len(techStacks) != len(unique) {
		found := make(map[uuid.UUID]bool, len(techStacks))
		for _, techStack := range techStacks {
			found[techStack.ID] = true
		}

		missing := make([]string, 0)
		for _, id := range unique {
			if !found[id] {
				missing = append(missing, id.String())
			}
		}

		return nil, errs.BadRequest(errs.CodeTechStackNotFound, "Some tech stacks do not exist").
			WithExtra("missingIds", missing)
	}

	return techStacks, nil
}

// SeedIfEmpty loads the embedded catalog when the table has no rows.
func (s *TechStackService) SeedIfEmpty() error {
	count, err := s.techStackRepository.Count()
	if err != nil {
		return fmt.Errorf("failed to count tech stacks: %w", err)
	}

	if count > 0 {
		return nil
	}

	techStacks, err := loadSeed()
	if err != nil {
		return err
	}

	if err := s.techStackRepository.CreateMany(techStacks); err != nil {
		return fmt.Errorf("failed to seed tech stacks: %w", err)
	}

	s.logger.Info("Seeded tech stacks", "count", len(techStacks))

	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	return unique
}
