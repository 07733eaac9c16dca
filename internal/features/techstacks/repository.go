package techstacks

import (
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type TechStackRepository struct{}

func (r *TechStackRepository) GetAll() ([]*TechStack, error) {
	var techStacks []*TechStack

	err := storage.GetDb().Order("type ASC, name ASC").Find(&techStacks).Error

	return techStacks, err
}

func (r *TechStackRepository) GetByIDs(ids []uuid.UUID) ([]*TechStack, error) {
	var techStacks []*TechStack
	if len(ids) == 0 {
		return techStacks, nil
	}

	err := storage.GetDb().Where("id IN ?", ids).Order("name ASC").Find(&techStacks).Error

	return techStacks, err
}

func (r *TechStackRepository) Count() (int64, error) {
	var count int64

	err := storage.GetDb().Model(&TechStack{}).Count(&count).Error

	return count, err
}

// CreateMany skips rows whose name already exists, so concurrent seeding is harmless.
func (r *TechStackRepository) CreateMany(techStacks []*TechStack) error {
	for _, techStack := range techStacks {
		if techStack.ID == uuid.Nil {
			techStack.ID = uuid.New()
		}
	}

	return storage.GetDb().
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		CreateInBatches(techStacks, 100).Error
}
