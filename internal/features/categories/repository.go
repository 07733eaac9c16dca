package categories

import (
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct{}

func (r *CategoryRepository) GetAll() ([]*Category, error) {
	var categories []*Category

	err := storage.GetDb().Order("name ASC").Find(&categories).Error

	return categories, err
}

func (r *CategoryRepository) GetByIDs(ids []uuid.UUID) ([]*Category, error) {
	var categories []*Category
	if len(ids) == 0 {
		return categories, nil
	}

	err := storage.GetDb().Where("id IN ?", ids).Order("name ASC").Find(&categories).Error

	return categories, err
}

func (r *CategoryRepository) Count() (int64, error) {
	var count int64

	err := storage.GetDb().Model(&Category{}).Count(&count).Error

	return count, err
}

func (r *CategoryRepository) CreateMany(categories []*Category) error {
	for _, category := range categories {
		if category.ID == uuid.Nil {
			category.ID = uuid.New()
		}
	}

	return storage.GetDb().
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(categories).Error
}
