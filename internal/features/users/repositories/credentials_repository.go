package users_repositories

import (
	"errors"

	users_models "opensourcetogether/internal/features/users/models"
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CredentialsRepository struct{}

func (r *CredentialsRepository) Save(credentials *users_models.UserGithubCredentials) error {
	return storage.GetDb().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"encrypted_access_token", "scope", "updated_at"}),
	}).Create(credentials).Error
}

func (r *CredentialsRepository) GetByUserID(userID uuid.UUID) (*users_models.UserGithubCredentials, error) {
	var credentials users_models.UserGithubCredentials

	if err := storage.GetDb().Where("user_id = ?", userID).First(&credentials).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &credentials, nil
}

func (r *CredentialsRepository) DeleteByUserID(userID uuid.UUID) error {
	return storage.GetDb().Where("user_id = ?", userID).Delete(&users_models.UserGithubCredentials{}).Error
}
