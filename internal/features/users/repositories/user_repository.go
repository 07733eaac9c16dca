package users_repositories

import (
	"errors"
	"time"

	users_models "opensourcetogether/internal/features/users/models"
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct{}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	return storage.GetDb().Create(user).Error
}

// UpsertByGithubID inserts the user or refreshes the GitHub profile fields of
// the existing row, keeping its ID.
func (r *UserRepository) UpsertByGithubID(user *users_models.User) (*users_models.User, error) {
	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	err := storage.GetDb().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "github_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"login", "name", "email", "avatar_url", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	return r.GetUserByGithubID(user.GithubID)
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByGithubID(githubID int64) (*users_models.User, error) {
	var user users_models.User

	if err := storage.GetDb().Where("github_id = ?", githubID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUsersByIDs(userIDs []uuid.UUID) ([]*users_models.User, error) {
	users := make([]*users_models.User, 0, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	err := storage.GetDb().Where("id IN ?", userIDs).Find(&users).Error

	return users, err
}
