package users_models

import (
	"time"

	"github.com/google/uuid"
)

// UserGithubCredentials holds the user's OAuth access token, sealed with the
// server's token key.
type UserGithubCredentials struct {
	UserID               uuid.UUID `gorm:"column:user_id;primaryKey"`
	EncryptedAccessToken string    `gorm:"column:encrypted_access_token"`
	Scope                string    `gorm:"column:scope"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (UserGithubCredentials) TableName() string {
	return "user_github_credentials"
}
