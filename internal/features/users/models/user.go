package users_models

import (
	"time"

	"github.com/google/uuid"
)

// User is created on the first GitHub sign-in and matched by GithubID afterwards.
type User struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	GithubID  int64     `json:"githubId"  gorm:"column:github_id"`
	Login     string    `json:"login"     gorm:"column:login"`
	Name      string    `json:"name"      gorm:"column:name"`
	Email     string    `json:"email"     gorm:"column:email"`
	AvatarURL string    `json:"avatarUrl" gorm:"column:avatar_url"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

func (u *User) HasEmail() bool {
	return u.Email != ""
}
