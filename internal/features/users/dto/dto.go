package users_dto

import (
	"github.com/google/uuid"
)

// GithubIdentity is what sign-in needs to know about the GitHub account.
type GithubIdentity struct {
	ID        int64
	Login     string
	Name      string
	Email     string
	AvatarURL string
}

type SignInResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Login  string    `json:"login"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type PublicUserDTO struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
}

type GithubLoginResponseDTO struct {
	URL string `json:"url"`
}
