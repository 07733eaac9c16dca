package profiles

import (
	"time"

	"opensourcetogether/internal/features/techstacks"
	users_dto "opensourcetogether/internal/features/users/dto"

	"github.com/google/uuid"
)

type UpsertProfileRequestDTO struct {
	Bio          string                    `json:"bio"`
	JobTitle     string                    `json:"jobTitle"`
	Location     string                    `json:"location"`
	Website      string                    `json:"website"`
	TechStackIDs []uuid.UUID               `json:"techStacks"`
	SocialLinks  map[SocialLinkType]string `json:"socialLinks"`
}

type ProfileResponseDTO struct {
	UserID      uuid.UUID                 `json:"userId"`
	User        *users_dto.PublicUserDTO  `json:"user"`
	Bio         string                    `json:"bio"`
	JobTitle    string                    `json:"jobTitle"`
	Location    string                    `json:"location"`
	Website     string                    `json:"website"`
	TechStacks  []*techstacks.TechStack   `json:"techStacks"`
	SocialLinks map[SocialLinkType]string `json:"socialLinks"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}
