package profiles

import (
	"time"

	"opensourcetogether/internal/features/techstacks"

	"github.com/google/uuid"
)

type SocialLinkType string

const (
	SocialLinkTypeGithub   SocialLinkType = "GITHUB"
	SocialLinkTypeLinkedin SocialLinkType = "LINKEDIN"
	SocialLinkTypeTwitter  SocialLinkType = "TWITTER"
	SocialLinkTypeDiscord  SocialLinkType = "DISCORD"
	SocialLinkTypeWebsite  SocialLinkType = "WEBSITE"
)

func (t SocialLinkType) IsValid() bool {
	switch t {
	case SocialLinkTypeGithub, SocialLinkTypeLinkedin, SocialLinkTypeTwitter, SocialLinkTypeDiscord, SocialLinkTypeWebsite:
		return true
	}
	return false
}

// Profile is 1:1 with a user and is always written as a whole.
type Profile struct {
	ID          uuid.UUID               `gorm:"column:id;primaryKey"`
	UserID      uuid.UUID               `gorm:"column:user_id"`
	Bio         string                  `gorm:"column:bio"`
	JobTitle    string                  `gorm:"column:job_title"`
	Location    string                  `gorm:"column:location"`
	Website     string                  `gorm:"column:website"`
	TechStacks  []*techstacks.TechStack `gorm:"many2many:profile_tech_stacks"`
	SocialLinks []*SocialLink           `gorm:"foreignKey:ProfileID"`
	CreatedAt   time.Time               `gorm:"column:created_at"`
	UpdatedAt   time.Time               `gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

type SocialLink struct {
	ID        uuid.UUID      `gorm:"column:id;primaryKey"`
	ProfileID uuid.UUID      `gorm:"column:profile_id"`
	Type      SocialLinkType `gorm:"column:type"`
	URL       string         `gorm:"column:url"`
}

func (SocialLink) TableName() string {
	return "profile_social_links"
}

type ProfileTechStack struct {
	ProfileID   uuid.UUID `gorm:"column:profile_id;primaryKey"`
	TechStackID uuid.UUID `gorm:"column:tech_stack_id;primaryKey"`
}

func (ProfileTechStack) TableName() string {
	return "profile_tech_stacks"
}
