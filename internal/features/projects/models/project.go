package projects_models

import (
	"fmt"
	"time"

	"opensourcetogether/internal/features/categories"
	projects_enums "opensourcetogether/internal/features/projects/enums"
	"opensourcetogether/internal/features/techstacks"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Project struct {
	ID          uuid.UUID                   `json:"id"          gorm:"column:id;primaryKey"`
	OwnerID     *uuid.UUID                  `json:"ownerId"     gorm:"column:owner_id"`
	Title       string                      `json:"title"       gorm:"column:title"`
	Description string                      `json:"description" gorm:"column:description"`
	Image       string                      `json:"image"       gorm:"column:image"`
	CoverImages datatypes.JSONSlice[string] `json:"coverImages" gorm:"column:cover_images"`
	Readme      string                      `json:"readme"      gorm:"column:readme"`

	Categories    []*categories.Category  `json:"categories"    gorm:"many2many:project_categories"`
	TechStacks    []*techstacks.TechStack `json:"techStacks"    gorm:"many2many:project_tech_stacks"`
	KeyFeatures   []*KeyFeature           `json:"keyFeatures"   gorm:"foreignKey:ProjectID"`
	ProjectRoles  []*ProjectRole          `json:"projectRoles"  gorm:"foreignKey:ProjectID"`
	ExternalLinks []*ExternalLink         `json:"externalLinks" gorm:"foreignKey:ProjectID"`

	GithubOwner             string                          `json:"githubOwner"               gorm:"column:github_owner"`
	GithubRepo              string                          `json:"githubRepo"                gorm:"column:github_repo"`
	GithubSyncStatus        projects_enums.GithubSyncStatus `json:"githubSyncStatus"          gorm:"column:github_sync_status"`
	GithubSyncError         string                          `json:"githubSyncError,omitempty" gorm:"column:github_sync_error"`
	GithubSyncAttempts      int                             `json:"-"                         gorm:"column:github_sync_attempts"`
	GithubSyncNextAttemptAt *time.Time                      `json:"-"                         gorm:"column:github_sync_next_attempt_at"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) IsGithubSynced() bool {
	return p.GithubSyncStatus == projects_enums.GithubSyncStatusSynced && p.GithubOwner != "" && p.GithubRepo != ""
}

func (p *Project) GithubRepoURL() string {
	if p.GithubOwner == "" || p.GithubRepo == "" {
		return ""
	}
	return fmt.Sprintf("https://github.com/%s/%s", p.GithubOwner, p.GithubRepo)
}

func (p *Project) TechStackIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.TechStacks))
	for _, techStack := range p.TechStacks {
		ids = append(ids, techStack.ID)
	}
	return ids
}

func (p *Project) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, category := range p.Categories {
		ids = append(ids, category.ID)
	}
	return ids
}

// KeyFeature is one entry of a project's ordered feature list.
type KeyFeature struct {
	ID        uuid.UUID `json:"id"      gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID `json:"-"       gorm:"column:project_id"`
	Position  int       `json:"-"       gorm:"column:position"`
	Feature   string    `json:"feature" gorm:"column:feature"`
}

func (KeyFeature) TableName() string {
	return "project_key_features"
}

type ExternalLink struct {
	ID        uuid.UUID                       `json:"id"   gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID                       `json:"-"    gorm:"column:project_id"`
	Type      projects_enums.ExternalLinkType `json:"type" gorm:"column:type"`
	URL       string                          `json:"url"  gorm:"column:url"`
}

func (ExternalLink) TableName() string {
	return "project_external_links"
}

// ProjectCategory and ProjectTechStack are the join rows, written explicitly
// so saving a project never upserts catalog entries.
type ProjectCategory struct {
	ProjectID  uuid.UUID `gorm:"column:project_id;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;primaryKey"`
}

func (ProjectCategory) TableName() string {
	return "project_categories"
}

type ProjectTechStack struct {
	ProjectID   uuid.UUID `gorm:"column:project_id;primaryKey"`
	TechStackID uuid.UUID `gorm:"column:tech_stack_id;primaryKey"`
}

func (ProjectTechStack) TableName() string {
	return "project_tech_stacks"
}
