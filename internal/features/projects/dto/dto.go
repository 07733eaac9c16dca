package projects_dto

import (
	github_dto "opensourcetogether/internal/features/github/dto"
	projects_enums "opensourcetogether/internal/features/projects/enums"
	projects_models "opensourcetogether/internal/features/projects/models"
	users_dto "opensourcetogether/internal/features/users/dto"

	"github.com/google/uuid"
)

type ExternalLinkDTO struct {
	Type projects_enums.ExternalLinkType `json:"type"`
	URL  string                          `json:"url"`
}

type ProjectRoleRequestDTO struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	TechStackIDs []uuid.UUID `json:"techStackIds"`
}

type UpdateProjectRoleRequestDTO struct {
	Title        *string      `json:"title"`
	Description  *string      `json:"description"`
	TechStackIDs *[]uuid.UUID `json:"techStackIds"`
	IsFilled     *bool        `json:"isFilled"`
}

// CreateProjectRequestDTO creates a new GitHub repository for the project
// unless GithubRepoURL points to an existing one owned by the caller.
type CreateProjectRequestDTO struct {
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Image         string                  `json:"image"`
	CoverImages   []string                `json:"coverImages"`
	CategoryIDs   []uuid.UUID             `json:"categoryIds"`
	TechStackIDs  []uuid.UUID             `json:"techStackIds"`
	KeyFeatures   []string                `json:"keyFeatures"`
	ProjectRoles  []ProjectRoleRequestDTO `json:"projectRoles"`
	ExternalLinks []ExternalLinkDTO       `json:"externalLinks"`
	GithubRepoURL string                  `json:"githubRepoUrl"`
}

// UpdateProjectRequestDTO is a partial update; nil fields keep their value.
type UpdateProjectRequestDTO struct {
	Title         *string            `json:"title"`
	Description   *string            `json:"description"`
	Image         *string            `json:"image"`
	CoverImages   *[]string          `json:"coverImages"`
	CategoryIDs   *[]uuid.UUID       `json:"categoryIds"`
	TechStackIDs  *[]uuid.UUID       `json:"techStackIds"`
	KeyFeatures   *[]string          `json:"keyFeatures"`
	ExternalLinks *[]ExternalLinkDTO `json:"externalLinks"`
}

type GetProjectsRequestDTO struct {
	Query       string `form:"q"           json:"q"`
	CategoryID  string `form:"categoryId"  json:"categoryId"`
	TechStackID string `form:"techStackId" json:"techStackId"`
	Limit       int    `form:"limit"       json:"limit"`
	Offset      int    `form:"offset"      json:"offset"`
}

type ProjectResponseDTO struct {
	*projects_models.Project
	Owner         *users_dto.PublicUserDTO    `json:"owner"`
	GithubRepoURL string                      `json:"githubRepoUrl"`
	Stats         *github_dto.RepositoryStats `json:"stats"`
}

type ListProjectsResponseDTO struct {
	Projects []*ProjectResponseDTO `json:"projects"`
	Total    int64                 `json:"total"`
	Limit    int                   `json:"limit"`
	Offset   int                   `json:"offset"`
}
