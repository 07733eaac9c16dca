// Package projects_validation holds the pure shape checks for projects and
// project roles. Functions here never touch storage and return nil when the
// input is valid.
package projects_validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	projects_enums "opensourcetogether/internal/features/projects/enums"

	"github.com/google/uuid"
)

const (
	TitleMinLength       = 3
	TitleMaxLength       = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 1000
	MaxCoverImages       = 4
	RoleTitleMaxLength   = 100
	RoleDescMaxLength    = 1000
	KeyFeatureMaxLength  = 200
)

// ValidationErrors maps a field path to a human readable message.
type ValidationErrors map[string]string

type ProjectRoleDraft struct {
	Title        string
	Description  string
	TechStackIDs []uuid.UUID
}

type ExternalLinkDraft struct {
	Type projects_enums.ExternalLinkType
	URL  string
}

type ProjectDraft struct {
	Title         string
	Description   string
	TechStackIDs  []uuid.UUID
	CategoryIDs   []uuid.UUID
	CoverImages   []string
	KeyFeatures   []string
	ProjectRoles  []ProjectRoleDraft
	ExternalLinks []ExternalLinkDraft
}

func ValidateProject(draft ProjectDraft) ValidationErrors {
	errors := ValidationErrors{}

	checkLength(errors, "title", draft.Title, TitleMinLength, TitleMaxLength, "Title")
	checkLength(errors, "description", draft.Description, DescriptionMinLength, DescriptionMaxLength, "Description")

	if len(draft.TechStackIDs) == 0 {
		errors["techStacks"] = "At least one tech stack is required"
	}

	if len(draft.CategoryIDs) == 0 {
		errors["categories"] = "At least one category is required"
	}

	if len(draft.CoverImages) > MaxCoverImages {
		errors["coverImages"] = fmt.Sprintf("At most %d cover images are allowed", MaxCoverImages)
	}
	for i, image := range draft.CoverImages {
		if !IsHTTPURL(image) {
			errors[fmt.Sprintf("coverImages[%d]", i)] = "Cover image must be a valid URL"
		}
	}

	for i, feature := range draft.KeyFeatures {
		field := fmt.Sprintf("keyFeatures[%d]", i)
		trimmed := strings.TrimSpace(feature)

		if trimmed == "" {
			errors[field] = "Key feature cannot be empty"
		} else if utf8.RuneCountInString(trimmed) > KeyFeatureMaxLength {
			errors[field] = fmt.Sprintf("Key feature must be at most %d characters", KeyFeatureMaxLength)
		}
	}

	for i, role := range draft.ProjectRoles {
		for field, message := range ValidateProjectRole(role) {
			errors[fmt.Sprintf("projectRoles[%d].%s", i, field)] = message
		}
	}

	for i, link := range draft.ExternalLinks {
		if !link.Type.IsValid() {
			errors[fmt.Sprintf("externalLinks[%d].type", i)] = "Unknown link type"
		}
		if !IsHTTPURL(link.URL) {
			errors[fmt.Sprintf("externalLinks[%d].url", i)] = "Link must be a valid URL"
		}
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

func ValidateProjectRole(draft ProjectRoleDraft) ValidationErrors {
	errors := ValidationErrors{}

	title := strings.TrimSpace(draft.Title)
	switch {
	case title == "":
		errors["title"] = "Title is required"
	case utf8.RuneCountInString(title) > RoleTitleMaxLength:
		errors["title"] = fmt.Sprintf("Title must be at most %d characters", RoleTitleMaxLength)
	}

	description := strings.TrimSpace(draft.Description)
	switch {
	case description == "":
		errors["description"] = "Description is required"
	case utf8.RuneCountInString(description) > RoleDescMaxLength:
		errors["description"] = fmt.Sprintf("Description must be at most %d characters", RoleDescMaxLength)
	}

	if len(draft.TechStackIDs) == 0 {
		errors["techStacks"] = "At least one tech stack is required"
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

var githubRepoPath = regexp.MustCompile(`^/([A-Za-z0-9](?:[A-Za-z0-9-]{0,38}))/([A-Za-z0-9._-]{1,100})/?$`)

// ParseGithubRepositoryURL accepts https://github.com/<owner>/<repo>, with an
// optional .git suffix or trailing slash.
func ParseGithubRepositoryURL(raw string) (owner string, repo string, ok bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false
	}

	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return "", "", false
	}

	host := strings.ToLower(parsed.Host)
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}

	match := githubRepoPath.FindStringSubmatch(parsed.Path)
	if match == nil {
		return "", "", false
	}

	repo = strings.TrimSuffix(match[2], ".git")
	if repo == "" || repo == "." || repo == ".." {
		return "", "", false
	}

	return match[1], repo, true
}

func checkLength(errors ValidationErrors, field, value string, minLength, maxLength int, label string) {
	length := utf8.RuneCountInString(strings.TrimSpace(value))

	switch {
	case length == 0:
		errors[field] = label + " is required"
	case length < minLength || length > maxLength:
		errors[field] = fmt.Sprintf("%s must be between %d and %d characters", label, minLength, maxLength)
	}
}

// IsHTTPURL accepts absolute http and https URLs only.
func IsHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
