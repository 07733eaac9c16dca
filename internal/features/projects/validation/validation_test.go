package projects_validation

import (
	"strings"
	"testing"

	projects_enums "opensourcetogether/internal/features/projects/enums"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validDraft() ProjectDraft {
	return ProjectDraft{
		Title:        "Open Source Together",
		Description:  "A platform to find contributors for open source projects",
		TechStackIDs: []uuid.UUID{uuid.New()},
		CategoryIDs:  []uuid.UUID{uuid.New()},
	}
}

func Test_ValidateProject_FullyPopulatedDraft_ReturnsNil(t *testing.T) {
	draft := validDraft()
	draft.CoverImages = []string{"https://img.test/1.png", "https://img.test/2.png"}
	draft.KeyFeatures = []string{"Realtime notifications"}
	draft.ProjectRoles = []ProjectRoleDraft{
		{Title: "Backend", Description: "API dev", TechStackIDs: []uuid.UUID{uuid.New()}},
	}
	draft.ExternalLinks = []ExternalLinkDraft{
		{Type: projects_enums.ExternalLinkTypeDiscord, URL: "https://discord.gg/ost"},
	}

	assert.Nil(t, ValidateProject(draft))
}

func Test_ValidateProject_MissingRequiredFields_KeysEachField(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ProjectDraft)
		expectedField string
	}{
		{name: "title", mutate: func(d *ProjectDraft) { d.Title = "" }, expectedField: "title"},
		{name: "description", mutate: func(d *ProjectDraft) { d.Description = "   " }, expectedField: "description"},
		{name: "tech stacks", mutate: func(d *ProjectDraft) { d.TechStackIDs = nil }, expectedField: "techStacks"},
		{name: "categories", mutate: func(d *ProjectDraft) { d.CategoryIDs = []uuid.UUID{} }, expectedField: "categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			errors := ValidateProject(draft)

			assert.Len(t, errors, 1)
			assert.Contains(t, errors, tt.expectedField)
		})
	}
}

func Test_ValidateProject_LengthBounds(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		isValid     bool
	}{
		{name: "minimum lengths", title: "abc", description: strings.Repeat("d", 10), isValid: true},
		{name: "maximum lengths", title: strings.Repeat("t", 100), description: strings.Repeat("d", 1000), isValid: true},
		{name: "title too short", title: "ab", description: strings.Repeat("d", 10), isValid: false},
		{name: "title too long", title: strings.Repeat("t", 101), description: strings.Repeat("d", 10), isValid: false},
		{name: "description too short", title: "abc", description: "too short", isValid: false},
		{name: "description too long", title: "abc", description: strings.Repeat("d", 1001), isValid: false},
		{name: "multibyte title counted by runes", title: "日本語", description: strings.Repeat("d", 10), isValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.Title = tt.title
			draft.Description = tt.description

			errors := ValidateProject(draft)

			if tt.isValid {
				assert.Nil(t, errors)
			} else {
				assert.NotNil(t, errors)
			}
		})
	}
}

func Test_ValidateProject_TooManyCoverImages_ReturnsCoverImagesError(t *testing.T) {
	draft := validDraft()
	for i := 0; i < 5; i++ {
		draft.CoverImages = append(draft.CoverImages, "https://img.test/cover.png")
	}

	errors := ValidateProject(draft)

	assert.Contains(t, errors, "coverImages")
}

func Test_ValidateProject_InvalidRole_IsKeyedByIndex(t *testing.T) {
	draft := validDraft()
	draft.ProjectRoles = []ProjectRoleDraft{
		{Title: "Frontend", Description: "UI", TechStackIDs: []uuid.UUID{uuid.New()}},
		{Title: "Backend", Description: "API dev"},
	}

	errors := ValidateProject(draft)

	assert.Equal(t, ValidationErrors{
		"projectRoles[1].techStacks": "At least one tech stack is required",
	}, errors)
}

func Test_ValidateProject_InvalidExternalLink_ReturnsTypeAndURLErrors(t *testing.T) {
	draft := validDraft()
	draft.ExternalLinks = []ExternalLinkDraft{{Type: "MYSPACE", URL: "not a url"}}

	errors := ValidateProject(draft)

	assert.Contains(t, errors, "externalLinks[0].type")
	assert.Contains(t, errors, "externalLinks[0].url")
}

func Test_ValidateProject_IsDeterministic(t *testing.T) {
	draft := validDraft()
	draft.Title = ""
	draft.CategoryIDs = nil

	assert.Equal(t, ValidateProject(draft), ValidateProject(draft))
}

func Test_ValidateProjectRole_WithoutTechStacks_ReturnsTechStacksError(t *testing.T) {
	errors := ValidateProjectRole(ProjectRoleDraft{Title: "Backend", Description: "API dev", TechStackIDs: []uuid.UUID{}})

	assert.Len(t, errors, 1)
	assert.Contains(t, errors["techStacks"], "At least one tech stack is required")
}

func Test_ValidateProjectRole_WithTechStack_ReturnsNil(t *testing.T) {
	errors := ValidateProjectRole(ProjectRoleDraft{
		Title:        "Backend",
		Description:  "API dev",
		TechStackIDs: []uuid.UUID{uuid.New()},
	})

	assert.Nil(t, errors)
}

func Test_ValidateProjectRole_EmptyTitleAndDescription_ReturnsBothErrors(t *testing.T) {
	errors := ValidateProjectRole(ProjectRoleDraft{TechStackIDs: []uuid.UUID{uuid.New()}})

	assert.Contains(t, errors, "title")
	assert.Contains(t, errors, "description")
}

func Test_ParseGithubRepositoryURL(t *testing.T) {
	tests := []struct {
		raw   string
		owner string
		repo  string
		ok    bool
	}{
		{raw: "https://github.com/octocat/hello-world", owner: "octocat", repo: "hello-world", ok: true},
		{raw: "https://github.com/octocat/hello-world.git", owner: "octocat", repo: "hello-world", ok: true},
		{raw: "https://www.github.com/octocat/hello.world/", owner: "octocat", repo: "hello.world", ok: true},
		{raw: "https://gitlab.com/octocat/hello-world", ok: false},
		{raw: "https://github.com/octocat", ok: false},
		{raw: "https://github.com/octocat/hello-world/issues", ok: false},
		{raw: "git@github.com:octocat/hello-world.git", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			owner, repo, ok := ParseGithubRepositoryURL(tt.raw)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}
