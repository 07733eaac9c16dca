package projects_services

import (
	"strings"

	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_models "opensourcetogether/internal/features/projects/models"
	projects_validation "opensourcetogether/internal/features/projects/validation"
	"opensourcetogether/internal/features/techstacks"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func createRequestToDraft(request *projects_dto.CreateProjectRequestDTO) projects_validation.ProjectDraft {
	draft := projects_validation.ProjectDraft{
		Title:        request.Title,
		Description:  request.Description,
		TechStackIDs: request.TechStackIDs,
		CategoryIDs:  request.CategoryIDs,
		CoverImages:  request.CoverImages,
		KeyFeatures:  request.KeyFeatures,
	}

	for _, role := range request.ProjectRoles {
		draft.ProjectRoles = append(draft.ProjectRoles, projects_validation.ProjectRoleDraft{
			Title:        role.Title,
			Description:  role.Description,
			TechStackIDs: role.TechStackIDs,
		})
	}

	for _, link := range request.ExternalLinks {
		draft.ExternalLinks = append(draft.ExternalLinks, projects_validation.ExternalLinkDraft{
			Type: link.Type,
			URL:  link.URL,
		})
	}

	return draft
}

// projectToDraft leaves roles out; they are validated by the role endpoints.
func projectToDraft(
	project *projects_models.Project,
	categoryIDs []uuid.UUID,
	techStackIDs []uuid.UUID,
) projects_validation.ProjectDraft {
	draft := projects_validation.ProjectDraft{
		Title:        project.Title,
		Description:  project.Description,
		TechStackIDs: techStackIDs,
		CategoryIDs:  categoryIDs,
		CoverImages:  project.CoverImages,
	}

	for _, feature := range project.KeyFeatures {
		draft.KeyFeatures = append(draft.KeyFeatures, feature.Feature)
	}

	for _, link := range project.ExternalLinks {
		draft.ExternalLinks = append(draft.ExternalLinks, projects_validation.ExternalLinkDraft{
			Type: link.Type,
			URL:  link.URL,
		})
	}

	return draft
}

func applyUpdate(project *projects_models.Project, request *projects_dto.UpdateProjectRequestDTO) {
	if request.Title != nil {
		project.Title = strings.TrimSpace(*request.Title)
	}
	if request.Description != nil {
		project.Description = strings.TrimSpace(*request.Description)
	}
	if request.Image != nil {
		project.Image = *request.Image
	}
	if request.CoverImages != nil {
		project.CoverImages = datatypes.JSONSlice[string](nonNilStrings(*request.CoverImages))
	}
	if request.KeyFeatures != nil {
		project.KeyFeatures = toKeyFeatures(*request.KeyFeatures)
	}
	if request.ExternalLinks != nil {
		project.ExternalLinks = toExternalLinks(*request.ExternalLinks)
	}
}

func toKeyFeatures(features []string) []*projects_models.KeyFeature {
	result := make([]*projects_models.KeyFeature, 0, len(features))
	for _, feature := range features {
		result = append(result, &projects_models.KeyFeature{Feature: strings.TrimSpace(feature)})
	}
	return result
}

func toExternalLinks(links []projects_dto.ExternalLinkDTO) []*projects_models.ExternalLink {
	result := make([]*projects_models.ExternalLink, 0, len(links))
	for _, link := range links {
		result = append(result, &projects_models.ExternalLink{Type: link.Type, URL: strings.TrimSpace(link.URL)})
	}
	return result
}

// techStackRefs builds id-only references, dropping duplicates so the join
// table primary key holds.
func techStackRefs(ids []uuid.UUID) []*techstacks.TechStack {
	seen := make(map[uuid.UUID]bool, len(ids))
	refs := make([]*techstacks.TechStack, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, &techstacks.TechStack{ID: id})
	}

	return refs
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}

	return result
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
