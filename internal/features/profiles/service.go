package profiles

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"opensourcetogether/internal/features/audit_logs"
	projects_validation "opensourcetogether/internal/features/projects/validation"
	"opensourcetogether/internal/features/techstacks"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_models "opensourcetogether/internal/features/users/models"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
)

const (
	bioMaxLength      = 1000
	jobTitleMaxLength = 100
	locationMaxLength = 100
)

var (
	ErrProfileNotFound = errs.NotFound(errs.CodeProfileNotFound, "Profile not found")
	ErrUserNotFound    = errs.NotFound(errs.CodeUserNotFound, "User not found")
)

type ProfileService struct {
	profileRepository *ProfileRepository
	techStackService  *techstacks.TechStackService
	userService       *users_services.UserService
	auditLogService   *audit_logs.AuditLogService
}

func (s *ProfileService) UpsertProfile(
	request *UpsertProfileRequestDTO,
	user *users_models.User,
) (*ProfileResponseDTO, error) {
	if validationErrors := validateProfile(request); validationErrors != nil {
		return nil, errs.Validation(validationErrors)
	}

	techStackIDs := uniqueIDs(request.TechStackIDs)
	if _, err := s.techStackService.FindByIDs(techStackIDs); err != nil {
		return nil, err
	}

	profile := &Profile{
		UserID:   user.ID,
		Bio:      strings.TrimSpace(request.Bio),
		JobTitle: strings.TrimSpace(request.JobTitle),
		Location: strings.TrimSpace(request.Location),
		Website:  strings.TrimSpace(request.Website),
	}

	if err := s.profileRepository.Upsert(profile, techStackIDs, toSocialLinks(request.SocialLinks)); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.auditLogService.WriteAuditLog("Profile updated", &user.ID, nil)

	return s.getProfile(user)
}

func (s *ProfileService) GetMyProfile(user *users_models.User) (*ProfileResponseDTO, error) {
	return s.getProfile(user)
}

func (s *ProfileService) GetProfile(userID uuid.UUID) (*ProfileResponseDTO, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.getProfile(user)
}

func (s *ProfileService) getProfile(user *users_models.User) (*ProfileResponseDTO, error) {
	profile, err := s.profileRepository.GetByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return toResponse(profile, user), nil
}

func validateProfile(request *UpsertProfileRequestDTO) map[string]string {
	errors := map[string]string{}

	checkMaxLength(errors, "bio", request.Bio, bioMaxLength, "Bio")
	checkMaxLength(errors, "jobTitle", request.JobTitle, jobTitleMaxLength, "Job title")
	checkMaxLength(errors, "location", request.Location, locationMaxLength, "Location")

	if website := strings.TrimSpace(request.Website); website != "" && !projects_validation.IsHTTPURL(website) {
		errors["website"] = "Website must be an http or https URL"
	}

	for linkType, url := range request.SocialLinks {
		field := fmt.Sprintf("socialLinks.%s", linkType)
		if !linkType.IsValid() {
			errors[field] = "Unknown social link type"
			continue
		}
		if !projects_validation.IsHTTPURL(strings.TrimSpace(url)) {
			errors[field] = "Social link must be an http or https URL"
		}
	}

	if len(errors) == 0 {
		return nil
	}

	return errors
}

func checkMaxLength(errors map[string]string, field, value string, maxLength int, label string) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > maxLength {
		errors[field] = fmt.Sprintf("%s must be at most %d characters", label, maxLength)
	}
}

func toSocialLinks(links map[SocialLinkType]string) []*SocialLink {
	result := make([]*SocialLink, 0, len(links))
	for linkType, url := range links {
		result = append(result, &SocialLink{Type: linkType, URL: strings.TrimSpace(url)})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })

	return result
}

func toResponse(profile *Profile, user *users_models.User) *ProfileResponseDTO {
	links := make(map[SocialLinkType]string, len(profile.SocialLinks))
	for _, link := range profile.SocialLinks {
		links[link.Type] = link.URL
	}

	techStacks := profile.TechStacks
	if techStacks == nil {
		techStacks = []*techstacks.TechStack{}
	}

	return &ProfileResponseDTO{
		UserID: user.ID,
		User: &users_dto.PublicUserDTO{
			ID:        user.ID,
			Login:     user.Login,
			Name:      user.Name,
			AvatarURL: user.AvatarURL,
		},
		Bio:         profile.Bio,
		JobTitle:    profile.JobTitle,
		Location:    profile.Location,
		Website:     profile.Website,
		TechStacks:  techStacks,
		SocialLinks: links,
		UpdatedAt:   profile.UpdatedAt,
	}
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
