package projects_services

import (
	"fmt"
	"strings"

	"opensourcetogether/internal/features/audit_logs"
	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_models "opensourcetogether/internal/features/projects/models"
	projects_repositories "opensourcetogether/internal/features/projects/repositories"
	projects_validation "opensourcetogether/internal/features/projects/validation"
	"opensourcetogether/internal/features/techstacks"
	users_models "opensourcetogether/internal/features/users/models"
	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
)

type ProjectRoleService struct {
	projectRoleRepository *projects_repositories.ProjectRoleRepository
	projectService        *ProjectService
	techStackService      *techstacks.TechStackService
	auditLogService       *audit_logs.AuditLogService
}

func (s *ProjectRoleService) GetProjectRoles(projectID uuid.UUID) ([]*projects_models.ProjectRole, error) {
	if _, err := s.projectService.GetProjectByID(projectID); err != nil {
		return nil, err
	}

	roles, err := s.projectRoleRepository.GetRolesByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project roles: %w", err)
	}

	return roles, nil
}

func (s *ProjectRoleService) CreateProjectRole(
	projectID uuid.UUID,
	request *projects_dto.ProjectRoleRequestDTO,
	user *users_models.User,
) (*projects_models.ProjectRole, error) {
	project, err := s.projectService.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if !s.projectService.CanUserModifyProject(project, user.ID) {
		return nil, ErrProjectModificationDenied
	}

	if _, err := s.techStackService.FindByIDs(request.TechStackIDs); err != nil {
		return nil, err
	}

	draft := projects_validation.ProjectRoleDraft{
		Title:        request.Title,
		Description:  request.Description,
		TechStackIDs: request.TechStackIDs,
	}
	if validationErrors := projects_validation.ValidateProjectRole(draft); validationErrors != nil {
		return nil, errs.Validation(validationErrors)
	}

	role := &projects_models.ProjectRole{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(request.Title),
		Description: strings.TrimSpace(request.Description),
	}

	if err := s.projectRoleRepository.CreateRole(role, uniqueIDs(request.TechStackIDs)); err != nil {
		return nil, fmt.Errorf("failed to create project role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project role created: %s", role.Title),
		&user.ID,
		&projectID,
	)

	return s.GetRoleByID(role.ID)
}

func (s *ProjectRoleService) UpdateProjectRole(
	projectID uuid.UUID,
	roleID uuid.UUID,
	request *projects_dto.UpdateProjectRoleRequestDTO,
	user *users_models.User,
) (*projects_models.ProjectRole, error) {
	role, project, err := s.getOwnedRole(projectID, roleID, user)
	if err != nil {
		return nil, err
	}

	var techStackIDs []uuid.UUID
	if request.TechStackIDs != nil {
		if _, err := s.techStackService.FindByIDs(*request.TechStackIDs); err != nil {
			return nil, err
		}
		techStackIDs = uniqueIDs(*request.TechStackIDs)
	}

	if request.Title != nil {
		role.Title = strings.TrimSpace(*request.Title)
	}
	if request.Description != nil {
		role.Description = strings.TrimSpace(*request.Description)
	}
	if request.IsFilled != nil {
		role.IsFilled = *request.IsFilled
	}

	draft := projects_validation.ProjectRoleDraft{
		Title:        role.Title,
		Description:  role.Description,
		TechStackIDs: role.TechStackIDs(),
	}
	if techStackIDs != nil {
		draft.TechStackIDs = techStackIDs
	}
	if validationErrors := projects_validation.ValidateProjectRole(draft); validationErrors != nil {
		return nil, errs.Validation(validationErrors)
	}

	if err := s.projectRoleRepository.UpdateRole(role, techStackIDs); err != nil {
		return nil, fmt.Errorf("failed to update project role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project role updated: %s", role.Title),
		&user.ID,
		&project.ID,
	)

	return s.GetRoleByID(role.ID)
}

func (s *ProjectRoleService) DeleteProjectRole(projectID uuid.UUID, roleID uuid.UUID, user *users_models.User) error {
	role, project, err := s.getOwnedRole(projectID, roleID, user)
	if err != nil {
		return err
	}

	if err := s.projectRoleRepository.DeleteRole(role.ID); err != nil {
		return fmt.Errorf("failed to delete project role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project role deleted: %s", role.Title),
		&user.ID,
		&project.ID,
	)

	return nil
}

func (s *ProjectRoleService) GetRoleByID(roleID uuid.UUID) (*projects_models.ProjectRole, error) {
	role, err := s.projectRoleRepository.GetRoleByID(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project role: %w", err)
	}
	if role == nil {
		return nil, ErrProjectRoleNotFound
	}

	return role, nil
}

// getOwnedRole checks, in order, that the role exists, that it belongs to the
// project and that the user owns the project.
func (s *ProjectRoleService) getOwnedRole(
	projectID uuid.UUID,
	roleID uuid.UUID,
	user *users_models.User,
) (*projects_models.ProjectRole, *projects_models.Project, error) {
	role, err := s.GetRoleByID(roleID)
	if err != nil {
		return nil, nil, err
	}

	if role.ProjectID != projectID {
		return nil, nil, ErrProjectRoleNotInProject
	}

	project, err := s.projectService.GetProjectByID(projectID)
	if err != nil {
		return nil, nil, err
	}

	if !s.projectService.CanUserModifyProject(project, user.ID) {
		return nil, nil, ErrProjectModificationDenied
	}

	return role, project, nil
}
