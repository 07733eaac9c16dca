package applications_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	applications_dto "opensourcetogether/internal/features/applications/dto"
	applications_enums "opensourcetogether/internal/features/applications/enums"
	applications_models "opensourcetogether/internal/features/applications/models"
	applications_repositories "opensourcetogether/internal/features/applications/repositories"
	"opensourcetogether/internal/config"
	"opensourcetogether/internal/features/audit_logs"
	"opensourcetogether/internal/features/email"
	github_services "opensourcetogether/internal/features/github/services"
	notifications_enums "opensourcetogether/internal/features/notifications/enums"
	notifications_services "opensourcetogether/internal/features/notifications/services"
	projects_models "opensourcetogether/internal/features/projects/models"
	projects_services "opensourcetogether/internal/features/projects/services"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_models "opensourcetogether/internal/features/users/models"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationService struct {
	applicationRepository *applications_repositories.ApplicationRepository
	projectService        *projects_services.ProjectService
	projectRoleService    *projects_services.ProjectRoleService
	userService           *users_services.UserService
	githubService         *github_services.GithubService
	notificationService   *notifications_services.NotificationService
	emailService          *email.EmailService
	auditLogService       *audit_logs.AuditLogService
	logger                *slog.Logger
}

// Apply checks, in order: the role exists, it belongs to the project, the
// project exists, the user does not own it, the role is open and the user has
// no pending application for it.
func (s *ApplicationService) Apply(
	ctx context.Context,
	request *applications_dto.ApplyRequestDTO,
	user *users_models.User,
) (*applications_dto.ApplicationResponseDTO, error) {
	role, err := s.projectRoleService.GetRoleByID(request.ProjectRoleID)
	if err != nil {
		return nil, err
	}

	if role.ProjectID != request.ProjectID {
		return nil, projects_services.ErrProjectRoleNotInProject
	}

	project, err := s.projectService.GetProjectByID(request.ProjectID)
	if err != nil {
		return nil, err
	}

	if project.OwnerID != nil && *project.OwnerID == user.ID {
		return nil, ErrCannotApplyToOwnProject
	}

	if role.IsFilled {
		return nil, ErrProjectRoleAlreadyFilled
	}

	isPending, err := s.applicationRepository.ExistsPending(user.ID, role.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing applications: %w", err)
	}
	if isPending {
		return nil, ErrApplicationAlreadyExists
	}

	if validationErrors := validateApplication(
		request.MotivationLetter,
		request.SelectedKeyFeatures,
		keyFeatureNames(project),
	); validationErrors != nil {
		return nil, errs.Validation(validationErrors)
	}

	application := &applications_models.ProjectRoleApplication{
		ProjectID:           project.ID,
		ProjectRoleID:       role.ID,
		UserID:              user.ID,
		Status:              applications_enums.ApplicationStatusPending,
		MotivationLetter:    strings.TrimSpace(request.MotivationLetter),
		SelectedKeyFeatures: datatypes.JSONSlice[string](nonNil(request.SelectedKeyFeatures)),
	}

	if err := s.applicationRepository.Create(application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrApplicationAlreadyExists
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	application.Project = project
	application.ProjectRole = role

	if project.OwnerID != nil {
		s.notify(ctx, *project.OwnerID, &user.ID,
			notifications_enums.NotificationTypeApplicationCreated, application, user)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Application submitted for role %s by %s", role.Title, user.Login),
		&user.ID,
		&project.ID,
	)

	return s.toResponse(application, user), nil
}

func (s *ApplicationService) Cancel(
	ctx context.Context,
	applicationID uuid.UUID,
	user *users_models.User,
) (*applications_dto.ApplicationResponseDTO, error) {
	application, err := s.getApplication(applicationID)
	if err != nil {
		return nil, err
	}

	if application.UserID != user.ID {
		return nil, ErrCancelDenied
	}

	if err := s.decide(application, applications_enums.ApplicationStatusCancelled, nil, user); err != nil {
		return nil, err
	}

	if application.Project != nil && application.Project.OwnerID != nil {
		s.notify(ctx, *application.Project.OwnerID, &user.ID,
			notifications_enums.NotificationTypeApplicationCancelled, application, user)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Application cancelled for role %s by %s", roleTitle(application), user.Login),
		&user.ID,
		&application.ProjectID,
	)

	return s.toResponse(application, user), nil
}

// Accept fills the role and invites the applicant to the repository. A role
// takes one accepted applicant; the invitation is best effort.
func (s *ApplicationService) Accept(
	ctx context.Context,
	applicationID uuid.UUID,
	user *users_models.User,
) (*applications_dto.ApplicationResponseDTO, error) {
	application, project, applicant, err := s.getForDecision(applicationID, user)
	if err != nil {
		return nil, err
	}

	if application.ProjectRole != nil && application.ProjectRole.IsFilled {
		return nil, ErrProjectRoleAlreadyFilled
	}

	if err := s.decide(application, applications_enums.ApplicationStatusAccepted, nil, user); err != nil {
		return nil, err
	}

	s.inviteCollaborator(ctx, project, applicant)

	s.notify(ctx, applicant.ID, &user.ID,
		notifications_enums.NotificationTypeApplicationAccepted, application, applicant)
	s.sendDecisionEmail(application, project, applicant)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Application accepted: %s joins as %s", applicant.Login, roleTitle(application)),
		&user.ID,
		&project.ID,
	)

	return s.toResponse(application, applicant), nil
}

func (s *ApplicationService) Reject(
	ctx context.Context,
	applicationID uuid.UUID,
	request *applications_dto.RejectRequestDTO,
	user *users_models.User,
) (*applications_dto.ApplicationResponseDTO, error) {
	application, project, applicant, err := s.getForDecision(applicationID, user)
	if err != nil {
		return nil, err
	}

	var reason *string
	if trimmed := strings.TrimSpace(request.RejectionReason); trimmed != "" {
		if validationErrors := validateRejectionReason(trimmed); validationErrors != nil {
			return nil, errs.Validation(validationErrors)
		}
		reason = &trimmed
	}

	if err := s.decide(application, applications_enums.ApplicationStatusRejected, reason, user); err != nil {
		return nil, err
	}

	s.notify(ctx, applicant.ID, &user.ID,
		notifications_enums.NotificationTypeApplicationRejected, application, applicant)
	s.sendDecisionEmail(application, project, applicant)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Application rejected: %s for %s", applicant.Login, roleTitle(application)),
		&user.ID,
		&project.ID,
	)

	return s.toResponse(application, applicant), nil
}

func (s *ApplicationService) GetMyApplications(user *users_models.User) ([]*applications_dto.ApplicationResponseDTO, error) {
	applications, err := s.applicationRepository.GetByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get applications: %w", err)
	}

	responses := make([]*applications_dto.ApplicationResponseDTO, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, s.toResponse(application, user))
	}

	return responses, nil
}

func (s *ApplicationService) GetProjectApplications(
	projectID uuid.UUID,
	user *users_models.User,
) ([]*applications_dto.ApplicationResponseDTO, error) {
	project, err := s.projectService.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if !s.projectService.CanUserModifyProject(project, user.ID) {
		return nil, ErrApplicationsAccessDenied
	}

	applications, err := s.applicationRepository.GetByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project applications: %w", err)
	}

	userIDs := make([]uuid.UUID, 0, len(applications))
	for _, application := range applications {
		userIDs = append(userIDs, application.UserID)
	}

	applicants, err := s.userService.GetUsersByIDs(userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicants: %w", err)
	}

	responses := make([]*applications_dto.ApplicationResponseDTO, 0, len(applications))
	for _, application := range applications {
		responses = append(responses, s.toResponse(application, applicants[application.UserID]))
	}

	return responses, nil
}

func (s *ApplicationService) OnBeforeProjectDeletion(projectID uuid.UUID) error {
	if err := s.applicationRepository.DeleteByProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project applications: %w", err)
	}

	return nil
}

func (s *ApplicationService) getApplication(applicationID uuid.UUID) (*applications_models.ProjectRoleApplication, error) {
	application, err := s.applicationRepository.GetByID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	return application, nil
}

// getForDecision checks ownership before status so a stranger always gets 403.
func (s *ApplicationService) getForDecision(
	applicationID uuid.UUID,
	user *users_models.User,
) (*applications_models.ProjectRoleApplication, *projects_models.Project, *users_models.User, error) {
	application, err := s.getApplication(applicationID)
	if err != nil {
		return nil, nil, nil, err
	}

	project, err := s.projectService.GetProjectByID(application.ProjectID)
	if err != nil {
		return nil, nil, nil, err
	}

	if !s.projectService.CanUserModifyProject(project, user.ID) {
		return nil, nil, nil, ErrDecisionDenied
	}

	if !application.IsPending() {
		return nil, nil, nil, ErrApplicationAlreadyDecided
	}

	applicant, err := s.userService.GetUserByID(application.UserID)
	if err != nil {
		return nil, nil, nil, err
	}

	return application, project, applicant, nil
}

func (s *ApplicationService) decide(
	application *applications_models.ProjectRoleApplication,
	status applications_enums.ApplicationStatus,
	rejectionReason *string,
	user *users_models.User,
) error {
	if !application.IsPending() {
		return ErrApplicationAlreadyDecided
	}

	now := time.Now().UTC()
	application.Status = status
	application.RejectionReason = rejectionReason
	application.DecidedAt = &now
	application.DecidedBy = &user.ID

	var err error
	if status == applications_enums.ApplicationStatusAccepted {
		err = s.applicationRepository.DecideAndFillRole(application)
	} else {
		err = s.applicationRepository.Decide(application)
	}

	switch {
	case errors.Is(err, applications_repositories.ErrStatusChanged):
		return ErrApplicationAlreadyDecided
	case errors.Is(err, applications_repositories.ErrRoleFilled):
		return ErrProjectRoleAlreadyFilled
	case err != nil:
		return fmt.Errorf("failed to update application: %w", err)
	}

	if status == applications_enums.ApplicationStatusAccepted && application.ProjectRole != nil {
		application.ProjectRole.IsFilled = true
	}

	return nil
}

func (s *ApplicationService) inviteCollaborator(
	ctx context.Context,
	project *projects_models.Project,
	applicant *users_models.User,
) {
	if !project.IsGithubSynced() || project.OwnerID == nil {
		return
	}

	client, err := s.githubService.GetClientFactory().ForUser(ctx, *project.OwnerID)
	if err != nil {
		s.logger.Warn("Skipping collaborator invitation, owner has no GitHub client",
			"projectId", project.ID,
			"error", err)
		return
	}

	if err := client.InviteCollaborator(ctx, project.GithubOwner, project.GithubRepo, applicant.Login); err != nil {
		s.logger.Warn("Failed to invite collaborator",
			"projectId", project.ID,
			"login", applicant.Login,
			"error", err)
	}
}

func (s *ApplicationService) notify(
	ctx context.Context,
	receiverID uuid.UUID,
	senderID *uuid.UUID,
	notificationType notifications_enums.NotificationType,
	application *applications_models.ProjectRoleApplication,
	applicant *users_models.User,
) {
	payload := applications_dto.NotificationPayload{
		ApplicationID:    application.ID,
		ProjectID:        application.ProjectID,
		ProjectTitle:     projectTitle(application),
		ProjectRoleID:    application.ProjectRoleID,
		ProjectRoleTitle: roleTitle(application),
		UserID:           applicant.ID,
		UserLogin:        applicant.Login,
	}
	if application.RejectionReason != nil {
		payload.RejectionReason = *application.RejectionReason
	}

	_, err := s.notificationService.Notify(ctx, notifications_services.NotifyInput{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Type:       notificationType,
		Payload:    payload,
	})
	if err != nil {
		s.logger.Error("Failed to create notification",
			"type", notificationType,
			"applicationId", application.ID,
			"error", err)
	}
}

func (s *ApplicationService) sendDecisionEmail(
	application *applications_models.ProjectRoleApplication,
	project *projects_models.Project,
	applicant *users_models.User,
) {
	if applicant.Email == "" {
		return
	}

	data := email.ApplicationDecisionEmail{
		ApplicantName: displayName(applicant),
		ProjectTitle:  project.Title,
		RoleTitle:     roleTitle(application),
		IsAccepted:    application.Status == applications_enums.ApplicationStatusAccepted,
		ProjectURL:    fmt.Sprintf("%s/projects/%s", strings.TrimSuffix(config.GetEnv().FrontendURL, "/"), project.ID),
		RepositoryURL: project.GithubRepoURL(),
	}
	if application.RejectionReason != nil {
		data.RejectionReason = *application.RejectionReason
	}

	subject, body, err := email.RenderApplicationDecision(data)
	if err != nil {
		s.logger.Error("Failed to render decision e-mail", "applicationId", application.ID, "error", err)
		return
	}

	if err := s.emailService.QueueEmail(applicant.Email, subject, body); err != nil {
		s.logger.Error("Failed to queue decision e-mail", "applicationId", application.ID, "error", err)
	}
}

func (s *ApplicationService) toResponse(
	application *applications_models.ProjectRoleApplication,
	applicant *users_models.User,
) *applications_dto.ApplicationResponseDTO {
	response := &applications_dto.ApplicationResponseDTO{
		ID:                  application.ID,
		ProjectID:           application.ProjectID,
		ProjectTitle:        projectTitle(application),
		ProjectRoleID:       application.ProjectRoleID,
		ProjectRoleTitle:    roleTitle(application),
		Status:              application.Status,
		MotivationLetter:    application.MotivationLetter,
		SelectedKeyFeatures: nonNil(application.SelectedKeyFeatures),
		RejectionReason:     application.RejectionReason,
		AppliedAt:           application.AppliedAt,
		DecidedAt:           application.DecidedAt,
		DecidedBy:           application.DecidedBy,
	}

	if applicant != nil {
		response.Applicant = &users_dto.PublicUserDTO{
			ID:        applicant.ID,
			Login:     applicant.Login,
			Name:      applicant.Name,
			AvatarURL: applicant.AvatarURL,
		}
	}

	return response
}

func keyFeatureNames(project *projects_models.Project) []string {
	names := make([]string, 0, len(project.KeyFeatures))
	for _, feature := range project.KeyFeatures {
		names = append(names, feature.Feature)
	}
	return names
}

func projectTitle(application *applications_models.ProjectRoleApplication) string {
	if application.Project == nil {
		return ""
	}
	return application.Project.Title
}

func roleTitle(application *applications_models.ProjectRoleApplication) string {
	if application.ProjectRole == nil {
		return ""
	}
	return application.ProjectRole.Title
}

func displayName(user *users_models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Login
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
