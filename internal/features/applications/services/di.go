package applications_services

import (
	"sync"

	applications_repositories "opensourcetogether/internal/features/applications/repositories"
	"opensourcetogether/internal/features/audit_logs"
	"opensourcetogether/internal/features/email"
	github_services "opensourcetogether/internal/features/github/services"
	notifications_services "opensourcetogether/internal/features/notifications/services"
	projects_services "opensourcetogether/internal/features/projects/services"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/logger"
)

var applicationService = &ApplicationService{
	applicationRepository: &applications_repositories.ApplicationRepository{},
	projectService:        projects_services.GetProjectService(),
	projectRoleService:    projects_services.GetProjectRoleService(),
	userService:           users_services.GetUserService(),
	githubService:         github_services.GetGithubService(),
	notificationService:   notifications_services.GetNotificationService(),
	emailService:          email.GetEmailService(),
	auditLogService:       audit_logs.GetAuditLogService(),
	logger:                logger.GetLogger(),
}

func GetApplicationService() *ApplicationService {
	return applicationService
}

var setupOnce sync.Once

func SetupDependencies() {
	setupOnce.Do(func() {
		projects_services.GetProjectService().AddProjectDeletionListener(applicationService)
	})
}
