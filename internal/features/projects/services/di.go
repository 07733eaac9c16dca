package projects_services

import (
	"opensourcetogether/internal/features/audit_logs"
	"opensourcetogether/internal/features/categories"
	github_services "opensourcetogether/internal/features/github/services"
	projects_interfaces "opensourcetogether/internal/features/projects/interfaces"
	projects_repositories "opensourcetogether/internal/features/projects/repositories"
	"opensourcetogether/internal/features/techstacks"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var projectRoleRepository = &projects_repositories.ProjectRoleRepository{}

var projectService = &ProjectService{
	projectRepository:        projectRepository,
	techStackService:         techstacks.GetTechStackService(),
	categoryService:          categories.GetCategoryService(),
	userService:              users_services.GetUserService(),
	githubService:            github_services.GetGithubService(),
	auditLogService:          audit_logs.GetAuditLogService(),
	projectDeletionListeners: []projects_interfaces.ProjectDeletionListener{},
	logger:                   logger.GetLogger(),
}

var projectRoleService = &ProjectRoleService{
	projectRoleRepository: projectRoleRepository,
	projectService:        projectService,
	techStackService:      techstacks.GetTechStackService(),
	auditLogService:       audit_logs.GetAuditLogService(),
}

var githubSyncBackgroundService = &GithubSyncBackgroundService{
	projectService: projectService,
	logger:         logger.GetLogger(),
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetProjectRoleService() *ProjectRoleService {
	return projectRoleService
}

func GetGithubSyncBackgroundService() *GithubSyncBackgroundService {
	return githubSyncBackgroundService
}
