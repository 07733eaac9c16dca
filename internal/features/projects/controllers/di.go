package projects_controllers

import (
	github_services "opensourcetogether/internal/features/github/services"
	projects_services "opensourcetogether/internal/features/projects/services"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/rate_limit"
)

var projectController = &ProjectController{
	projectService:    projects_services.GetProjectService(),
	githubService:     github_services.GetGithubService(),
	userService:       users_services.GetUserService(),
	publicRateLimiter: rate_limit.NewRateLimiter("rate_limit:github_public:"),
}

var projectRoleController = &ProjectRoleController{
	projects_services.GetProjectRoleService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetProjectRoleController() *ProjectRoleController {
	return projectRoleController
}
