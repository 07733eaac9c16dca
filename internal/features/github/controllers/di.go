package github_controllers

import (
	github_services "opensourcetogether/internal/features/github/services"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/rate_limit"
)

var githubController = &GithubController{
	githubService:     github_services.GetGithubService(),
	userService:       users_services.GetUserService(),
	publicRateLimiter: rate_limit.NewRateLimiter("rate_limit:github_public:"),
}

func GetGithubController() *GithubController {
	return githubController
}
