package users_controllers

import (
	users_services "opensourcetogether/internal/features/users/services"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	userService:        users_services.GetUserService(),
	githubOAuthService: users_services.GetGithubOAuthService(),
	signinLimiter:      rate.NewLimiter(rate.Limit(5), 10),
}

func GetUserController() *UserController {
	return userController
}
