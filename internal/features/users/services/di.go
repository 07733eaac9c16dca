package users_services

import (
	"time"

	"opensourcetogether/internal/cache"
	users_repositories "opensourcetogether/internal/features/users/repositories"
	cache_utils "opensourcetogether/internal/util/cache"
)

var secretKeyRepository = &users_repositories.SecretKeyRepository{}
var userRepository = &users_repositories.UserRepository{}
var credentialsRepository = &users_repositories.CredentialsRepository{}

var userService = &UserService{
	userRepository:        userRepository,
	secretKeyRepository:   secretKeyRepository,
	credentialsRepository: credentialsRepository,
}

var githubOAuthService = &GithubOAuthService{
	userService: userService,
	stateCache: cache_utils.NewCacheUtil[string](cache.GetCache(), "ost:oauth_state:").
		WithExpiry(10 * time.Minute),
}

func GetUserService() *UserService {
	return userService
}

func GetGithubOAuthService() *GithubOAuthService {
	return githubOAuthService
}
