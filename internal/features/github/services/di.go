package github_services

import (
	"sync"
	"time"

	"opensourcetogether/internal/cache"
	github_client "opensourcetogether/internal/features/github/client"
	github_dto "opensourcetogether/internal/features/github/dto"
	users_services "opensourcetogether/internal/features/users/services"
	cache_utils "opensourcetogether/internal/util/cache"
)

var githubService = &GithubService{
	clientFactory: &TokenClientFactory{
		userService: users_services.GetUserService(),
	},
	repoStatsCache: cache_utils.NewCacheUtil[github_dto.RepositoryStats](cache.GetCache(), "ost:github:repo_stats:").
		WithExpiry(5 * time.Minute),
	userStatsCache: cache_utils.NewCacheUtil[github_client.UserStats](cache.GetCache(), "ost:github:user_stats:").
		WithExpiry(30 * time.Minute),
}

var identityFetcher = &IdentityFetcher{githubService: githubService}

func GetGithubService() *GithubService {
	return githubService
}

var setupOnce sync.Once

// SetupDependencies lets GitHub sign-in resolve identities through this package.
func SetupDependencies() {
	setupOnce.Do(func() {
		users_services.GetGithubOAuthService().SetIdentityFetcher(identityFetcher)
	})
}
