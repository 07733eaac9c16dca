package github_services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	github_client "opensourcetogether/internal/features/github/client"
	github_dto "opensourcetogether/internal/features/github/dto"
	cache_utils "opensourcetogether/internal/util/cache"
	"opensourcetogether/internal/util/errs"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	contributorsFetchLimit = 100
	contributorsShown      = 10
	statsFetchTimeout      = 20 * time.Second
)

type GithubService struct {
	clientFactory  ClientFactory
	repoStatsCache *cache_utils.CacheUtil[github_dto.RepositoryStats]
	userStatsCache *cache_utils.CacheUtil[github_client.UserStats]
	statsGroup     singleflight.Group
}

func (s *GithubService) SetClientFactory(factory ClientFactory) {
	s.clientFactory = factory
}

func (s *GithubService) GetClientFactory() ClientFactory {
	return s.clientFactory
}

// GetRepositoryStats returns cached stats when fresh. Concurrent misses for the
// same repository and credentials share one round of GitHub calls, which runs
// detached from any single caller's cancellation.
func (s *GithubService) GetRepositoryStats(
	ctx context.Context,
	client github_client.Client,
	owner string,
	repo string,
) (*github_dto.RepositoryStats, error) {
	key := statsKey(client, owner+"/"+repo)

	if cached := s.repoStatsCache.Get(key); cached != nil {
		return cached, nil
	}

	result, err, _ := s.statsGroup.Do("repo:"+key, func() (any, error) {
		fetchCtx, cancel := detachedFetchContext(ctx)
		defer cancel()

		stats, err := s.fetchRepositoryStats(fetchCtx, client, owner, repo)
		if err != nil {
			return nil, err
		}

		s.repoStatsCache.Set(key, stats)
		return stats, nil
	})
	if err != nil {
		return nil, MapError(err)
	}

	return result.(*github_dto.RepositoryStats), nil
}

func (s *GithubService) GetRepositoryDetails(
	ctx context.Context,
	client github_client.Client,
	owner string,
	repo string,
) (*github_dto.RepositoryDetailsDTO, error) {
	repository, err := client.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, MapError(err)
	}

	stats, err := s.GetRepositoryStats(ctx, client, owner, repo)
	if err != nil {
		return nil, err
	}

	readme, err := client.GetReadme(ctx, owner, repo)
	if err != nil {
		return nil, MapError(err)
	}

	return &github_dto.RepositoryDetailsDTO{
		Repository: *repository,
		Stats:      *stats,
		Readme:     readme,
	}, nil
}

func (s *GithubService) ListRepositories(
	ctx context.Context,
	client github_client.Client,
) ([]github_client.Repository, error) {
	repos, err := client.ListAuthenticatedUserRepositories(ctx)
	if err != nil {
		return nil, MapError(err)
	}

	return repos, nil
}

func (s *GithubService) GetUserStats(
	ctx context.Context,
	client github_client.Client,
	login string,
) (*github_dto.UserStatsDTO, error) {
	key := statsKey(client, login)

	if cached := s.userStatsCache.Get(key); cached != nil {
		return &github_dto.UserStatsDTO{Login: login, UserStats: *cached}, nil
	}

	result, err, _ := s.statsGroup.Do("user:"+key, func() (any, error) {
		fetchCtx, cancel := detachedFetchContext(ctx)
		defer cancel()

		stats, err := client.GetUserStats(fetchCtx, login)
		if err != nil {
			return nil, err
		}

		s.userStatsCache.Set(key, stats)
		return stats, nil
	})
	if err != nil {
		return nil, MapError(err)
	}

	return &github_dto.UserStatsDTO{Login: login, UserStats: *result.(*github_client.UserStats)}, nil
}

func (s *GithubService) fetchRepositoryStats(
	ctx context.Context,
	client github_client.Client,
	owner string,
	repo string,
) (*github_dto.RepositoryStats, error) {
	var repository *github_client.Repository
	var contributors []github_client.Contributor
	var contributorsCount int
	var commits []github_client.Commit

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		repository, err = client.GetRepository(groupCtx, owner, repo)
		return err
	})

	group.Go(func() error {
		var err error
		contributors, contributorsCount, err = client.GetContributors(groupCtx, owner, repo, contributorsFetchLimit)
		return err
	})

	group.Go(func() error {
		var err error
		commits, err = client.GetLatestCommits(groupCtx, owner, repo, 1)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	stats := &github_dto.RepositoryStats{
		Stars:             repository.Stars,
		Forks:             repository.Forks,
		OpenIssues:        repository.OpenIssues,
		ContributorsCount: max(contributorsCount, len(contributors)),
		Contributors:      contributors,
	}

	if len(stats.Contributors) > contributorsShown {
		stats.Contributors = stats.Contributors[:contributorsShown]
	}
	if stats.Contributors == nil {
		stats.Contributors = []github_client.Contributor{}
	}

	if len(commits) > 0 {
		stats.LastCommit = &commits[0]
	}

	return stats, nil
}

// statsKey scopes cache and flight keys to the client's credentials.
func statsKey(client github_client.Client, subject string) string {
	return client.CacheScope() + ":" + strings.ToLower(subject)
}

// detachedFetchContext keeps the caller's values but not its cancellation:
// the fetch is shared by every waiter on the flight.
func detachedFetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), statsFetchTimeout)
}

// MapError turns client failures into API errors. AppErrors pass through.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := errs.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, github_client.ErrNotFound):
		return errs.NotFound(errs.CodeGithubRequestFailed, "GitHub resource not found").WithCause(err)
	case errors.Is(err, github_client.ErrRateLimited):
		return errs.TooManyRequests("GitHub rate limit exceeded").WithCause(err)
	default:
		return errs.New(http.StatusBadGateway, errs.CodeGithubRequestFailed, "GitHub request failed").WithCause(err)
	}
}
