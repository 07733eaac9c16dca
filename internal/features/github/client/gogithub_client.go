package github_client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const (
	requestTimeout      = 15 * time.Second
	maxSearchPages      = 3
	searchPageSize      = 100
	maxOwnedRepoPages   = 10
	collaboratorInvites = "push"
)

type TokenClient struct {
	gh    *github.Client
	scope string
}

// NewTokenClient builds a client authenticated with a personal or OAuth token.
func NewTokenClient(accessToken string) *TokenClient {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	httpClient := oauth2.NewClient(context.Background(), tokenSource)
	httpClient.Timeout = requestTimeout

	return &TokenClient{
		gh:    github.NewClient(httpClient),
		scope: tokenScope(accessToken),
	}
}

// CacheScope is derived from the token so the token itself never ends up in
// a cache key.
func (c *TokenClient) CacheScope() string {
	return c.scope
}

func (c *TokenClient) GetAuthenticatedUser(ctx context.Context) (*AuthenticatedUser, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, translateError("get authenticated user", err)
	}

	result := &AuthenticatedUser{
		ID:          user.GetID(),
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Email:       user.GetEmail(),
		AvatarURL:   user.GetAvatarURL(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
	}

	// the profile email is empty when the user keeps it private
	if result.Email == "" {
		emails, _, err := c.gh.Users.ListEmails(ctx, nil)
		if err == nil {
			for _, email := range emails {
				if email.GetPrimary() && email.GetVerified() {
					result.Email = email.GetEmail()
					break
				}
			}
		}
	}

	return result, nil
}

func (c *TokenClient) CreateRepository(ctx context.Context, input CreateRepositoryInput) (*Repository, error) {
	repo, _, err := c.gh.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(input.Name),
		Description: github.String(input.Description),
		Homepage:    github.String(input.Homepage),
		Private:     github.Bool(input.IsPrivate),
		AutoInit:    github.Bool(true),
	})
	if err != nil {
		return nil, translateError("create repository", err)
	}

	return toRepository(repo), nil
}

func (c *TokenClient) InviteCollaborator(ctx context.Context, owner, repo, login string) error {
	_, _, err := c.gh.Repositories.AddCollaborator(ctx, owner, repo, login, &github.RepositoryAddCollaboratorOptions{
		Permission: collaboratorInvites,
	})
	if err != nil {
		return translateError("invite collaborator", err)
	}

	return nil
}

func (c *TokenClient) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	repository, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, translateError("get repository", err)
	}

	return toRepository(repository), nil
}

func (c *TokenClient) GetLatestCommits(ctx context.Context, owner, repo string, count int) ([]Commit, error) {
	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: count},
	})
	if err != nil {
		// an empty repository answers 409
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict {
			return []Commit{}, nil
		}
		return nil, translateError("list commits", err)
	}

	result := make([]Commit, 0, len(commits))
	for _, commit := range commits {
		result = append(result, Commit{
			SHA:             commit.GetSHA(),
			Message:         commit.GetCommit().GetMessage(),
			URL:             commit.GetHTMLURL(),
			AuthorLogin:     commit.GetAuthor().GetLogin(),
			AuthorName:      commit.GetCommit().GetAuthor().GetName(),
			AuthorAvatarURL: commit.GetAuthor().GetAvatarURL(),
			Date:            commit.GetCommit().GetAuthor().GetDate().Time,
		})
	}

	return result, nil
}

func (c *TokenClient) GetContributors(ctx context.Context, owner, repo string, limit int) ([]Contributor, int, error) {
	contributors, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	})
	if err != nil {
		return nil, 0, translateError("list contributors", err)
	}

	total := len(contributors)

	// LastPage comes from the Link header and is only set when more pages exist
	if resp != nil && resp.LastPage > 1 {
		lastPage, _, err := c.gh.Repositories.ListContributors(ctx, owner, repo, &github.ListContributorsOptions{
			ListOptions: github.ListOptions{PerPage: limit, Page: resp.LastPage},
		})
		if err != nil {
			return nil, 0, translateError("list contributors last page", err)
		}
		total = countAcrossPages(limit, resp.LastPage, len(lastPage))
	}

	result := make([]Contributor, 0, len(contributors))
	for _, contributor := range contributors {
		result = append(result, Contributor{
			Login:         contributor.GetLogin(),
			AvatarURL:     contributor.GetAvatarURL(),
			HTMLURL:       contributor.GetHTMLURL(),
			Contributions: contributor.GetContributions(),
		})
	}

	return result, total, nil
}

// countAcrossPages counts the items of a paginated listing where every page
// but the last is full.
func countAcrossPages(perPage, lastPage, lastPageLen int) int {
	return (lastPage-1)*perPage + lastPageLen
}

// GetReadme returns "" when the repository has no README.
func (c *TokenClient) GetReadme(ctx context.Context, owner, repo string) (string, error) {
	readme, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		translated := translateError("get readme", err)
		if errors.Is(translated, ErrNotFound) {
			return "", nil
		}
		return "", translated
	}

	content, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode readme: %w", err)
	}

	return content, nil
}

func (c *TokenClient) ListAuthenticatedUserRepositories(ctx context.Context) ([]Repository, error) {
	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, translateError("list repositories", err)
	}

	result := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, *toRepository(repo))
	}

	return result, nil
}

// GetUserStats sums stars over owned repositories and counts commits authored
// in the last year through commit search. Contributed repositories are the
// distinct repositories among the first search pages.
func (c *TokenClient) GetUserStats(ctx context.Context, login string) (*UserStats, error) {
	stats := &UserStats{}

	options := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for page := 0; page < maxOwnedRepoPages; page++ {
		repos, response, err := c.gh.Repositories.ListByUser(ctx, login, options)
		if err != nil {
			return nil, translateError("list user repositories", err)
		}

		for _, repo := range repos {
			stats.TotalStars += repo.GetStargazersCount()
		}

		if response.NextPage == 0 {
			break
		}
		options.Page = response.NextPage
	}

	since := time.Now().UTC().AddDate(-1, 0, 0).Format("2006-01-02")
	query := fmt.Sprintf("author:%s author-date:>=%s", login, since)

	contributed := make(map[string]struct{})
	searchOptions := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: searchPageSize}}
	for page := 0; page < maxSearchPages; page++ {
		result, response, err := c.gh.Search.Commits(ctx, query, searchOptions)
		if err != nil {
			return nil, translateError("search commits", err)
		}

		stats.CommitsLastYear = result.GetTotal()
		for _, commit := range result.Commits {
			if name := commit.GetRepository().GetFullName(); name != "" {
				contributed[name] = struct{}{}
			}
		}

		if response.NextPage == 0 {
			break
		}
		searchOptions.Page = response.NextPage
	}
	stats.ContributedRepos = len(contributed)

	return stats, nil
}

func toRepository(repo *github.Repository) *Repository {
	return &Repository{
		ID:          repo.GetID(),
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		HTMLURL:     repo.GetHTMLURL(),
		Homepage:    repo.GetHomepage(),
		Language:    repo.GetLanguage(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		IsPrivate:   repo.GetPrivate(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
	}
}

func tokenScope(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return "token-" + hex.EncodeToString(sum[:8])
}

func translateError(operation string, err error) error {
	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %w", operation, ErrRateLimited)
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
