package github_testing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	github_client "opensourcetogether/internal/features/github/client"
	github_services "opensourcetogether/internal/features/github/services"
	users_services "opensourcetogether/internal/features/users/services"

	"github.com/google/uuid"
)

type Invitation struct {
	Owner string
	Repo  string
	Login string
}

// FakeClient is an in-memory GitHub. Repositories created through it can be
// read back; the *Err fields force failures.
type FakeClient struct {
	mu sync.Mutex

	User         github_client.AuthenticatedUser
	Stats        github_client.UserStats
	Repositories map[string]*github_client.Repository
	Contributors []github_client.Contributor
	Commits      []github_client.Commit
	Readme       string
	Scope        string

	Invitations []Invitation

	CreateRepositoryErr error
	InviteErr           error
	GetRepositoryErr    error

	calls atomic.Int64
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		User: github_client.AuthenticatedUser{
			ID:    42,
			Login: "octocat",
			Name:  "The Octocat",
			Email: "octocat@github.test",
		},
		Repositories: make(map[string]*github_client.Repository),
		Contributors: []github_client.Contributor{
			{Login: "octocat", Contributions: 12},
		},
		Commits: []github_client.Commit{
			{SHA: "abc123", Message: "Initial commit", AuthorLogin: "octocat", Date: time.Now().UTC()},
		},
		Readme: "# README",
		Scope:  "fake",
	}
}

func (f *FakeClient) CacheScope() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.Scope
}

// AddRepository registers an existing repository.
func (f *FakeClient) AddRepository(owner, name string) *github_client.Repository {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo := &github_client.Repository{
		ID:       int64(len(f.Repositories) + 1),
		Owner:    owner,
		Name:     name,
		FullName: owner + "/" + name,
		HTMLURL:  "https://github.com/" + owner + "/" + name,
		Stars:    7,
		Forks:    2,
	}
	f.Repositories[repoKey(owner, name)] = repo

	return repo
}

func (f *FakeClient) SetCreateRepositoryErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateRepositoryErr = err
}

func (f *FakeClient) GetInvitations() []Invitation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Invitation(nil), f.Invitations...)
}

// Calls counts every API call made through the fake.
func (f *FakeClient) Calls() int64 {
	return f.calls.Load()
}

func (f *FakeClient) GetAuthenticatedUser(_ context.Context) (*github_client.AuthenticatedUser, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	user := f.User
	return &user, nil
}

func (f *FakeClient) CreateRepository(
	_ context.Context,
	input github_client.CreateRepositoryInput,
) (*github_client.Repository, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateRepositoryErr != nil {
		return nil, f.CreateRepositoryErr
	}

	key := repoKey(f.User.Login, input.Name)
	if _, exists := f.Repositories[key]; exists {
		return nil, fmt.Errorf("repository %s already exists", key)
	}

	repo := &github_client.Repository{
		ID:          int64(len(f.Repositories) + 1),
		Owner:       f.User.Login,
		Name:        input.Name,
		FullName:    f.User.Login + "/" + input.Name,
		Description: input.Description,
		HTMLURL:     "https://github.com/" + f.User.Login + "/" + input.Name,
		IsPrivate:   input.IsPrivate,
	}
	f.Repositories[key] = repo

	copied := *repo
	return &copied, nil
}

func (f *FakeClient) InviteCollaborator(_ context.Context, owner, repo, login string) error {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InviteErr != nil {
		return f.InviteErr
	}

	f.Invitations = append(f.Invitations, Invitation{Owner: owner, Repo: repo, Login: login})
	return nil
}

func (f *FakeClient) GetRepository(_ context.Context, owner, repo string) (*github_client.Repository, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetRepositoryErr != nil {
		return nil, f.GetRepositoryErr
	}

	found, ok := f.Repositories[repoKey(owner, repo)]
	if !ok {
		return nil, github_client.ErrNotFound
	}

	copied := *found
	return &copied, nil
}

func (f *FakeClient) GetLatestCommits(_ context.Context, _, _ string, count int) ([]github_client.Commit, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	if count > len(f.Commits) {
		count = len(f.Commits)
	}
	return append([]github_client.Commit(nil), f.Commits[:count]...), nil
}

func (f *FakeClient) GetContributors(_ context.Context, _, _ string, limit int) ([]github_client.Contributor, int, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	if limit > len(f.Contributors) {
		limit = len(f.Contributors)
	}
	return append([]github_client.Contributor(nil), f.Contributors[:limit]...), len(f.Contributors), nil
}

func (f *FakeClient) GetReadme(_ context.Context, _, _ string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.Readme, nil
}

func (f *FakeClient) ListAuthenticatedUserRepositories(_ context.Context) ([]github_client.Repository, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	repos := make([]github_client.Repository, 0, len(f.Repositories))
	for _, repo := range f.Repositories {
		if repo.Owner == f.User.Login {
			repos = append(repos, *repo)
		}
	}
	return repos, nil
}

func (f *FakeClient) GetUserStats(_ context.Context, _ string) (*github_client.UserStats, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := f.Stats
	return &stats, nil
}

// FakeClientFactory returns the same fake for every caller. Users listed in
// Disconnected behave as if they never stored a token.
type FakeClientFactory struct {
	Client       *FakeClient
	Disconnected map[uuid.UUID]bool
}

func (f *FakeClientFactory) ForUser(_ context.Context, userID uuid.UUID) (github_client.Client, error) {
	if f.Disconnected[userID] {
		return nil, users_services.ErrGithubNotConnected
	}
	return f.Client, nil
}

func (f *FakeClientFactory) ForToken(_ string) github_client.Client {
	return f.Client
}

func (f *FakeClientFactory) Public() github_client.Client {
	return f.Client
}

// InstallFakeClient swaps the GitHub client factory for a fake until the test ends.
func InstallFakeClient(t *testing.T) (*FakeClient, *FakeClientFactory) {
	t.Helper()

	service := github_services.GetGithubService()
	previous := service.GetClientFactory()

	factory := &FakeClientFactory{
		Client:       NewFakeClient(),
		Disconnected: make(map[uuid.UUID]bool),
	}
	service.SetClientFactory(factory)

	t.Cleanup(func() {
		service.SetClientFactory(previous)
	})

	return factory.Client, factory
}

// UniqueRepoName avoids collisions with stats cached by earlier test runs.
func UniqueRepoName(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.New().String()[:8], "-", "")
}

func repoKey(owner, repo string) string {
	return strings.ToLower(owner + "/" + repo)
}
