package github_client

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("github resource not found")
	ErrRateLimited = errors.New("github rate limit exceeded")
)

type Repository struct {
	ID          int64     `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	FullName    string    `json:"fullName"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"htmlUrl"`
	Homepage    string    `json:"homepage"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	OpenIssues  int       `json:"openIssues"`
	IsPrivate   bool      `json:"isPrivate"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Commit struct {
	SHA             string    `json:"sha"`
	Message         string    `json:"message"`
	URL             string    `json:"url"`
	AuthorLogin     string    `json:"authorLogin"`
	AuthorName      string    `json:"authorName"`
	AuthorAvatarURL string    `json:"authorAvatarUrl"`
	Date            time.Time `json:"date"`
}

type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatarUrl"`
	HTMLURL       string `json:"htmlUrl"`
	Contributions int    `json:"contributions"`
}

type AuthenticatedUser struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarUrl"`
	PublicRepos int    `json:"publicRepos"`
	Followers   int    `json:"followers"`
}

// UserStats aggregates a user's public GitHub activity.
type UserStats struct {
	TotalStars       int `json:"totalStars"`
	ContributedRepos int `json:"contributedRepos"`
	CommitsLastYear  int `json:"commitsLastYear"`
}

type CreateRepositoryInput struct {
	Name        string
	Description string
	Homepage    string
	IsPrivate   bool
}

// Client is the subset of the GitHub API the platform uses. Implementations
// make a single attempt per call; errors are returned as-is.
type Client interface {
	// CacheScope identifies the credentials behind the client. Results fetched
	// under one scope are never served to another.
	CacheScope() string
	GetAuthenticatedUser(ctx context.Context) (*AuthenticatedUser, error)
	CreateRepository(ctx context.Context, input CreateRepositoryInput) (*Repository, error)
	InviteCollaborator(ctx context.Context, owner, repo, login string) error
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)
	GetLatestCommits(ctx context.Context, owner, repo string, count int) ([]Commit, error)
	// GetContributors returns at most limit contributors together with the
	// repository's total contributor count.
	GetContributors(ctx context.Context, owner, repo string, limit int) ([]Contributor, int, error)
	GetReadme(ctx context.Context, owner, repo string) (string, error)
	ListAuthenticatedUserRepositories(ctx context.Context) ([]Repository, error)
	GetUserStats(ctx context.Context, login string) (*UserStats, error)
}
