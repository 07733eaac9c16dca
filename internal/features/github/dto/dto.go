package github_dto

import (
	github_client "opensourcetogether/internal/features/github/client"
)

// RepositoryStats is the live GitHub data shown next to a project.
type RepositoryStats struct {
	Stars             int                         `json:"stars"`
	Forks             int                         `json:"forks"`
	OpenIssues        int                         `json:"openIssues"`
	ContributorsCount int                         `json:"contributorsCount"`
	Contributors      []github_client.Contributor `json:"contributors"`
	LastCommit        *github_client.Commit       `json:"lastCommit,omitempty"`
}

type RepositoryDetailsDTO struct {
	Repository github_client.Repository `json:"repository"`
	Stats      RepositoryStats          `json:"stats"`
	Readme     string                   `json:"readme"`
}

type UserStatsDTO struct {
	Login string `json:"login"`
	github_client.UserStats
}
