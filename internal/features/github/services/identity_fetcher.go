package github_services

import (
	"context"

	users_dto "opensourcetogether/internal/features/users/dto"
)

// IdentityFetcher resolves the account behind an OAuth token for sign-in.
type IdentityFetcher struct {
	githubService *GithubService
}

func (f *IdentityFetcher) FetchIdentity(ctx context.Context, accessToken string) (*users_dto.GithubIdentity, error) {
	client := f.githubService.GetClientFactory().ForToken(accessToken)

	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	return &users_dto.GithubIdentity{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}, nil
}
