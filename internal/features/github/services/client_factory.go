package github_services

import (
	"context"

	"opensourcetogether/internal/config"
	github_client "opensourcetogether/internal/features/github/client"
	users_services "opensourcetogether/internal/features/users/services"

	"github.com/google/uuid"
)

// ClientFactory hands out GitHub clients authenticated either as a platform
// user or with the shared public token.
type ClientFactory interface {
	ForUser(ctx context.Context, userID uuid.UUID) (github_client.Client, error)
	ForToken(accessToken string) github_client.Client
	Public() github_client.Client
}

type TokenClientFactory struct {
	userService *users_services.UserService
}

// ForUser returns users_services.ErrGithubNotConnected when the user has no
// stored token.
func (f *TokenClientFactory) ForUser(_ context.Context, userID uuid.UUID) (github_client.Client, error) {
	accessToken, err := f.userService.GetGithubAccessToken(userID)
	if err != nil {
		return nil, err
	}

	return github_client.NewTokenClient(accessToken), nil
}

func (f *TokenClientFactory) ForToken(accessToken string) github_client.Client {
	return github_client.NewTokenClient(accessToken)
}

func (f *TokenClientFactory) Public() github_client.Client {
	return github_client.NewTokenClient(config.GetEnv().GithubPublicToken)
}
