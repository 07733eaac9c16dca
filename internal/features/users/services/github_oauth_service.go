package users_services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"opensourcetogether/internal/config"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_interfaces "opensourcetogether/internal/features/users/interfaces"
	cache_utils "opensourcetogether/internal/util/cache"
	"opensourcetogether/internal/util/errs"

	"golang.org/x/oauth2"
	oauth2_github "golang.org/x/oauth2/github"
)

var githubOAuthScopes = []string{"read:user", "user:email", "public_repo"}

type GithubOAuthService struct {
	userService *UserService
	// state -> path on the frontend to return to after sign-in
	stateCache      *cache_utils.CacheUtil[string]
	identityFetcher users_interfaces.GithubIdentityFetcher

	configOnce  sync.Once
	oauthConfig *oauth2.Config
}

func (s *GithubOAuthService) SetIdentityFetcher(fetcher users_interfaces.GithubIdentityFetcher) {
	s.identityFetcher = fetcher
}

// BeginLogin returns the GitHub authorize URL for a fresh single-use state.
func (s *GithubOAuthService) BeginLogin(redirectPath string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	state := hex.EncodeToString(raw)

	if !strings.HasPrefix(redirectPath, "/") || strings.HasPrefix(redirectPath, "//") {
		redirectPath = "/"
	}
	s.stateCache.Set(state, &redirectPath)

	return s.getOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// CompleteLogin validates state, exchanges code and signs the user in. It
// returns the session and the frontend path stored with the state.
func (s *GithubOAuthService) CompleteLogin(
	ctx context.Context,
	state string,
	code string,
) (*users_dto.SignInResponseDTO, string, error) {
	if state == "" || code == "" {
		return nil, "", errs.BadRequest(errs.CodeInvalidOAuthState, "Missing OAuth state or code")
	}

	redirectPath := s.stateCache.Take(state)
	if redirectPath == nil {
		return nil, "", errs.BadRequest(errs.CodeInvalidOAuthState, "OAuth state is invalid or expired")
	}

	token, err := s.getOAuthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, "", errs.New(http.StatusBadGateway, errs.CodeGithubAuthFailed, "Failed to exchange GitHub code").WithCause(err)
	}

	identity, err := s.identityFetcher.FetchIdentity(ctx, token.AccessToken)
	if err != nil {
		return nil, "", errs.New(http.StatusBadGateway, errs.CodeGithubAuthFailed, "Failed to fetch GitHub user").WithCause(err)
	}

	scope, _ := token.Extra("scope").(string)

	response, err := s.userService.SignInWithGithub(identity, token.AccessToken, scope)
	if err != nil {
		return nil, "", err
	}

	return response, *redirectPath, nil
}

func (s *GithubOAuthService) getOAuthConfig() *oauth2.Config {
	s.configOnce.Do(func() {
		env := config.GetEnv()

		s.oauthConfig = &oauth2.Config{
			ClientID:     env.GithubClientID,
			ClientSecret: env.GithubClientSecret,
			RedirectURL:  env.GithubCallbackURL,
			Scopes:       githubOAuthScopes,
			Endpoint:     oauth2_github.Endpoint,
		}
	})

	return s.oauthConfig
}
