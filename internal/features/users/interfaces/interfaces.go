package users_interfaces

import (
	"context"

	users_dto "opensourcetogether/internal/features/users/dto"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID)
}

// GithubIdentityFetcher resolves the GitHub account behind an OAuth access token.
type GithubIdentityFetcher interface {
	FetchIdentity(ctx context.Context, accessToken string) (*users_dto.GithubIdentity, error)
}
