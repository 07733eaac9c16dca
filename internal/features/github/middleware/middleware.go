package github_middleware

import (
	"errors"
	"strconv"

	github_client "opensourcetogether/internal/features/github/client"
	github_services "opensourcetogether/internal/features/github/services"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"
	"opensourcetogether/internal/util/logger"
	"opensourcetogether/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
)

const (
	clientContextKey   = "githubClient"
	isPublicContextKey = "githubClientIsPublic"

	publicRequestsPerMinute = 60
	publicRequestsBurst     = 30
)

// GithubAuthMiddleware attaches a GitHub client to the request: the user's own
// token when they are signed in with stored credentials, otherwise the shared
// public token. Public-token requests are rate limited per client IP. It must
// run after the users auth middleware.
func GithubAuthMiddleware(
	githubService *github_services.GithubService,
	limiter *rate_limit.RateLimiter,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		factory := githubService.GetClientFactory()

		if user, ok := users_middleware.GetUserFromContext(ctx); ok {
			client, err := factory.ForUser(ctx.Request.Context(), user.ID)
			if err == nil {
				ctx.Set(clientContextKey, client)
				ctx.Set(isPublicContextKey, false)
				ctx.Next()
				return
			}

			if !errors.Is(err, users_services.ErrGithubNotConnected) {
				errs.Respond(ctx, err)
				return
			}
		}

		result, err := limiter.CheckRateLimit(ctx.ClientIP(), publicRequestsPerMinute, publicRequestsBurst)
		if err != nil {
			logger.GetLogger().Warn("public github rate limit check failed", "error", err)
		} else if !result.Allowed {
			ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
			errs.Respond(ctx, errs.TooManyRequests("Rate limit exceeded. Please try again later."))
			return
		}

		ctx.Set(clientContextKey, factory.Public())
		ctx.Set(isPublicContextKey, true)
		ctx.Next()
	}
}

func GetClientFromContext(ctx *gin.Context) (github_client.Client, bool) {
	value, exists := ctx.Get(clientContextKey)
	if !exists {
		return nil, false
	}

	client, ok := value.(github_client.Client)

	return client, ok
}

// IsPublicClient reports whether the attached client uses the shared token.
func IsPublicClient(ctx *gin.Context) bool {
	return ctx.GetBool(isPublicContextKey)
}
