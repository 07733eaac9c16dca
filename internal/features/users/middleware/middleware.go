package users_middleware

import (
	"strings"

	users_models "opensourcetogether/internal/features/users/models"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "ost_session"

// AuthMiddleware validates the session token (cookie or bearer header) and
// adds the user to the context.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return authenticate(userService, true, false)
}

// OptionalAuthMiddleware attaches the user when a valid token is present and
// lets anonymous requests through.
func OptionalAuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return authenticate(userService, false, false)
}

// QueryTokenAuthMiddleware also accepts ?token=, for WebSocket upgrades where
// browsers cannot set headers.
func QueryTokenAuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return authenticate(userService, true, true)
}

func authenticate(userService *users_services.UserService, isRequired bool, isAllowQuery bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ExtractToken(ctx, isAllowQuery)
		if token == "" {
			if isRequired {
				errs.Respond(ctx, errs.Unauthorized("Authorization token required"))
				return
			}
			ctx.Next()
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			if isRequired {
				errs.Respond(ctx, errs.Unauthorized("Invalid token"))
				return
			}
			ctx.Next()
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

func ExtractToken(ctx *gin.Context, isAllowQuery bool) string {
	if header := ctx.GetHeader("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	if isAllowQuery {
		return ctx.Query("token")
	}

	return ""
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok
}
