package users_controllers

import (
	"net/http"
	"net/url"

	"opensourcetogether/internal/config"
	users_dto "opensourcetogether/internal/features/users/dto"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"
	"opensourcetogether/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const sessionCookieMaxAge = 30 * 24 * 60 * 60

type UserController struct {
	userService        *users_services.UserService
	githubOAuthService *users_services.GithubOAuthService
	signinLimiter      *rate.Limiter
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/auth/github", c.BeginGithubLogin)
	router.GET("/auth/github/url", c.GetGithubLoginURL)
	router.GET("/auth/github/callback", c.CompleteGithubLogin)
	router.POST("/auth/logout", c.SignOut)
	router.GET("/users/:id", c.GetUser)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", c.GetCurrentUser)
}

// BeginGithubLogin
// @Summary Start GitHub sign-in
// @Description Redirects to GitHub's authorize page
// @Tags auth
// @Param redirect query string false "Frontend path to return to after sign-in"
// @Success 302
// @Router /auth/github [get]
func (c *UserController) BeginGithubLogin(ctx *gin.Context) {
	authURL, err := c.githubOAuthService.BeginLogin(ctx.DefaultQuery("redirect", "/"))
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, authURL)
}

// GetGithubLoginURL
// @Summary Get GitHub sign-in URL
// @Tags auth
// @Produce json
// @Param redirect query string false "Frontend path to return to after sign-in"
// @Success 200 {object} users_dto.GithubLoginResponseDTO
// @Router /auth/github/url [get]
func (c *UserController) GetGithubLoginURL(ctx *gin.Context) {
	authURL, err := c.githubOAuthService.BeginLogin(ctx.DefaultQuery("redirect", "/"))
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_dto.GithubLoginResponseDTO{URL: authURL})
}

// CompleteGithubLogin
// @Summary GitHub OAuth callback
// @Description Exchanges the code, sets the session cookie and redirects to the frontend
// @Tags auth
// @Param state query string true "OAuth state"
// @Param code query string true "OAuth code"
// @Success 302
// @Failure 429 {object} errs.ErrorResponse
// @Router /auth/github/callback [get]
func (c *UserController) CompleteGithubLogin(ctx *gin.Context) {
	if !c.signinLimiter.Allow() {
		errs.Respond(ctx, errs.TooManyRequests("Rate limit exceeded. Please try again later."))
		return
	}

	frontendURL := config.GetEnv().FrontendURL

	response, redirectPath, err := c.githubOAuthService.CompleteLogin(
		ctx.Request.Context(),
		ctx.Query("state"),
		ctx.Query("code"),
	)
	if err != nil {
		code := errs.ToResponse(err).Error.Code
		logger.GetLogger().Warn("GitHub sign-in failed", "code", code, "error", err)

		ctx.Redirect(http.StatusFound, frontendURL+"/auth/error?code="+url.QueryEscape(code))
		return
	}

	c.setSessionCookie(ctx, response.Token, sessionCookieMaxAge)
	ctx.Redirect(http.StatusFound, frontendURL+redirectPath)
}

// SignOut
// @Summary Sign out
// @Description Clears the session cookie
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (c *UserController) SignOut(ctx *gin.Context) {
	if token := users_middleware.ExtractToken(ctx, false); token != "" {
		if user, err := c.userService.GetUserFromToken(token); err == nil {
			c.userService.SignOut(user.ID)
		}
	}

	c.setSessionCookie(ctx, "", -1)
	ctx.Status(http.StatusNoContent)
}

// GetCurrentUser
// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_models.User
// @Failure 401 {object} errs.ErrorResponse
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// GetUser
// @Summary Get public user info
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} users_dto.PublicUserDTO
// @Failure 404 {object} errs.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid user ID"))
		return
	}

	user, err := c.userService.GetUserByID(userID)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users_dto.PublicUserDTO{
		ID:        user.ID,
		Login:     user.Login,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	})
}

func (c *UserController) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		users_middleware.SessionCookieName,
		value,
		maxAge,
		"/",
		"",
		config.GetEnv().IsProduction(),
		true,
	)
}
