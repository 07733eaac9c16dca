package github_controllers

import (
	"net/http"

	github_middleware "opensourcetogether/internal/features/github/middleware"
	github_services "opensourcetogether/internal/features/github/services"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"
	"opensourcetogether/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
)

type GithubController struct {
	githubService     *github_services.GithubService
	userService       *users_services.UserService
	publicRateLimiter *rate_limit.RateLimiter
}

func (c *GithubController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/github")
	group.Use(
		users_middleware.OptionalAuthMiddleware(c.userService),
		github_middleware.GithubAuthMiddleware(c.githubService, c.publicRateLimiter),
	)

	group.GET("/repos/:owner/:repo", c.GetRepository)
}

func (c *GithubController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	group := router.Group("/github")
	group.Use(github_middleware.GithubAuthMiddleware(c.githubService, c.publicRateLimiter))

	group.GET("/repos", c.ListMyRepositories)
	group.GET("/users/me/stats", c.GetMyStats)
}

// GetRepository
// @Summary Get repository details
// @Description Repository info, live stats and README
// @Tags github
// @Produce json
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {object} github_dto.RepositoryDetailsDTO
// @Failure 404 {object} errs.ErrorResponse
// @Failure 429 {object} errs.ErrorResponse
// @Failure 502 {object} errs.ErrorResponse
// @Router /github/repos/{owner}/{repo} [get]
func (c *GithubController) GetRepository(ctx *gin.Context) {
	client, ok := github_middleware.GetClientFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Internal(errs.CodeInternal, "GitHub client missing", nil))
		return
	}

	details, err := c.githubService.GetRepositoryDetails(
		ctx.Request.Context(),
		client,
		ctx.Param("owner"),
		ctx.Param("repo"),
	)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, details)
}

// ListMyRepositories
// @Summary List my GitHub repositories
// @Description Requires a connected GitHub account
// @Tags github
// @Produce json
// @Security BearerAuth
// @Success 200 {array} github_client.Repository
// @Failure 401 {object} errs.ErrorResponse
// @Failure 502 {object} errs.ErrorResponse
// @Router /github/repos [get]
func (c *GithubController) ListMyRepositories(ctx *gin.Context) {
	client, ok := github_middleware.GetClientFromContext(ctx)
	if !ok || github_middleware.IsPublicClient(ctx) {
		errs.Respond(ctx, users_services.ErrGithubNotConnected)
		return
	}

	repos, err := c.githubService.ListRepositories(ctx.Request.Context(), client)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, repos)
}

// GetMyStats
// @Summary Get my GitHub stats
// @Description Total stars, contributed repositories and commits in the last year
// @Tags github
// @Produce json
// @Security BearerAuth
// @Success 200 {object} github_dto.UserStatsDTO
// @Failure 401 {object} errs.ErrorResponse
// @Failure 502 {object} errs.ErrorResponse
// @Router /github/users/me/stats [get]
func (c *GithubController) GetMyStats(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	client, ok := github_middleware.GetClientFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Internal(errs.CodeInternal, "GitHub client missing", nil))
		return
	}

	stats, err := c.githubService.GetUserStats(ctx.Request.Context(), client, user.Login)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
