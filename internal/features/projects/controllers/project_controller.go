package projects_controllers

import (
	"net/http"

	"opensourcetogether/internal/features/audit_logs"
	github_client "opensourcetogether/internal/features/github/client"
	github_middleware "opensourcetogether/internal/features/github/middleware"
	github_services "opensourcetogether/internal/features/github/services"
	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_services "opensourcetogether/internal/features/projects/services"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"
	"opensourcetogether/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService    *projects_services.ProjectService
	githubService     *github_services.GithubService
	userService       *users_services.UserService
	publicRateLimiter *rate_limit.RateLimiter
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Use(
		users_middleware.OptionalAuthMiddleware(c.userService),
		github_middleware.GithubAuthMiddleware(c.githubService, c.publicRateLimiter),
	)

	projectRoutes.GET("", c.GetProjects)
	projectRoutes.GET("/:id", c.GetProject)
	projectRoutes.GET("/user/:userId", c.GetUserProjects)
}

func (c *ProjectController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	projectRoutes := router.Group("/projects")

	projectRoutes.POST("", c.CreateProject)
	projectRoutes.PATCH("/:id", c.UpdateProject)
	projectRoutes.DELETE("/:id", c.DeleteProject)
	projectRoutes.GET("/:id/audit-logs", c.GetProjectAuditLogs)

	projectRoutes.GET("/me",
		github_middleware.GithubAuthMiddleware(c.githubService, c.publicRateLimiter),
		c.GetMyProjects,
	)
}

// CreateProject
// @Summary Create a project
// @Description Creates the project and its GitHub repository. When githubRepoUrl is set, the existing repository is linked instead.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.CreateProjectRequestDTO true "Project data"
// @Success 201 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 401 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	var request projects_dto.CreateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	response, err := c.projectService.CreateProject(ctx.Request.Context(), &request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// GetProjects
// @Summary List projects
// @Description Newest first, filterable by text, category and tech stack. Synced projects carry live GitHub stats.
// @Tags projects
// @Produce json
// @Param q query string false "Search in title and description"
// @Param categoryId query string false "Category ID"
// @Param techStackId query string false "Tech stack ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 429 {object} errs.ErrorResponse
// @Failure 502 {object} errs.ErrorResponse
// @Router /projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	client, ok := c.getClient(ctx)
	if !ok {
		return
	}

	var request projects_dto.GetProjectsRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	response, err := c.projectService.GetProjects(ctx.Request.Context(), client, &request)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetMyProjects
// @Summary List my projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 401 {object} errs.ErrorResponse
// @Router /projects/me [get]
func (c *ProjectController) GetMyProjects(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	c.respondWithUserProjects(ctx, user.ID)
}

// GetUserProjects
// @Summary List a user's projects
// @Tags projects
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} projects_dto.ListProjectsResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /projects/user/{userId} [get]
func (c *ProjectController) GetUserProjects(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid user ID"))
		return
	}

	c.respondWithUserProjects(ctx, userID)
}

// GetProject
// @Summary Get a project
// @Description Project with owner, roles and live GitHub stats
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 502 {object} errs.ErrorResponse
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	projectID, ok := parseProjectID(ctx, "id")
	if !ok {
		return
	}

	client, ok := c.getClient(ctx)
	if !ok {
		return
	}

	response, err := c.projectService.GetProject(ctx.Request.Context(), client, projectID)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateProject
// @Summary Update a project
// @Description Owner only. Omitted fields are left unchanged.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body projects_dto.UpdateProjectRequestDTO true "Fields to change"
// @Success 200 {object} projects_dto.ProjectResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /projects/{id} [patch]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, ok := parseProjectID(ctx, "id")
	if !ok {
		return
	}

	var request projects_dto.UpdateProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	response, err := c.projectService.UpdateProject(ctx.Request.Context(), projectID, &request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteProject
// @Summary Delete a project
// @Description Owner only. The GitHub repository is left untouched.
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, ok := parseProjectID(ctx, "id")
	if !ok {
		return
	}

	if err := c.projectService.DeleteProject(projectID, user); err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetProjectAuditLogs
// @Summary Get project audit logs
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Only logs created before this date (RFC3339)" format(date-time)
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /projects/{id}/audit-logs [get]
func (c *ProjectController) GetProjectAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, ok := parseProjectID(ctx, "id")
	if !ok {
		return
	}

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	response, err := c.projectService.GetProjectAuditLogs(projectID, user, request)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *ProjectController) respondWithUserProjects(ctx *gin.Context, userID uuid.UUID) {
	client, ok := c.getClient(ctx)
	if !ok {
		return
	}

	var request projects_dto.GetProjectsRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	response, err := c.projectService.GetUserProjects(ctx.Request.Context(), client, userID, &request)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *ProjectController) getClient(ctx *gin.Context) (github_client.Client, bool) {
	client, ok := github_middleware.GetClientFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Internal(errs.CodeInternal, "GitHub client missing", nil))
		return nil, false
	}

	return client, true
}

func parseProjectID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid project ID"))
		return uuid.Nil, false
	}

	return projectID, true
}
