package projects_controllers

import (
	"net/http"

	projects_dto "opensourcetogether/internal/features/projects/dto"
	projects_services "opensourcetogether/internal/features/projects/services"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectRoleController struct {
	projectRoleService *projects_services.ProjectRoleService
}

func (c *ProjectRoleController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/project-role/:projectId", c.GetProjectRoles)
}

func (c *ProjectRoleController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	roleRoutes := router.Group("/project-role")

	roleRoutes.POST("/:projectId", c.CreateProjectRole)
	roleRoutes.PATCH("/:projectId/:roleId", c.UpdateProjectRole)
	roleRoutes.DELETE("/:projectId/:roleId", c.DeleteProjectRole)
}

// GetProjectRoles
// @Summary List project roles
// @Tags project-roles
// @Produce json
// @Param projectId path string true "Project ID"
// @Success 200 {array} projects_models.ProjectRole
// @Failure 404 {object} errs.ErrorResponse
// @Router /project-role/{projectId} [get]
func (c *ProjectRoleController) GetProjectRoles(ctx *gin.Context) {
	projectID, ok := parseProjectID(ctx, "projectId")
	if !ok {
		return
	}

	roles, err := c.projectRoleService.GetProjectRoles(projectID)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}

// CreateProjectRole
// @Summary Add a role to a project
// @Tags project-roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body projects_dto.ProjectRoleRequestDTO true "Role data"
// @Success 201 {object} projects_models.ProjectRole
// @Failure 400 {object} errs.ErrorResponse
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /project-role/{projectId} [post]
func (c *ProjectRoleController) CreateProjectRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, ok := parseProjectID(ctx, "projectId")
	if !ok {
		return
	}

	var request projects_dto.ProjectRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	role, err := c.projectRoleService.CreateProjectRole(projectID, &request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, role)
}

// UpdateProjectRole
// @Summary Update a project role
// @Tags project-roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param roleId path string true "Role ID"
// @Param request body projects_dto.UpdateProjectRoleRequestDTO true "Fields to change"
// @Success 200 {object} projects_models.ProjectRole
// @Failure 400 {object} errs.ErrorResponse
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /project-role/{projectId}/{roleId} [patch]
func (c *ProjectRoleController) UpdateProjectRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, roleID, ok := parseRolePath(ctx)
	if !ok {
		return
	}

	var request projects_dto.UpdateProjectRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	role, err := c.projectRoleService.UpdateProjectRole(projectID, roleID, &request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, role)
}

// DeleteProjectRole
// @Summary Delete a project role
// @Description Pending applications for the role are removed with it.
// @Tags project-roles
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param roleId path string true "Role ID"
// @Success 204
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /project-role/{projectId}/{roleId} [delete]
func (c *ProjectRoleController) DeleteProjectRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, roleID, ok := parseRolePath(ctx)
	if !ok {
		return
	}

	if err := c.projectRoleService.DeleteProjectRole(projectID, roleID, user); err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseRolePath(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, ok := parseProjectID(ctx, "projectId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	roleID, err := uuid.Parse(ctx.Param("roleId"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid role ID"))
		return uuid.Nil, uuid.Nil, false
	}

	return projectID, roleID, true
}
