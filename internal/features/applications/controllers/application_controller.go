package applications_controllers

import (
	"net/http"

	applications_dto "opensourcetogether/internal/features/applications/dto"
	applications_services "opensourcetogether/internal/features/applications/services"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApplicationController struct {
	applicationService *applications_services.ApplicationService
}

func (c *ApplicationController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	applicationRoutes := router.Group("/application")

	applicationRoutes.POST("", c.Apply)
	applicationRoutes.GET("/me", c.GetMyApplications)
	applicationRoutes.GET("/project/:projectId", c.GetProjectApplications)
	applicationRoutes.PATCH("/:id/accept", c.Accept)
	applicationRoutes.PATCH("/:id/reject", c.Reject)
	applicationRoutes.PATCH("/:id/cancel", c.Cancel)
}

// Apply
// @Summary Apply to a project role
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body applications_dto.ApplyRequestDTO true "Application"
// @Success 201 {object} applications_dto.ApplicationResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /application [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	var request applications_dto.ApplyRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	application, err := c.applicationService.Apply(ctx.Request.Context(), &request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, application)
}

// GetMyApplications
// @Summary List my applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} applications_dto.ApplicationResponseDTO
// @Failure 401 {object} errs.ErrorResponse
// @Router /application/me [get]
func (c *ApplicationController) GetMyApplications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	applications, err := c.applicationService.GetMyApplications(user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, applications)
}

// GetProjectApplications
// @Summary List applications of a project
// @Description Only the project owner may call this.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {array} applications_dto.ApplicationResponseDTO
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /application/project/{projectId} [get]
func (c *ApplicationController) GetProjectApplications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid project ID"))
		return
	}

	applications, err := c.applicationService.GetProjectApplications(projectID, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, applications)
}

// Accept
// @Summary Accept an application
// @Description Marks the role filled and invites the applicant to the GitHub repository.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} applications_dto.ApplicationResponseDTO
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /application/{id}/accept [patch]
func (c *ApplicationController) Accept(ctx *gin.Context) {
	user, applicationID, ok := parseApplicationRequest(ctx)
	if !ok {
		return
	}

	application, err := c.applicationService.Accept(ctx.Request.Context(), applicationID, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, application)
}

// Reject
// @Summary Reject an application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body applications_dto.RejectRequestDTO false "Optional reason"
// @Success 200 {object} applications_dto.ApplicationResponseDTO
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /application/{id}/reject [patch]
func (c *ApplicationController) Reject(ctx *gin.Context) {
	user, applicationID, ok := parseApplicationRequest(ctx)
	if !ok {
		return
	}

	var request applications_dto.RejectRequestDTO
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			errs.RespondInvalidBody(ctx, err)
			return
		}
	}

	application, err := c.applicationService.Reject(ctx.Request.Context(), applicationID, &request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, application)
}

// Cancel
// @Summary Cancel my application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} applications_dto.ApplicationResponseDTO
// @Failure 403 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /application/{id}/cancel [patch]
func (c *ApplicationController) Cancel(ctx *gin.Context) {
	user, applicationID, ok := parseApplicationRequest(ctx)
	if !ok {
		return
	}

	application, err := c.applicationService.Cancel(ctx.Request.Context(), applicationID, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, application)
}
