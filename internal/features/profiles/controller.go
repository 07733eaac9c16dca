package profiles

import (
	"net/http"

	users_middleware "opensourcetogether/internal/features/users/middleware"
	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileController struct {
	profileService *ProfileService
}

func (c *ProfileController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile/:userId", c.GetProfile)
}

func (c *ProfileController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/profile/me", c.GetMyProfile)
	router.PUT("/profile/me", c.UpsertMyProfile)
}

// UpsertMyProfile
// @Summary Create or replace my profile
// @Description Tech stacks and social links are replaced by the ones sent.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertProfileRequestDTO true "Profile"
// @Success 200 {object} ProfileResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 401 {object} errs.ErrorResponse
// @Router /profile/me [put]
func (c *ProfileController) UpsertMyProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	var request UpsertProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	profile, err := c.profileService.UpsertProfile(&request, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// GetMyProfile
// @Summary Get my profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponseDTO
// @Failure 404 {object} errs.ErrorResponse
// @Router /profile/me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	profile, err := c.profileService.GetMyProfile(user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// GetProfile
// @Summary Get a user's profile
// @Tags profiles
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} ProfileResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /profile/{userId} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid user ID"))
		return
	}

	profile, err := c.profileService.GetProfile(userID)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
