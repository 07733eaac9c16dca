package applications_controllers

import (
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_models "opensourcetogether/internal/features/users/models"
	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parseApplicationRequest(ctx *gin.Context) (*users_models.User, uuid.UUID, bool) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return nil, uuid.Nil, false
	}

	applicationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid application ID"))
		return nil, uuid.Nil, false
	}

	return user, applicationID, true
}
