package audit_logs

import (
	"net/http"

	users_middleware "opensourcetogether/internal/features/users/middleware"
	"opensourcetogether/internal/util/errs"

	"github.com/gin-gonic/gin"
)

type AuditLogController struct {
	auditLogService *AuditLogService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs/me", c.GetMyAuditLogs)
}

// GetMyAuditLogs
// @Summary Get current user's audit logs
// @Description Retrieve the audit trail of the authenticated user
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Limit number of results" default(100)
// @Param offset query int false "Offset for pagination" default(0)
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)" format(date-time)
// @Success 200 {object} GetAuditLogsResponse
// @Failure 401 {object} errs.ErrorResponse
// @Router /audit-logs/me [get]
func (c *AuditLogController) GetMyAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	request := &GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	response, err := c.auditLogService.GetUserAuditLogs(user.ID, request)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
