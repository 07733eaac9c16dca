package notifications_controllers

import (
	"net/http"
	"strings"

	"opensourcetogether/internal/config"
	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	notifications_enums "opensourcetogether/internal/features/notifications/enums"
	notifications_realtime "opensourcetogether/internal/features/notifications/realtime"
	notifications_services "opensourcetogether/internal/features/notifications/services"
	users_middleware "opensourcetogether/internal/features/users/middleware"
	users_services "opensourcetogether/internal/features/users/services"
	"opensourcetogether/internal/util/errs"
	"opensourcetogether/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type NotificationController struct {
	notificationService *notifications_services.NotificationService
	userService         *users_services.UserService
	hub                 *notifications_realtime.Hub
	upgrader            websocket.Upgrader
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications/ws",
		users_middleware.QueryTokenAuthMiddleware(c.userService),
		c.Connect,
	)
}

func (c *NotificationController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	notificationRoutes := router.Group("/notifications")

	notificationRoutes.GET("/unread", c.GetUnreadNotifications)
	notificationRoutes.PATCH("/read-all", c.MarkAllRead)
	notificationRoutes.PATCH("/:id/read", c.MarkRead)
}

// GetUnreadNotifications
// @Summary Get unread notifications
// @Description Newest first, paged. unreadCount is the total; clients page until they hold
// @Description that many and treat the result as the complete unread set after a reconnect.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} notifications_dto.UnreadNotificationsResponseDTO
// @Failure 400 {object} errs.ErrorResponse
// @Failure 401 {object} errs.ErrorResponse
// @Router /notifications/unread [get]
func (c *NotificationController) GetUnreadNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	var request notifications_dto.GetUnreadRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		errs.RespondInvalidBody(ctx, err)
		return
	}

	unread, err := c.notificationService.GetUnread(user.ID, &request)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, unread)
}

// MarkRead
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} notifications_models.Notification
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errs.Respond(ctx, errs.BadRequest(errs.CodeInvalidRequest, "Invalid notification ID"))
		return
	}

	notification, err := c.notificationService.MarkRead(ctx.Request.Context(), notificationID, user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notification)
}

// MarkAllRead
// @Summary Mark every notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} notifications_dto.MarkAllReadResponseDTO
// @Failure 401 {object} errs.ErrorResponse
// @Router /notifications/read-all [patch]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	updated, err := c.notificationService.MarkAllRead(ctx.Request.Context(), user)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, notifications_dto.MarkAllReadResponseDTO{Updated: updated})
}

// Connect
// @Summary Open the notification stream
// @Description Upgrades to a WebSocket. The first frame is unread-notifications carrying the first
// @Description page of GET /notifications/unread, followed by new-notification and notification-read events.
// @Tags notifications
// @Param token query string false "Session token when cookies are unavailable"
// @Success 101
// @Failure 401 {object} errs.ErrorResponse
// @Router /notifications/ws [get]
func (c *NotificationController) Connect(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		errs.Respond(ctx, errs.Unauthorized("User not authenticated"))
		return
	}

	unread, err := c.notificationService.GetUnread(user.ID, nil)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	snapshot, err := notifications_dto.NewEnvelope(notifications_enums.EventUnreadNotifications, unread)
	if err != nil {
		errs.Respond(ctx, err)
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.GetLogger().Warn("WebSocket upgrade failed", "userId", user.ID, "error", err)
		return
	}

	client := notifications_realtime.NewClient(c.hub, conn, user.ID)
	if err := c.hub.Connect(client, snapshot); err != nil {
		logger.GetLogger().Error("Failed to register WebSocket client", "userId", user.ID, "error", err)
		_ = conn.Close()
		return
	}
	client.Serve()
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	return strings.EqualFold(strings.TrimSuffix(origin, "/"), strings.TrimSuffix(config.GetEnv().FrontendURL, "/"))
}
