package notifications_controllers

import (
	notifications_realtime "opensourcetogether/internal/features/notifications/realtime"
	notifications_services "opensourcetogether/internal/features/notifications/services"
	users_services "opensourcetogether/internal/features/users/services"

	"github.com/gorilla/websocket"
)

var notificationController = &NotificationController{
	notificationService: notifications_services.GetNotificationService(),
	userService:         users_services.GetUserService(),
	hub:                 notifications_realtime.GetHub(),
	upgrader: websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	},
}

func GetNotificationController() *NotificationController {
	return notificationController
}
