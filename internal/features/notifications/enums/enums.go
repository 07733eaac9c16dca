package notifications_enums

type NotificationType string

const (
	NotificationTypeApplicationCreated   NotificationType = "project.role.application.created"
	NotificationTypeApplicationAccepted  NotificationType = "project.role.application.accepted"
	NotificationTypeApplicationRejected  NotificationType = "project.role.application.rejected"
	NotificationTypeApplicationCancelled NotificationType = "project.role.application.cancelled"
)

// Event names sent over the WebSocket.
const (
	EventNewNotification     = "new-notification"
	EventUnreadNotifications = "unread-notifications"
	EventNotificationRead    = "notification-read"
)
