package notifications_realtime

import (
	notifications_services "opensourcetogether/internal/features/notifications/services"
	cache_utils "opensourcetogether/internal/util/cache"
	"opensourcetogether/internal/util/logger"
)

var hub = NewHub(cache_utils.NewPubSub(), notifications_services.NotificationsChannel, logger.GetLogger())

func GetHub() *Hub {
	return hub
}
