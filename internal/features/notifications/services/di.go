package notifications_services

import (
	"opensourcetogether/internal/config"
	notifications_repositories "opensourcetogether/internal/features/notifications/repositories"
	cache_utils "opensourcetogether/internal/util/cache"
	"opensourcetogether/internal/util/logger"
)

var notificationRepository = &notifications_repositories.NotificationRepository{}

var notificationService = &NotificationService{
	notificationRepository: notificationRepository,
	publisher:              newPublisher(),
	logger:                 logger.GetLogger(),
}

func GetNotificationService() *NotificationService {
	return notificationService
}

func newPublisher() EventPublisher {
	publishers := MultiPublisher{
		NewPubSubPublisher(cache_utils.NewPubSub(), NotificationsChannel),
	}

	env := config.GetEnv()
	if brokers := env.KafkaBrokers(); len(brokers) > 0 {
		publishers = append(publishers, NewKafkaPublisher(brokers, env.KafkaNotificationsTopic))
	}

	return publishers
}
