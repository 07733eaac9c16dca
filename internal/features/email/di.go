package email

import (
	"opensourcetogether/internal/config"
	cache_utils "opensourcetogether/internal/util/cache"
	"opensourcetogether/internal/util/logger"

	"golang.org/x/time/rate"
)

const emailQueueKey = "ost:email_queue"

var emailService = newEmailService(emailQueueKey, defaultSender())

var emailWorkerService = newEmailWorkerService(emailService)

func GetEmailService() *EmailService {
	return emailService
}

func GetEmailWorkerService() *EmailWorkerService {
	return emailWorkerService
}

func newEmailService(queueKey string, sender Sender) *EmailService {
	return &EmailService{
		queueService: cache_utils.NewValkeyQueueService(),
		queueKey:     queueKey,
		logger:       logger.GetLogger(),
		sender:       sender,
	}
}

func newEmailWorkerService(emailService *EmailService) *EmailWorkerService {
	return &EmailWorkerService{
		emailService: emailService,
		queueService: cache_utils.NewValkeyQueueService(),
		limiter:      rate.NewLimiter(rate.Limit(emailsPerSecond), emailsBurst),
		logger:       logger.GetLogger(),
	}
}

func defaultSender() Sender {
	env := config.GetEnv()
	if !env.IsSmtpConfigured() {
		return nil
	}

	return NewGomailSender(SmtpConfig{
		Host:     env.SmtpHost,
		Port:     env.SmtpPort,
		Username: env.SmtpUsername,
		Password: env.SmtpPassword,
		From:     env.SmtpFrom,
	})
}
