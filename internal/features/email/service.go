package email

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	cache_utils "opensourcetogether/internal/util/cache"
)

type EmailService struct {
	queueService *cache_utils.ValkeyQueueService
	queueKey     string
	logger       *slog.Logger

	mu     sync.RWMutex
	sender Sender
}

// SetSender replaces the delivery backend. A nil sender disables e-mail.
func (s *EmailService) SetSender(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *EmailService) getSender() Sender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sender
}

func (s *EmailService) IsEnabled() bool {
	return s.getSender() != nil
}

// QueueEmail stores the message for the worker. It is a no-op when no sender
// is configured or the address is empty.
func (s *EmailService) QueueEmail(to string, subject string, htmlBody string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil
	}

	if !s.IsEnabled() {
		s.logger.Info("E-mail skipped, SMTP is not configured", "subject", subject)
		return nil
	}

	email := &Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		QueuedAt: time.Now().UTC(),
	}

	if err := s.queueService.Enqueue(s.queueKey, email); err != nil {
		return fmt.Errorf("failed to queue e-mail: %w", err)
	}

	return nil
}
