package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"opensourcetogether/internal/config"
	cache_utils "opensourcetogether/internal/util/cache"

	"golang.org/x/time/rate"
)

const (
	dequeueTimeout   = 5 * time.Second
	emailsPerSecond  = 2
	emailsBurst      = 1
	testDrainTimeout = 1 * time.Second
)

// EmailWorkerService drains the e-mail queue and hands messages to the sender
// no faster than emailsPerSecond.
type EmailWorkerService struct {
	emailService *EmailService
	queueService *cache_utils.ValkeyQueueService
	limiter      *rate.Limiter
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *EmailWorkerService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if !s.emailService.IsEnabled() {
		s.logger.Info("E-mail worker not started, SMTP is not configured")
		return
	}

	s.wg.Add(1)
	go s.sendWorker()

	s.logger.Info("E-mail worker started", slog.Int("emailsPerSecond", emailsPerSecond))
}

func (s *EmailWorkerService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// ExecuteAllTasksForTest sends everything currently queued and returns.
func (s *EmailWorkerService) ExecuteAllTasksForTest() error {
	length, err := s.queueService.QueueLength(s.emailService.queueKey)
	if err != nil {
		return fmt.Errorf("failed to read e-mail queue length: %w", err)
	}

	for range length {
		data, err := s.queueService.DequeueBlocking(s.emailService.queueKey, testDrainTimeout)
		if err != nil {
			return fmt.Errorf("failed to dequeue e-mail: %w", err)
		}
		if data == nil {
			return nil
		}

		s.send(data)
	}

	return nil
}

func (s *EmailWorkerService) sendWorker() {
	defer s.wg.Done()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("E-mail worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("E-mail worker shutting down")
			return
		default:
		}

		data, err := s.queueService.DequeueBlocking(s.emailService.queueKey, dequeueTimeout)
		if err != nil {
			s.logger.Error("Failed to dequeue e-mail", slog.String("error", err.Error()))
			time.Sleep(time.Second)
			continue
		}
		if data == nil {
			continue
		}

		if !s.deliver(s.ctx, data) {
			s.logger.Info("E-mail worker shutting down")
			return
		}
	}
}

// deliver waits for the rate limiter, then sends. When ctx ends first the
// message goes back to the head of the queue and deliver returns false.
func (s *EmailWorkerService) deliver(ctx context.Context, data []byte) bool {
	if err := s.limiter.Wait(ctx); err != nil {
		if err := s.queueService.Requeue(s.emailService.queueKey, data); err != nil {
			s.logger.Error("Failed to requeue e-mail", slog.String("error", err.Error()))
		}
		return false
	}

	s.send(data)
	return true
}

// send drops messages that fail; there is no dead letter queue.
func (s *EmailWorkerService) send(data []byte) {
	var email Email
	if err := json.Unmarshal(data, &email); err != nil {
		s.logger.Error("Failed to unmarshal queued e-mail", slog.String("error", err.Error()))
		return
	}

	sender := s.emailService.getSender()
	if sender == nil {
		s.logger.Warn("Dropping queued e-mail, SMTP is not configured", slog.String("subject", email.Subject))
		return
	}

	if err := sender.Send(&email); err != nil {
		s.logger.Error("Failed to send e-mail",
			slog.String("subject", email.Subject),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("E-mail sent",
		slog.String("subject", email.Subject),
		slog.Duration("queuedFor", time.Since(email.QueuedAt)))
}
