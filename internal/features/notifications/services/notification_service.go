package notifications_services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	notifications_enums "opensourcetogether/internal/features/notifications/enums"
	notifications_models "opensourcetogether/internal/features/notifications/models"
	notifications_repositories "opensourcetogether/internal/features/notifications/repositories"
	users_models "opensourcetogether/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultUnreadLimit = 100
	maxUnreadLimit     = 100
)

type NotifyInput struct {
	ReceiverID uuid.UUID
	SenderID   *uuid.UUID
	Type       notifications_enums.NotificationType
	Payload    any
}

type NotificationService struct {
	notificationRepository *notifications_repositories.NotificationRepository
	publisher              EventPublisher
	logger                 *slog.Logger
}

// Notify stores the notification and pushes it to the receiver's open
// connections. Delivery failures are logged; the unread endpoint stays the
// source of truth for catching up.
func (s *NotificationService) Notify(ctx context.Context, input NotifyInput) (*notifications_models.Notification, error) {
	payload, err := json.Marshal(input.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	notification := &notifications_models.Notification{
		ReceiverID: input.ReceiverID,
		SenderID:   input.SenderID,
		Type:       input.Type,
		Payload:    datatypes.JSON(payload),
	}

	if err := s.notificationRepository.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.broadcast(ctx, input.ReceiverID, notifications_enums.EventNewNotification, notification)

	return notification, nil
}

// GetUnread returns one page of the receiver's unread notifications together
// with the total unread count.
func (s *NotificationService) GetUnread(
	userID uuid.UUID,
	request *notifications_dto.GetUnreadRequestDTO,
) (*notifications_dto.UnreadNotificationsResponseDTO, error) {
	limit, offset := unreadPage(request)

	unreadCount, err := s.notificationRepository.CountUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	notifications, err := s.notificationRepository.GetUnreadByReceiver(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get unread notifications: %w", err)
	}

	return &notifications_dto.UnreadNotificationsResponseDTO{
		Notifications: notifications,
		UnreadCount:   unreadCount,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

func (s *NotificationService) MarkRead(
	ctx context.Context,
	notificationID uuid.UUID,
	user *users_models.User,
) (*notifications_models.Notification, error) {
	notification, err := s.notificationRepository.GetByID(notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if notification == nil || notification.ReceiverID != user.ID {
		return nil, ErrNotificationNotFound
	}

	if notification.IsRead() {
		return notification, nil
	}

	readAt := time.Now().UTC()
	if err := s.notificationRepository.MarkRead(notificationID, readAt); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	notification.ReadAt = &readAt

	s.broadcast(ctx, user.ID, notifications_enums.EventNotificationRead, notifications_dto.NotificationReadEvent{
		IDs:    []uuid.UUID{notificationID},
		ReadAt: readAt,
	})

	return notification, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, user *users_models.User) (int, error) {
	readAt := time.Now().UTC()

	ids, err := s.notificationRepository.MarkAllRead(user.ID, readAt)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	if len(ids) > 0 {
		s.broadcast(ctx, user.ID, notifications_enums.EventNotificationRead, notifications_dto.NotificationReadEvent{
			IDs:    ids,
			ReadAt: readAt,
		})
	}

	return len(ids), nil
}

func (s *NotificationService) broadcast(ctx context.Context, receiverID uuid.UUID, event string, data any) {
	envelope, err := notifications_dto.NewEnvelope(event, data)
	if err != nil {
		s.logger.Error("Failed to encode notification event", "event", event, "error", err)
		return
	}

	message := &notifications_dto.BroadcastMessage{ReceiverID: receiverID, Envelope: envelope}
	if err := s.publisher.Publish(ctx, message); err != nil {
		s.logger.Warn("Failed to publish notification event",
			"event", event,
			"receiverId", receiverID,
			"error", err)
	}
}

// Close releases the publisher connections, flushing pending Kafka writes.
func (s *NotificationService) Close() error {
	if closer, ok := s.publisher.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

func unreadPage(request *notifications_dto.GetUnreadRequestDTO) (int, int) {
	if request == nil {
		return defaultUnreadLimit, 0
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultUnreadLimit
	}
	if limit > maxUnreadLimit {
		limit = maxUnreadLimit
	}

	return limit, max(request.Offset, 0)
}
