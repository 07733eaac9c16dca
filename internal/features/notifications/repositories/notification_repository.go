package notifications_repositories

import (
	"errors"
	"time"

	notifications_models "opensourcetogether/internal/features/notifications/models"
	"opensourcetogether/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct{}

func (r *NotificationRepository) Create(notification *notifications_models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) GetByID(id uuid.UUID) (*notifications_models.Notification, error) {
	var notification notifications_models.Notification

	err := storage.GetDb().Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &notification, nil
}

func (r *NotificationRepository) GetUnreadByReceiver(
	receiverID uuid.UUID,
	limit int,
	offset int,
) ([]*notifications_models.Notification, error) {
	notifications := make([]*notifications_models.Notification, 0)

	err := storage.GetDb().
		Where("receiver_id = ? AND read_at IS NULL", receiverID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error

	return notifications, err
}

// MarkRead sets read_at once; an already read notification keeps its time.
func (r *NotificationRepository) MarkRead(id uuid.UUID, readAt time.Time) error {
	return storage.GetDb().Model(&notifications_models.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", readAt).Error
}

// MarkAllRead returns the ids it changed.
func (r *NotificationRepository) MarkAllRead(receiverID uuid.UUID, readAt time.Time) ([]uuid.UUID, error) {
	var updated []notifications_models.Notification

	err := storage.GetDb().Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("receiver_id = ? AND read_at IS NULL", receiverID).
		Update("read_at", readAt).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(updated))
	for _, notification := range updated {
		ids = append(ids, notification.ID)
	}

	return ids, nil
}

func (r *NotificationRepository) CountUnread(receiverID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().Model(&notifications_models.Notification{}).
		Where("receiver_id = ? AND read_at IS NULL", receiverID).
		Count(&count).Error

	return count, err
}
