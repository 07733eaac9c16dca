package notifications_models

import (
	"time"

	notifications_enums "opensourcetogether/internal/features/notifications/enums"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is unread while ReadAt is nil.
type Notification struct {
	ID         uuid.UUID                            `json:"id"         gorm:"column:id;primaryKey"`
	ReceiverID uuid.UUID                            `json:"receiverId" gorm:"column:receiver_id"`
	SenderID   *uuid.UUID                           `json:"senderId"   gorm:"column:sender_id"`
	Type       notifications_enums.NotificationType `json:"type"       gorm:"column:type"`
	Payload    datatypes.JSON                       `json:"payload"    gorm:"column:payload"`
	CreatedAt  time.Time                            `json:"createdAt"  gorm:"column:created_at"`
	ReadAt     *time.Time                           `json:"readAt"     gorm:"column:read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
