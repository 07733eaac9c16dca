package notifications_dto

import (
	"encoding/json"
	"time"

	notifications_models "opensourcetogether/internal/features/notifications/models"

	"github.com/google/uuid"
)

// Envelope is the shape of every WebSocket frame.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// BroadcastMessage travels over pub/sub and Kafka; the hub delivers Envelope
// to every connection of ReceiverID.
type BroadcastMessage struct {
	ReceiverID uuid.UUID `json:"receiverId"`
	Envelope   Envelope  `json:"envelope"`
}

type NotificationReadEvent struct {
	IDs    []uuid.UUID `json:"ids"`
	ReadAt time.Time   `json:"readAt"`
}

type GetUnreadRequestDTO struct {
	Limit  int `form:"limit"  json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// UnreadNotificationsResponseDTO is one page of unread notifications, newest
// first. UnreadCount is the receiver's total, so a client knows when it has
// the whole set.
type UnreadNotificationsResponseDTO struct {
	Notifications []*notifications_models.Notification `json:"notifications"`
	UnreadCount   int64                                `json:"unreadCount"`
	Limit         int                                  `json:"limit"`
	Offset        int                                  `json:"offset"`
}

// IsComplete reports whether the page holds every unread notification.
func (r *UnreadNotificationsResponseDTO) IsComplete() bool {
	return r.Offset == 0 && int64(len(r.Notifications)) >= r.UnreadCount
}

type MarkAllReadResponseDTO struct {
	Updated int `json:"updated"`
}

func NewEnvelope(event string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{Event: event, Data: raw}, nil
}
