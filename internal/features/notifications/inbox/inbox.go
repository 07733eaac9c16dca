// Package notifications_inbox is the client side view of a user's
// notifications: the REST unread snapshot merged with WebSocket pushes.
package notifications_inbox

import (
	"sort"
	"sync"
	"time"

	notifications_models "opensourcetogether/internal/features/notifications/models"

	"github.com/google/uuid"
)

type Inbox struct {
	mu            sync.RWMutex
	notifications map[uuid.UUID]*notifications_models.Notification
	unreadCount   int
}

func New() *Inbox {
	return &Inbox{notifications: make(map[uuid.UUID]*notifications_models.Notification)}
}

// Add stores a notification unless its id is already known. It reports
// whether the inbox changed.
func (i *Inbox) Add(notification *notifications_models.Notification) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.addLocked(notification)
}

// Merge adds every notification of a snapshot and returns how many were new.
func (i *Inbox) Merge(notifications []*notifications_models.Notification) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	added := 0
	for _, notification := range notifications {
		if i.addLocked(notification) {
			added++
		}
	}

	return added
}

// ReplaceUnread treats snapshot as the complete set of unread notifications:
// unknown ones are added, and stored unread ones missing from it are marked
// read at readAt. It returns the added notifications in snapshot order and
// how many were marked read.
func (i *Inbox) ReplaceUnread(
	snapshot []*notifications_models.Notification,
	readAt time.Time,
) ([]*notifications_models.Notification, int) {
	i.mu.Lock()
	defer i.mu.Unlock()

	unreadIDs := make(map[uuid.UUID]struct{}, len(snapshot))
	added := make([]*notifications_models.Notification, 0)
	for _, notification := range snapshot {
		if notification == nil {
			continue
		}
		unreadIDs[notification.ID] = struct{}{}
		if i.addLocked(notification) {
			added = append(added, notification)
		}
	}

	markedRead := 0
	for id, notification := range i.notifications {
		if notification.IsRead() {
			continue
		}
		if _, ok := unreadIDs[id]; ok {
			continue
		}
		at := readAt
		notification.ReadAt = &at
		i.unreadCount--
		markedRead++
	}

	return added, markedRead
}

// MarkRead reports whether the notification went from unread to read.
func (i *Inbox) MarkRead(id uuid.UUID, readAt time.Time) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	notification, ok := i.notifications[id]
	if !ok || notification.IsRead() {
		return false
	}

	notification.ReadAt = &readAt
	i.unreadCount--

	return true
}

func (i *Inbox) MarkAllRead(readAt time.Time) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	marked := 0
	for _, notification := range i.notifications {
		if notification.IsRead() {
			continue
		}
		at := readAt
		notification.ReadAt = &at
		marked++
	}
	i.unreadCount = 0

	return marked
}

func (i *Inbox) UnreadCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.unreadCount
}

func (i *Inbox) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.notifications)
}

// Notifications returns copies, newest first.
func (i *Inbox) Notifications() []notifications_models.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()

	result := make([]notifications_models.Notification, 0, len(i.notifications))
	for _, notification := range i.notifications {
		result = append(result, *notification)
	}

	sort.Slice(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})

	return result
}

func (i *Inbox) addLocked(notification *notifications_models.Notification) bool {
	if notification == nil {
		return false
	}
	if _, ok := i.notifications[notification.ID]; ok {
		return false
	}

	stored := *notification
	i.notifications[stored.ID] = &stored
	if !stored.IsRead() {
		i.unreadCount++
	}

	return true
}
