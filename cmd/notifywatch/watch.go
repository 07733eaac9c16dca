package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	notifications_enums "opensourcetogether/internal/features/notifications/enums"
	notifications_inbox "opensourcetogether/internal/features/notifications/inbox"
	notifications_models "opensourcetogether/internal/features/notifications/models"

	"github.com/gorilla/websocket"
)

type watcher struct {
	api    *apiClient
	inbox  *notifications_inbox.Inbox
	out    io.Writer
	logger *slog.Logger
	dialer *websocket.Dialer
}

// Run keeps a session open until ctx is cancelled, reconnecting after
// reconnectDelay whenever the stream drops.
func (w *watcher) Run(ctx context.Context, reconnectDelay time.Duration) error {
	for {
		err := w.session(ctx)
		if ctx.Err() != nil {
			return nil
		}

		w.logger.Warn("Notification stream closed, reconnecting", "error", err, "delay", reconnectDelay)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *watcher) session(ctx context.Context) error {
	snapshot, err := w.api.Unread(ctx)
	if err != nil {
		return err
	}
	w.replaceUnread(snapshot)

	dialer := w.dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, w.api.StreamURL(), nil)
	if err != nil {
		return fmt.Errorf("dial notification stream: %w", err)
	}
	defer func() { _ = conn.Close() }()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		if err := w.handle(data); err != nil {
			w.logger.Warn("Skipping malformed frame", "error", err)
		}
	}
}

func (w *watcher) handle(data []byte) error {
	var envelope notifications_dto.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	switch envelope.Event {
	case notifications_enums.EventUnreadNotifications:
		var snapshot notifications_dto.UnreadNotificationsResponseDTO
		if err := json.Unmarshal(envelope.Data, &snapshot); err != nil {
			return err
		}
		// A partial first page cannot prove the rest was read; the REST
		// catch-up before dialing already reconciled the full set.
		if snapshot.IsComplete() {
			w.replaceUnread(snapshot.Notifications)
		} else {
			w.mergeSnapshot(snapshot.Notifications)
		}

	case notifications_enums.EventNewNotification:
		var notification notifications_models.Notification
		if err := json.Unmarshal(envelope.Data, &notification); err != nil {
			return err
		}
		if w.inbox.Add(&notification) {
			w.print(&notification)
		}

	case notifications_enums.EventNotificationRead:
		var event notifications_dto.NotificationReadEvent
		if err := json.Unmarshal(envelope.Data, &event); err != nil {
			return err
		}
		for _, id := range event.IDs {
			w.inbox.MarkRead(id, event.ReadAt)
		}
		fmt.Fprintf(w.out, "%d unread\n", w.inbox.UnreadCount())

	default:
		w.logger.Debug("Ignoring unknown event", "event", envelope.Event)
	}

	return nil
}

// mergeSnapshot prints only notifications the inbox has not seen, oldest
// first. Snapshots arrive newest first.
func (w *watcher) mergeSnapshot(snapshot []*notifications_models.Notification) {
	for i := len(snapshot) - 1; i >= 0; i-- {
		if w.inbox.Add(snapshot[i]) {
			w.print(snapshot[i])
		}
	}
}

// replaceUnread reconciles the inbox with the complete unread set: entries
// read elsewhere while disconnected are marked read.
func (w *watcher) replaceUnread(snapshot []*notifications_models.Notification) {
	added, markedRead := w.inbox.ReplaceUnread(snapshot, time.Now().UTC())
	for i := len(added) - 1; i >= 0; i-- {
		w.print(added[i])
	}
	if markedRead > 0 {
		fmt.Fprintf(w.out, "%d unread\n", w.inbox.UnreadCount())
	}
}

func (w *watcher) print(notification *notifications_models.Notification) {
	state := "unread"
	if notification.IsRead() {
		state = "read"
	}

	fmt.Fprintf(w.out, "%s  %-8s %s %s %s\n",
		notification.CreatedAt.Format(time.RFC3339),
		state,
		notification.ID,
		notification.Type,
		string(notification.Payload),
	)
}
