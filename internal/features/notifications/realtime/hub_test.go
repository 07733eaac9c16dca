package notifications_realtime

import (
	"encoding/json"
	"testing"

	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	notifications_enums "opensourcetogether/internal/features/notifications/enums"
	"opensourcetogether/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(nil, "test", logger.GetLogger())
}

// connectTestClient connects a client and consumes its snapshot frame.
func connectTestClient(t *testing.T, hub *Hub, userID uuid.UUID) *Client {
	t.Helper()

	client := NewClient(hub, nil, userID)

	snapshot, err := notifications_dto.NewEnvelope(notifications_enums.EventUnreadNotifications, []string{})
	require.NoError(t, err)
	require.NoError(t, hub.Connect(client, snapshot))
	<-client.send

	return client
}

func Test_SendToUser_DeliversToEveryConnectionOfUser(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	first := connectTestClient(t, hub, userID)
	second := connectTestClient(t, hub, userID)
	stranger := connectTestClient(t, hub, uuid.New())

	envelope, err := notifications_dto.NewEnvelope(notifications_enums.EventNewNotification, map[string]string{"id": "1"})
	require.NoError(t, err)

	delivered := hub.SendToUser(userID, envelope)

	assert.Equal(t, 2, delivered)
	assert.Len(t, first.send, 1)
	assert.Len(t, second.send, 1)
	assert.Empty(t, stranger.send)

	var frame notifications_dto.Envelope
	require.NoError(t, json.Unmarshal(<-first.send, &frame))
	assert.Equal(t, notifications_enums.EventNewNotification, frame.Event)
	assert.JSONEq(t, `{"id":"1"}`, string(frame.Data))
}

func Test_SendToUser_WhenBufferFull_DropsClient(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	client := connectTestClient(t, hub, userID)

	envelope, err := notifications_dto.NewEnvelope(notifications_enums.EventNewNotification, "x")
	require.NoError(t, err)

	for range sendBufferSize {
		assert.Equal(t, 1, hub.SendToUser(userID, envelope))
	}

	assert.Equal(t, 0, hub.SendToUser(userID, envelope))
	assert.Equal(t, 0, hub.ConnectionCount(userID))

	drained := 0
	for range client.send {
		drained++
	}
	assert.Equal(t, sendBufferSize, drained)
}

func Test_Unregister_ClosesSendOnce(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	client := connectTestClient(t, hub, userID)

	hub.Unregister(client)
	hub.Unregister(client)

	_, ok := <-client.send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ConnectionCount(userID))
}

func Test_Dispatch_RoutesByReceiver(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	client := connectTestClient(t, hub, userID)

	envelope, err := notifications_dto.NewEnvelope(notifications_enums.EventNotificationRead,
		notifications_dto.NotificationReadEvent{IDs: []uuid.UUID{uuid.New()}})
	require.NoError(t, err)

	payload, err := json.Marshal(notifications_dto.BroadcastMessage{ReceiverID: userID, Envelope: envelope})
	require.NoError(t, err)

	hub.Dispatch(payload)
	hub.Dispatch([]byte("not json"))

	assert.Len(t, client.send, 1)
}

func Test_Connect_QueuesSnapshotFirst(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	client := NewClient(hub, nil, userID)

	snapshot, err := notifications_dto.NewEnvelope(notifications_enums.EventUnreadNotifications, []string{})
	require.NoError(t, err)
	require.NoError(t, hub.Connect(client, snapshot))

	event, err := notifications_dto.NewEnvelope(notifications_enums.EventNewNotification, "x")
	require.NoError(t, err)
	hub.SendToUser(userID, event)

	var first notifications_dto.Envelope
	require.NoError(t, json.Unmarshal(<-client.send, &first))
	assert.Equal(t, notifications_enums.EventUnreadNotifications, first.Event)
	assert.Equal(t, 1, hub.ConnectionCount(userID))
}
