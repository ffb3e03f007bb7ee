package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/deadlock-hub/internal/domain"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTimeout = 2 * time.Second

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub()
	go hub.Run()

	upgrader := gorillaWS.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn, uuid.Nil).Serve()
	}))

	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *gorillaWS.Conn {
	t.Helper()
	conn, _, err := gorillaWS.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *gorillaWS.Conn, msgType MessageType, payload interface{}) {
	t.Helper()
	msg, err := NewMessage(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func expect(t *testing.T, conn *gorillaWS.Conn, msgType MessageType) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(defaultTimeout)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, msgType, msg.Type, "payload: %s", msg.Payload)
	return &msg
}

func expectNothing(t *testing.T, conn *gorillaWS.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var msg Message
	err := conn.ReadJSON(&msg)
	assert.Error(t, err, "unexpected message %s", msg.Type)
}

func subscribe(t *testing.T, hub *Hub, conn *gorillaWS.Conn, topic string) {
	t.Helper()
	send(t, conn, MessageTypeSubscribe, SubscribePayload{Topic: topic})
	msg := expect(t, conn, MessageTypeSubscribed)

	var payload SubscribedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, topic, payload.Topic)
}

func TestHub_PostReachesThreadSubscribers(t *testing.T) {
	hub, url := newTestHub(t)
	threadID := uuid.New()

	follower := dial(t, url)
	bystander := dial(t, url)
	subscribe(t, hub, follower, threadID.String())
	subscribe(t, hub, bystander, uuid.New().String())

	hub.PublishPost(&domain.Post{
		ID:        uuid.New(),
		ThreadID:  threadID,
		Author:    &domain.User{PersonaName: "Kirin", AvatarURL: "https://avatars.example/k.jpg"},
		Body:      "Mystic Reach first, then Extra Charge.",
		CreatedAt: time.Now(),
	})

	msg := expect(t, follower, MessageTypePostCreated)
	var payload PostCreatedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, threadID.String(), payload.ThreadID)
	assert.Equal(t, "Kirin", payload.Author)
	assert.Equal(t, "Mystic Reach first, then Extra Charge.", payload.Body)

	expectNothing(t, bystander)
}

func TestHub_ThreadsGoToForumTopic(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url)
	subscribe(t, hub, conn, TopicForum)

	hub.PublishThread(&domain.Thread{
		ID:        uuid.New(),
		Title:     "Haze build for Eternus",
		Tags:      []byte(`["haze","builds"]`),
		CreatedAt: time.Now(),
	})

	msg := expect(t, conn, MessageTypeThreadCreated)
	var payload ThreadCreatedPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Haze build for Eternus", payload.Title)
	assert.Equal(t, []string{"haze", "builds"}, payload.Tags)
	assert.Empty(t, payload.Author)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	subscribe(t, hub, conn, TopicForum)
	require.Equal(t, 1, hub.SubscriberCount(TopicForum))

	send(t, conn, MessageTypeUnsubscribe, SubscribePayload{Topic: TopicForum})
	require.Eventually(t, func() bool {
		return hub.SubscriberCount(TopicForum) == 0
	}, defaultTimeout, 10*time.Millisecond)

	hub.PublishThread(&domain.Thread{ID: uuid.New(), Title: "nobody hears this"})
	expectNothing(t, conn)
}

func TestHub_InvalidMessages(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		payload interface{}
		code    string
	}{
		{"bad topic", MessageTypeSubscribe, SubscribePayload{Topic: "lobby"}, "INVALID_TOPIC"},
		{"empty topic", MessageTypeSubscribe, SubscribePayload{}, "INVALID_TOPIC"},
		{"unknown type", MessageType("LOCK_IN"), struct{}{}, "UNKNOWN_TYPE"},
	}

	_, url := newTestHub(t)
	conn := dial(t, url)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, conn, tt.msgType, tt.payload)
			msg := expect(t, conn, MessageTypeError)

			var payload ErrorPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, tt.code, payload.Code)
		})
	}
}

func TestHub_DisconnectLeavesTopics(t *testing.T) {
	hub, url := newTestHub(t)
	conn := dial(t, url)
	subscribe(t, hub, conn, TopicForum)

	conn.Close()

	assert.Eventually(t, func() bool {
		return hub.SubscriberCount(TopicForum) == 0
	}, defaultTimeout, 10*time.Millisecond)
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	hub.Stop()
	hub.Stop()

	// Publishing after shutdown must not block.
	done := make(chan struct{})
	go func() {
		hub.PublishThread(&domain.Thread{ID: uuid.New()})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(defaultTimeout):
		t.Fatal("publish blocked after Stop")
	}
}

func TestHub_ConcurrentStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Stop()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(defaultTimeout):
		t.Fatal("concurrent Stop calls did not return")
	}
}

func TestHub_StopBeforeRun(t *testing.T) {
	hub := NewHub()

	stopped := make(chan struct{})
	go func() {
		hub.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(defaultTimeout):
		t.Fatal("Stop blocked on a hub that never ran")
	}

	ran := make(chan struct{})
	go func() {
		hub.Run()
		close(ran)
	}()
	select {
	case <-ran:
	case <-time.After(defaultTimeout):
		t.Fatal("Run kept going after Stop")
	}
}
