package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dom/deadlock-hub/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

type wsFrame struct {
	msg *websocket.Message
	err error
}

// WSClient subscribes to the live feed and collects what the server sends.
type WSClient struct {
	t     *testing.T
	conn  *gorillaWS.Conn
	inbox chan wsFrame
	once  sync.Once
	mu    sync.Mutex
}

// NewWSClient dials url and closes the connection when the test ends.
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	c := &WSClient{
		t:     t,
		conn:  conn,
		inbox: make(chan wsFrame, 100),
	}
	go c.collect()
	t.Cleanup(c.Close)

	return c
}

// collect decodes frames until the connection drops. The final frame
// carries the read error.
func (c *WSClient) collect() {
	defer close(c.inbox)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.inbox <- wsFrame{err: err}
			return
		}
		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.inbox <- wsFrame{err: err}
			continue
		}
		c.inbox <- wsFrame{msg: &msg}
	}
}

func (c *WSClient) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.mu.Unlock()
		c.conn.Close()
	})
}

func (c *WSClient) send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build message: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}

	c.mu.Lock()
	err = c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()
	if err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

// Subscribe follows a topic and waits for the acknowledgement.
func (c *WSClient) Subscribe(topic string, timeout time.Duration) {
	c.t.Helper()
	c.send(websocket.MessageTypeSubscribe, websocket.SubscribePayload{Topic: topic})
	c.ExpectMessage(websocket.MessageTypeSubscribed, timeout)
}

// ExpectMessage skips frames of other types until msgType arrives.
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case frame, ok := <-c.inbox:
			switch {
			case !ok:
				c.t.Fatalf("connection closed while waiting for %s", msgType)
			case frame.err != nil:
				c.t.Fatalf("error while waiting for %s: %v", msgType, frame.err)
			case frame.msg.Type == msgType:
				return frame.msg
			}
		case <-deadline:
			c.t.Fatalf("timeout waiting for message type %s", msgType)
		}
	}
}

func (c *WSClient) ExpectThreadCreated(timeout time.Duration) *websocket.ThreadCreatedPayload {
	c.t.Helper()
	var payload websocket.ThreadCreatedPayload
	c.decode(c.ExpectMessage(websocket.MessageTypeThreadCreated, timeout), &payload)
	return &payload
}

func (c *WSClient) ExpectPostCreated(timeout time.Duration) *websocket.PostCreatedPayload {
	c.t.Helper()
	var payload websocket.PostCreatedPayload
	c.decode(c.ExpectMessage(websocket.MessageTypePostCreated, timeout), &payload)
	return &payload
}

func (c *WSClient) decode(msg *websocket.Message, v interface{}) {
	c.t.Helper()
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		c.t.Fatalf("failed to decode %s payload: %v", msg.Type, err)
	}
}

// ExpectNoMessage fails if anything but a disconnect arrives within timeout.
func (c *WSClient) ExpectNoMessage(timeout time.Duration) {
	c.t.Helper()

	select {
	case frame, ok := <-c.inbox:
		if ok && frame.msg != nil {
			c.t.Fatalf("unexpected message received: %s", frame.msg.Type)
		}
	case <-time.After(timeout):
	}
}
