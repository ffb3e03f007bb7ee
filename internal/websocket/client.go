package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// Client is one feed reader. Readers only send SUBSCRIBE and UNSUBSCRIBE;
// everything else flows from the hub to the socket.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uuid.UUID // uuid.Nil for anonymous readers
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
	}
}

// Serve registers the client and starts its pumps. It returns immediately.
func (c *Client) Serve() {
	c.hub.Register(c)
	go c.writeLoop()
	go c.readLoop()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WARN [ws.readLoop] user=%s: %v", c.userID, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("INVALID_MESSAGE", "Message is not valid JSON")
			continue
		}
		c.handleMessage(&msg)
	}
}

// writeLoop owns every write on the connection. It exits when the hub
// closes the send channel or a write fails.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe:
		var payload SubscribePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil || !validTopic(payload.Topic) {
			c.sendError("INVALID_TOPIC", "Topic must be \"forum\" or a thread id")
			return
		}
		select {
		case c.hub.subscribe <- &subscription{
			client: c,
			topic:  payload.Topic,
			join:   msg.Type == MessageTypeSubscribe,
		}:
		case <-c.hub.done:
		}

	default:
		c.sendError("UNKNOWN_TYPE", "Unknown message type")
	}
}

func validTopic(topic string) bool {
	if topic == TopicForum {
		return true
	}
	_, err := uuid.Parse(topic)
	return err == nil
}

func (c *Client) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorPayload{
		Code:    code,
		Message: message,
	})
	if err != nil {
		return
	}
	c.Send(msg)
}

// Send routes msg to this client through the hub, which owns the send
// channel.
func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR [ws.Send] type=%s: %v", msg.Type, err)
		return
	}
	c.hub.enqueue(&broadcast{client: c, data: data})
}

func (c *Client) trySend(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}
