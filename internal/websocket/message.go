package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/deadlock-hub/internal/domain"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSubscribe   MessageType = "SUBSCRIBE"
	MessageTypeUnsubscribe MessageType = "UNSUBSCRIBE"

	// Server to Client
	MessageTypeSubscribed    MessageType = "SUBSCRIBED"
	MessageTypeThreadCreated MessageType = "THREAD_CREATED"
	MessageTypePostCreated   MessageType = "POST_CREATED"
	MessageTypeError         MessageType = "ERROR"
)

// TopicForum carries every new thread. Each thread also has its own topic,
// named by the thread id, carrying its replies.
const TopicForum = "forum"

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type SubscribePayload struct {
	Topic string `json:"topic"`
}

// Server to Client payloads

type SubscribedPayload struct {
	Topic string `json:"topic"`
}

type ThreadCreatedPayload struct {
	ThreadID  string   `json:"threadId"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"`
}

type PostCreatedPayload struct {
	PostID    string `json:"postId"`
	ThreadID  string `json:"threadId"`
	Author    string `json:"author"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func authorName(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.PersonaName
}

func authorAvatar(u *domain.User) string {
	if u == nil {
		return ""
	}
	return u.AvatarURL
}

func threadCreated(t *domain.Thread) ThreadCreatedPayload {
	var tags []string
	if len(t.Tags) > 0 {
		_ = json.Unmarshal(t.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return ThreadCreatedPayload{
		ThreadID:  t.ID.String(),
		Title:     t.Title,
		Author:    authorName(t.Author),
		Tags:      tags,
		CreatedAt: t.CreatedAt.UnixMilli(),
	}
}

func postCreated(p *domain.Post) PostCreatedPayload {
	return PostCreatedPayload{
		PostID:    p.ID.String(),
		ThreadID:  p.ThreadID.String(),
		Author:    authorName(p.Author),
		AvatarURL: authorAvatar(p.Author),
		Body:      p.Body,
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
}
