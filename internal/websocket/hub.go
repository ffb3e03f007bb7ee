// Package websocket pushes new forum threads and replies to connected
// browsers.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/dom/deadlock-hub/internal/domain"
)

type Hub struct {
	clients    map[*Client]map[string]bool
	topics     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	subscribe  chan *subscription
	broadcast  chan *broadcast
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits, or by Stop if Run never started
	stopOnce   sync.Once
	running    bool
	stopped    bool
	mu         sync.RWMutex
}

type subscription struct {
	client *Client
	topic  string
	join   bool
}

// broadcast goes to every subscriber of topic, or only to client when set.
type broadcast struct {
	topic  string
	client *Client
	data   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]map[string]bool),
		topics:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan *subscription),
		broadcast:  make(chan *broadcast, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until Stop. A second call, or a call after Stop,
// returns immediately.
func (h *Hub) Run() {
	h.mu.Lock()
	if h.running || h.stopped {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]map[string]bool)
			h.topics = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = make(map[string]bool)
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeClient(client)
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			h.handleSubscription(sub)
			h.mu.Unlock()

		case b := <-h.broadcast:
			h.mu.Lock()
			h.deliver(b)
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and closes every client's send channel. It blocks
// until Run has returned and is safe to call more than once, concurrently,
// or before Run.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		if !h.running {
			h.stopped = true
			close(h.done)
		}
		h.mu.Unlock()
		close(h.stop)
	})
	<-h.done
}

func (h *Hub) removeClient(client *Client) {
	topics, ok := h.clients[client]
	if !ok {
		return
	}
	for topic := range topics {
		h.leaveTopic(client, topic)
	}
	delete(h.clients, client)
	close(client.send)
}

func (h *Hub) handleSubscription(sub *subscription) {
	topics, ok := h.clients[sub.client]
	if !ok {
		return
	}

	if !sub.join {
		delete(topics, sub.topic)
		h.leaveTopic(sub.client, sub.topic)
		return
	}

	topics[sub.topic] = true
	members, ok := h.topics[sub.topic]
	if !ok {
		members = make(map[*Client]bool)
		h.topics[sub.topic] = members
	}
	members[sub.client] = true

	msg, _ := NewMessage(MessageTypeSubscribed, SubscribedPayload{Topic: sub.topic})
	if data, err := json.Marshal(msg); err == nil {
		sub.client.trySend(data)
	}
}

func (h *Hub) leaveTopic(client *Client, topic string) {
	members := h.topics[topic]
	delete(members, client)
	if len(members) == 0 {
		delete(h.topics, topic)
	}
}

func (h *Hub) deliver(b *broadcast) {
	if b.client != nil {
		if _, ok := h.clients[b.client]; ok {
			b.client.trySend(b.data)
		}
		return
	}
	for client := range h.topics[b.topic] {
		if !client.trySend(b.data) {
			log.Printf("WARN [websocket.deliver] topic=%s: dropping slow client %s", b.topic, client.userID)
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister safely unregisters a client, handling the case where the hub may be stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// SubscriberCount reports how many clients follow topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) publish(topic string, msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		log.Printf("ERROR [websocket.publish] topic=%s: %v", topic, err)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR [websocket.publish] topic=%s: %v", topic, err)
		return
	}

	h.enqueue(&broadcast{topic: topic, data: data})
}

func (h *Hub) enqueue(b *broadcast) {
	select {
	case h.broadcast <- b:
	case <-h.done:
	}
}

// PublishThread announces a new thread on the forum topic.
func (h *Hub) PublishThread(thread *domain.Thread) {
	h.publish(TopicForum, MessageTypeThreadCreated, threadCreated(thread))
}

// PublishPost sends a reply to everyone following its thread.
func (h *Hub) PublishPost(post *domain.Post) {
	h.publish(post.ThreadID.String(), MessageTypePostCreated, postCreated(post))
}
