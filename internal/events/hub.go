package events

import (
	"sync"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/google/uuid"
)

// Типы событий ленты комментариев.
const (
	TypeCreated = "created"
	TypeDeleted = "deleted"
)

// Event - изменение комментариев поста, которое получают подписчики.
type Event struct {
	Type       string              `json:"type"`
	PostID     string              `json:"postId"`
	Comment    *domain.CommentNode `json:"comment,omitempty"`
	RemovedIDs []string            `json:"removedIds,omitempty"`
}

// Hub хранит каналы подписчиков на комментарии.
type Hub struct {
	mu sync.RWMutex
	//          map[postID] map[subscriberID] channel
	subs   map[string]map[string]chan Event
	buffer int
}

// NewHub - конструктор. buffer - размер канала каждого подписчика.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[string]map[string]chan Event),
		buffer: buffer,
	}
}

// Subscribe регистрирует подписчика на пост. cancel отписывает и закрывает канал.
func (h *Hub) Subscribe(postID string) (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	subID := uuid.NewString()

	h.mu.Lock()
	if h.subs[postID] == nil {
		h.subs[postID] = make(map[string]chan Event)
	}
	h.subs[postID][subID] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if postSubs, ok := h.subs[postID]; ok {
				delete(postSubs, subID)
				if len(postSubs) == 0 {
					delete(h.subs, postID)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish раздаёт событие подписчикам поста. Не блокируется:
// если подписчик не успевает читать, событие для него пропускается.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[e.PostID] {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers возвращает число подписчиков поста.
func (h *Hub) Subscribers(postID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[postID])
}
