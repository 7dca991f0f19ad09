package network

import (
	"async4x-server/internal/domain"
	"async4x-server/pkg/api"
	"async4x-server/pkg/logger"
	"sort"
	"sync"
)

// Subscription - одно подключение наблюдателя к партии
type subscription struct {
	gameID string
	viewer domain.PlayerID
	ch     chan api.ServerResponse
}

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подключения -> подписка
	subscribers map[string]*subscription
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]*subscription),
	}
}

// Register создает личный канал для подключения
func (b *Broadcaster) Register(id, gameID string, viewer domain.PlayerID) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old.ch)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[id] = &subscription{gameID: gameID, viewer: viewer, ch: ch}
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		close(sub.ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение конкретному подключению (Unicast)
func (b *Broadcaster) SendTo(id string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if sub, ok := b.subscribers[id]; ok {
		b.deliver(id, sub, msg)
	}
}

// Publish рассылает каждому подписчику партии его личный снимок.
// build вызывается по одному разу на наблюдателя.
func (b *Broadcaster) Publish(gameID string, build func(viewer domain.PlayerID) api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cache := make(map[domain.PlayerID]api.ServerResponse)
	for id, sub := range b.subscribers {
		if sub.gameID != gameID {
			continue
		}
		msg, ok := cache[sub.viewer]
		if !ok {
			msg = build(sub.viewer)
			cache[sub.viewer] = msg
		}
		b.deliver(id, sub, msg)
	}
}

func (b *Broadcaster) deliver(id string, sub *subscription, msg api.ServerResponse) {
	select {
	case sub.ch <- msg:
	default:
		logger.Log.WithField("subscriber", id).Warn("Hub: channel full, update dropped")
	}
}

// Viewers - наблюдатели партии, у которых есть подключение
func (b *Broadcaster) Viewers(gameID string) []domain.PlayerID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	seen := make(map[domain.PlayerID]struct{})
	for _, sub := range b.subscribers {
		if sub.gameID == gameID {
			seen[sub.viewer] = struct{}{}
		}
	}
	out := make([]domain.PlayerID, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasSubscriber проверяет, есть ли такое подключение
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
