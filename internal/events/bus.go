package events

import (
	"sync"
)

type subscriber struct {
	id      int
	handler Handler
}

// EventBus 进程内事件总线，发布是异步的，调度器不会被订阅者阻塞
type EventBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[EventType][]subscriber
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscriber),
	}
}

// Publish 发布事件，每个订阅者在独立的 goroutine 中处理
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, sub := range eb.handlers[event.Type] {
		go sub.handler(event)
	}
}

// Subscribe 订阅某类事件
func (eb *EventBus) Subscribe(eventType EventType, handler Handler) Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	eb.handlers[eventType] = append(eb.handlers[eventType], subscriber{
		id:      eb.nextID,
		handler: handler,
	})
	return Subscription{EventType: eventType, id: eb.nextID}
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(sub Subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	handlers := eb.handlers[sub.EventType]
	for i, s := range handlers {
		if s.id == sub.id {
			eb.handlers[sub.EventType] = append(handlers[:i], handlers[i+1:]...)
			break
		}
	}
}
