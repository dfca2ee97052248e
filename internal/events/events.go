package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
	EventCommentAdded    = "comment_added"
)

// BookingEventPayload is the booking snapshot carried by lifecycle events.
type BookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Event is a lightweight in-process domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Handler reacts to a single event.
type Handler func(event *Event) error

// Bus is an in-process pub/sub fan-out. Handlers run synchronously on
// the publisher's goroutine; subscribers decide their own concurrency.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish delivers the event to every subscriber of its type. Handler
// errors do not stop delivery to the remaining handlers.
func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes it under eventType.
func (b *Bus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	b.Publish(&Event{Type: eventType, Payload: data})
	return nil
}
