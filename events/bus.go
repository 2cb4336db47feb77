package events

import (
	"sync"
	"time"

	"restaurant-reservation/logger"
	reservationModel "restaurant-reservation/models/reservation"
)

// Event types published on the bus.
const (
	TypeReservationCreated = "reservation.created"
	TypeStatusChanged      = "reservation.status_changed"
)

// ReservationEvent is the domain event emitted by the reservation service.
// Notification dispatch subscribes to it, which keeps the "a failed send
// never blocks the mutation" rule structural: by the time a subscriber runs,
// the transaction has already committed.
type ReservationEvent struct {
	Type           string                        `json:"type"`
	Reservation    reservationModel.Reservation  `json:"reservation"`
	PreviousStatus reservationModel.Status       `json:"previous_status,omitempty"`
	Actor          string                        `json:"actor,omitempty"`
	OccurredAt     time.Time                     `json:"occurred_at"`
}

// Subscriber consumes reservation events. Handlers must tolerate concurrent
// invocation.
type Subscriber interface {
	Handle(event ReservationEvent)
}

// Bus is a minimal in-process fan-out. Publish never blocks the caller:
// every subscriber runs in its own goroutine.
type Bus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, s)
}

func (b *Bus) Publish(event ReservationEvent) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, s := range subs {
		go func(sub Subscriber) {
			defer func() {
				if r := recover(); r != nil {
					logger.Printf("event subscriber panicked on %s: %v", event.Type, r)
				}
			}()
			sub.Handle(event)
		}(s)
	}
}
