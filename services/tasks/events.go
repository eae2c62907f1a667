package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names for the lifecycle event queue.
const (
	TypeBookingEvent = "booking:event"
	TypeOrderEvent   = "order:event"
)

// Lifecycle event names. Published after a successful creation or status
// transition, never before the write commits.
const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingEnroute   = "booking_enroute"
	EventBookingStarted   = "booking_started"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"

	EventOrderCreated   = "order_created"
	EventOrderStatus    = "order_status_changed"
	EventOrderShipped   = "order_shipped"
	EventOrderDelivered = "order_delivered"
	EventOrderCancelled = "order_cancelled"
)

// EarningAmounts carries the commission split of a completed booking so the
// worker can write the provider's ledger entry without re-reading the
// booking.
type EarningAmounts struct {
	ProviderID string  `json:"provider_id"`
	Gross      float64 `json:"gross"`
	Commission float64 `json:"commission"`
	Net        float64 `json:"net"`
}

// LifecycleEvent is the payload of both booking and order event tasks.
type LifecycleEvent struct {
	Entity     string          `json:"entity"` // "booking" or "order"
	Event      string          `json:"event"`
	EntityID   string          `json:"entity_id"`
	Code       string          `json:"code"`
	ActorID    string          `json:"actor_id"`
	CustomerID string          `json:"customer_id"`
	PartyIDs   []string        `json:"party_ids,omitempty"` // providers/sellers to notify
	Amounts    *EarningAmounts `json:"amounts,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewBookingEventTask wraps a booking lifecycle event as an asynq task.
func NewBookingEventTask(ev LifecycleEvent) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingEvent, b), nil
}

// NewOrderEventTask wraps an order lifecycle event as an asynq task.
func NewOrderEventTask(ev LifecycleEvent) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOrderEvent, b), nil
}
