package services

import (
	"context"

	"staff_transit/internal/queue"
)

// SeatCache is the read-side cache for per-trip seat availability.
// Implementations must tolerate an unreachable backend; callers treat
// every operation as best-effort.
type SeatCache interface {
	GetAvailable(ctx context.Context, tripID uint) (int, bool)
	SetAvailable(ctx context.Context, tripID uint, available int)
	Invalidate(ctx context.Context, tripID uint)
}

// EventPublisher hands domain events to the message broker for the
// external notification service. Failures are logged by callers and
// never fail the request.
type EventPublisher interface {
	ReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
	TripCreated(ctx context.Context, ev queue.TripCreatedEvent) error
}
