// Package queue defines message payloads exchanged over the broker and
// a publisher for them.
package queue

// ReservationConfirmedEvent is published after a seat reservation
// commits. It carries enough for downstream notifiers to message the
// rider without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  uint   `json:"reservation_id"`
	TripID         uint   `json:"trip_id"`
	SeatNumber     int    `json:"seat_number"`
	RiderKind      string `json:"rider_kind"` // "personnel" or "visitor"
	RiderID        uint   `json:"rider_id"`
	AvailableSeats int    `json:"available_seats"`
	ConfirmedAt    string `json:"confirmed_at"` // RFC3339 UTC
}

// TripCreatedEvent is published when a trip (or round-trip pair) is
// scheduled.
type TripCreatedEvent struct {
	TripID        uint   `json:"trip_id"`
	DestinationID uint   `json:"destination_id"`
	DepartureDate string `json:"departure_date"` // RFC3339 UTC
	Capacity      int    `json:"capacity"`
	ReturnTripID  uint   `json:"return_trip_id,omitempty"`
}
