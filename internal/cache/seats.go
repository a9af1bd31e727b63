// Package cache provides the Redis-backed seat availability cache.
// Readers get a fast availability number without scanning reservation
// rows; writers push the freshly recomputed value after each commit.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	logrus "github.com/sirupsen/logrus"
)

const availableTTL = 5 * time.Minute

// Seats caches the available seat count per trip. A nil client
// disables caching; every method degrades to a no-op.
type Seats struct {
	rdb *redis.Client
}

// NewSeats wraps the given Redis client. rdb may be nil.
func NewSeats(rdb *redis.Client) *Seats {
	return &Seats{rdb: rdb}
}

func seatKey(tripID uint) string {
	return fmt.Sprintf("trip:%d:available_seats", tripID)
}

// GetAvailable returns the cached availability for a trip and whether
// the key was present.
func (s *Seats) GetAvailable(ctx context.Context, tripID uint) (int, bool) {
	if s == nil || s.rdb == nil {
		return 0, false
	}
	raw, err := s.rdb.Get(ctx, seatKey(tripID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetAvailable stores the availability for a trip with a TTL.
func (s *Seats) SetAvailable(ctx context.Context, tripID uint, available int) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, seatKey(tripID), available, availableTTL).Err(); err != nil {
		logrus.WithError(err).WithField("trip_id", tripID).Warn("seat cache set failed")
	}
}

// Invalidate drops the cached availability for a trip.
func (s *Seats) Invalidate(ctx context.Context, tripID uint) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, seatKey(tripID)).Err(); err != nil {
		logrus.WithError(err).WithField("trip_id", tripID).Warn("seat cache invalidate failed")
	}
}
