package model

import "time"

// BookingLock is the advisory lock document guarding the bookings
// load-mutate-save cycle. Documents expire through a TTL index on ExpiresAt.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
