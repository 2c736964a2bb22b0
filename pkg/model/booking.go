package model

import "strings"

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Booking is one appointment record. Records are never deleted, only
// moved from booked to cancelled.
type Booking struct {
	SlotStart      string `json:"slot_start" bson:"slot_start"`
	Provider       string `json:"provider" bson:"provider"`
	ChildName      string `json:"child_name" bson:"child_name"`
	Status         string `json:"status" bson:"status"`
	ConfirmationID string `json:"confirmation_id,omitempty" bson:"confirmation_id"`
}

func (b *Booking) IsActive() bool {
	return b.Status == StatusBooked
}

func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// EnsureConfirmationID fills in the id for records persisted without one.
func (b *Booking) EnsureConfirmationID() {
	if b.ConfirmationID == "" {
		b.ConfirmationID = ConfirmationIDFor(b.Provider, b.SlotStart)
	}
}

func ConfirmationIDFor(provider, slotStart string) string {
	return provider + "-" + slotStart
}

// SameConfirmationID compares ids ignoring case and surrounding whitespace.
func SameConfirmationID(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func CloneBookings(bookings []*Booking) []*Booking {
	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Clone())
	}
	return out
}
