// Package store persists the ordered list of booking records. Every backend
// loads and saves the whole collection; callers serialise access with a
// lock.Locker.
package store

import (
	"context"
	"errors"
	"pediacenter/pkg/model"
)

var (
	ErrBuildQuery = errors.New("failed to build query")
	ErrExecQuery  = errors.New("failed to execute query")
	ErrScanRow    = errors.New("failed to scan row")
)

type Store interface {
	// Load returns every record in insertion order. A missing or corrupt
	// collection yields an empty slice, not an error.
	Load(ctx context.Context) ([]*model.Booking, error)

	// Save replaces the whole collection with bookings, keeping their order.
	Save(ctx context.Context, bookings []*model.Booking) error
}

// prepare fills derived fields on records read from a backend.
func prepare(bookings []*model.Booking) []*model.Booking {
	out := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		b.EnsureConfirmationID()
		out = append(out, b)
	}
	return out
}
