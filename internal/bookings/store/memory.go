package store

import (
	"context"
	"pediacenter/pkg/model"
	"sync"
)

// MemoryStore keeps the collection in process. Records are copied on the
// way in and out so callers never share pointers with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings []*model.Booking
}

func NewMemoryStore(seed ...*model.Booking) *MemoryStore {
	return &MemoryStore{bookings: prepare(model.CloneBookings(seed))}
}

func (s *MemoryStore) Load(ctx context.Context) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneBookings(s.bookings), nil
}

func (s *MemoryStore) Save(ctx context.Context, bookings []*model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = model.CloneBookings(bookings)
	return nil
}
