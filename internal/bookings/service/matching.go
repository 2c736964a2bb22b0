package service

import (
	"pediacenter/pkg/model"
	"pediacenter/pkg/sanitizer"
	"time"
)

// cancelFilter holds the criteria a cancel request narrows active bookings by.
type cancelFilter struct {
	child    string
	provider string
	at       time.Time
	hasTime  bool
	dateOnly bool
}

func newCancelFilter(req model.CancelRequest, loc *time.Location) cancelFilter {
	f := cancelFilter{child: req.ChildName, provider: req.Provider}
	if req.SlotStart == "" {
		return f
	}
	// an unparsable start is dropped as a filter
	t, err := model.ParseSlotTime(req.SlotStart, loc)
	if err != nil {
		return f
	}
	f.at = t
	f.hasTime = true
	f.dateOnly = !model.HasTimeOfDay(t)
	return f
}

func (f cancelFilter) empty() bool {
	return f.child == "" && f.provider == "" && !f.hasTime
}

func (f cancelFilter) matches(b *model.Booking, loc *time.Location) bool {
	if f.child != "" && !sanitizer.ContainsFold(b.ChildName, f.child) {
		return false
	}
	if f.provider != "" && f.provider != b.Provider {
		return false
	}
	if !f.hasTime {
		return true
	}

	start, err := model.ParseSlotTime(b.SlotStart, loc)
	if err != nil {
		return false
	}
	if f.dateOnly {
		return model.SameDate(start, f.at)
	}
	return start.Equal(f.at)
}

// cancelCandidates resolves a cancel request to the active records it may
// refer to. A confirmation id match wins outright; an unknown id falls back to
// the remaining criteria, and no criteria at all matches nothing.
func cancelCandidates(bookings []*model.Booking, req model.CancelRequest, loc *time.Location) []*model.Booking {
	if req.ConfirmationID != "" {
		if b := activeByConfirmationID(bookings, req.ConfirmationID); b != nil {
			return []*model.Booking{b}
		}
	}

	filter := newCancelFilter(req, loc)
	if filter.empty() {
		return nil
	}

	var candidates []*model.Booking
	for _, b := range bookings {
		if b.IsActive() && filter.matches(b, loc) {
			candidates = append(candidates, b)
		}
	}
	return candidates
}

// rescheduleTarget picks the booking a reschedule replaces: the active record
// with the given confirmation id, else the child's earliest upcoming booking
// with the new provider.
func rescheduleTarget(bookings []*model.Booking, req model.RescheduleRequest, now time.Time) *model.Booking {
	if req.OldConfirmationID != "" {
		if b := activeByConfirmationID(bookings, req.OldConfirmationID); b != nil {
			return b
		}
	}
	if req.ChildName == "" {
		return nil
	}

	var (
		target   *model.Booking
		earliest time.Time
	)
	for _, b := range bookings {
		if !b.IsActive() || !sanitizer.ContainsFold(b.ChildName, req.ChildName) {
			continue
		}
		if req.NewProvider != "" && b.Provider != req.NewProvider {
			continue
		}
		start, ok := upcomingStart(b, now)
		if !ok {
			continue
		}
		if target == nil || start.Before(earliest) {
			target, earliest = b, start
		}
	}
	return target
}

// upcomingFor returns copies of the active bookings for childName that start
// at or after now. Records with unparsable starts are left out.
func upcomingFor(bookings []*model.Booking, childName string, now time.Time) []*model.Booking {
	out := make([]*model.Booking, 0)
	for _, b := range bookings {
		if !b.IsActive() || !sanitizer.ContainsFold(b.ChildName, childName) {
			continue
		}
		if _, ok := upcomingStart(b, now); ok {
			out = append(out, b.Clone())
		}
	}
	return out
}

// bookingsForChild is the upcoming list attached to cancel results. It stays
// empty when the request named no child.
func bookingsForChild(bookings []*model.Booking, childName string, now time.Time) []*model.Booking {
	if childName == "" {
		return make([]*model.Booking, 0)
	}
	return upcomingFor(bookings, childName, now)
}

func upcomingStart(b *model.Booking, now time.Time) (time.Time, bool) {
	start, err := model.ParseSlotTime(b.SlotStart, now.Location())
	if err != nil || start.Before(now) {
		return time.Time{}, false
	}
	return start, true
}

func activeByConfirmationID(bookings []*model.Booking, id string) *model.Booking {
	for _, b := range bookings {
		if b.IsActive() && model.SameConfirmationID(b.ConfirmationID, id) {
			return b
		}
	}
	return nil
}
