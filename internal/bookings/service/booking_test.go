package service

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "pediacenter/internal/bookings/errors"
	"pediacenter/internal/bookings/events"
	"pediacenter/internal/bookings/store"
	"pediacenter/internal/bookings/validator"
	"pediacenter/pkg/clock"
	apperrors "pediacenter/pkg/errors"
	"pediacenter/pkg/lock"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────
// Test doubles
// ────────────────────────────────────────────────

// Monday 2025-06-02 10:00
var now = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type failingStore struct{ err error }

func (s failingStore) Load(context.Context) ([]*model.Booking, error) { return nil, s.err }
func (s failingStore) Save(context.Context, []*model.Booking) error   { return s.err }

type busyLocker struct{}

func (busyLocker) Acquire(ctx context.Context) (lock.Release, error) {
	return nil, fmt.Errorf("%w: %w", lock.ErrNotAcquired, context.DeadlineExceeded)
}

func newTestService(t *testing.T, seed ...*model.Booking) (BookingService, *store.MemoryStore, *recordingPublisher) {
	t.Helper()
	st := store.NewMemoryStore(seed...)
	pub := &recordingPublisher{}
	log := logger.Discard()
	svc := NewBookingService(st, lock.NewLocal(), pub, validator.NewBookingValidator(log), clock.Fixed{T: now}, log, nil)
	return svc, st, pub
}

func booked(slot, provider, child string) *model.Booking {
	return &model.Booking{SlotStart: slot, Provider: provider, ChildName: child, Status: model.StatusBooked}
}

func load(t *testing.T, st store.Store) []*model.Booking {
	t.Helper()
	bookings, err := st.Load(context.Background())
	require.NoError(t, err)
	return bookings
}

func requireAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	require.Equal(t, code, appErr.Code, "unexpected error: %v", err)
	return appErr
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_PersistsAndPublishes(t *testing.T) {
	svc, st, pub := newTestService(t)

	b, err := svc.Create(context.Background(), model.CreateBookingRequest{
		SlotStart: "2025-06-03T09:00:00",
		Provider:  " Dr. Smith ",
		ChildName: "Ana  Lee",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dr. Smith-2025-06-03T09:00", b.ConfirmationID)
	assert.Equal(t, "2025-06-03T09:00", b.SlotStart)
	assert.Equal(t, "Ana Lee", b.ChildName)
	assert.Equal(t, model.StatusBooked, b.Status)

	stored := load(t, st)
	require.Len(t, stored, 1)
	assert.Equal(t, b, stored[0])

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeBookingCreated, pub.events[0].Type)
	assert.Equal(t, now, pub.events[0].OccurredAt)
}

func TestCreate_AllowsDuplicateSlot(t *testing.T) {
	svc, st, _ := newTestService(t, booked("2025-06-03T09:00", "Dr. Smith", "Ana"))

	_, err := svc.Create(context.Background(), model.CreateBookingRequest{SlotStart: "2025-06-03T09:00", Provider: "Dr. Smith", ChildName: "Ben"})
	require.NoError(t, err)
	assert.Len(t, load(t, st), 2)
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc, st, pub := newTestService(t)

	_, err := svc.Create(context.Background(), model.CreateBookingRequest{SlotStart: "whenever", Provider: "Dr. Smith"})
	appErr := requireAppError(t, err, apperrors.CodeValidation)
	assert.Contains(t, appErr.Details, "slot_start")
	assert.Contains(t, appErr.Details, "child_name")
	assert.Empty(t, load(t, st))
	assert.Empty(t, pub.events)
}

func TestCreate_ConcurrentCallsAreSerialised(t *testing.T) {
	svc, st, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), model.CreateBookingRequest{
				SlotStart: fmt.Sprintf("2025-06-%02dT09:00", 3+i%10),
				Provider:  "Dr. Smith",
				ChildName: fmt.Sprintf("Child %d", i),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, load(t, st), 20, "no update may be lost")
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	svc, st, pub := newTestService(t)
	pub.err = errors.New("broker down")

	_, err := svc.Create(context.Background(), model.CreateBookingRequest{SlotStart: "2025-06-03T09:00", Provider: "Dr. Smith", ChildName: "Ana"})
	require.NoError(t, err)
	assert.Len(t, load(t, st), 1)
}

// ────────────────────────────────────────────────
// Cancel
// ────────────────────────────────────────────────

func TestCancel_ByConfirmationID(t *testing.T) {
	svc, st, pub := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana Lee"),
		booked("2025-06-04T09:00", "Dr. Smith", "Ana Lee"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ConfirmationID: "  dr. smith-2025-06-03t09:00 "})
	require.NoError(t, err)

	assert.Equal(t, model.CancelStatusCancelled, res.Status)
	assert.Equal(t, "Appointment for Ana Lee with Dr. Smith at 2025-06-03T09:00 has been cancelled.", res.Message)
	require.NotNil(t, res.Cancelled)
	assert.Equal(t, model.StatusCancelled, res.Cancelled.Status)
	assert.Empty(t, res.BookingsForChild, "no child named in the request")

	stored := load(t, st)
	assert.Equal(t, model.StatusCancelled, stored[0].Status)
	assert.Equal(t, model.StatusBooked, stored[1].Status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeBookingCancelled, pub.events[0].Type)
}

func TestCancel_CancelledRecordIsNotMatchedAgain(t *testing.T) {
	svc, _, _ := newTestService(t, booked("2025-06-03T09:00", "Dr. Smith", "Ana"))
	ctx := context.Background()

	first, err := svc.Cancel(ctx, model.CancelRequest{ConfirmationID: "Dr. Smith-2025-06-03T09:00"})
	require.NoError(t, err)
	require.Equal(t, model.CancelStatusCancelled, first.Status)

	second, err := svc.Cancel(ctx, model.CancelRequest{ConfirmationID: "Dr. Smith-2025-06-03T09:00"})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusNotFound, second.Status)
	assert.Equal(t, msgCancelNotFound, second.Message)
}

func TestCancel_UnknownIDFallsBackToCriteria(t *testing.T) {
	svc, _, _ := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana"),
		booked("2025-06-03T11:30", "Dr. Jones", "Ben"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ConfirmationID: "bogus", ChildName: "ben"})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusCancelled, res.Status)
	assert.Equal(t, "Ben", res.Cancelled.ChildName)
}

func TestCancel_DateOnlyIsAmbiguous(t *testing.T) {
	svc, st, pub := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana Lee"),
		booked("2025-06-03T14:00", "Dr. Smith", "Ana Lee"),
		booked("2025-06-04T09:00", "Dr. Smith", "Ana Lee"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ChildName: "ana", Provider: "Dr. Smith", SlotStart: "2025-06-03"})
	require.NoError(t, err)

	assert.Equal(t, model.CancelStatusAmbiguous, res.Status)
	assert.Equal(t, msgCancelAmbiguous, res.Message)
	assert.Len(t, res.Candidates, 2)
	assert.Len(t, res.BookingsForChild, 3)
	for _, b := range load(t, st) {
		assert.Equal(t, model.StatusBooked, b.Status, "ambiguous cancel must not mutate")
	}
	assert.Empty(t, pub.events)
}

func TestCancel_UnknownIDOnlyIsNotFound(t *testing.T) {
	svc, st, pub := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana"),
		booked("2025-06-04T10:00", "Dr. Jones", "Ben"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ConfirmationID: "Dr. Who-2025-06-03T09:00"})
	require.NoError(t, err)

	assert.Equal(t, model.CancelStatusNotFound, res.Status)
	assert.Equal(t, msgCancelNotFound, res.Message)
	assert.Nil(t, res.Cancelled)
	assert.Empty(t, res.Candidates)
	assert.Empty(t, res.BookingsForChild)
	for _, b := range load(t, st) {
		assert.Equal(t, model.StatusBooked, b.Status)
	}
	assert.Empty(t, pub.events)
}

func TestCancel_ChildNameOnlyIsAmbiguous(t *testing.T) {
	cancelled := booked("2025-06-05T09:00", "Dr. Smith", "Ana Lee")
	cancelled.Status = model.StatusCancelled
	svc, st, pub := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana Lee"),
		booked("2025-06-03T11:30", "Dr. Jones", "Ben"),
		booked("2025-06-04T10:00", "Dr. Jones", "Ana Lee"),
		cancelled,
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ChildName: "Ana Lee"})
	require.NoError(t, err)

	assert.Equal(t, model.CancelStatusAmbiguous, res.Status)
	assert.Equal(t, msgCancelAmbiguous, res.Message)
	assert.Nil(t, res.Cancelled)

	ids := make([]string, 0, len(res.Candidates))
	for _, c := range res.Candidates {
		ids = append(ids, c.ConfirmationID)
	}
	assert.Equal(t, []string{"Dr. Smith-2025-06-03T09:00", "Dr. Jones-2025-06-04T10:00"}, ids)

	for _, b := range load(t, st)[:3] {
		assert.Equal(t, model.StatusBooked, b.Status)
	}
	assert.Empty(t, pub.events)
}

func TestCancel_ExactTimeMatches(t *testing.T) {
	svc, _, _ := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana Lee"),
		booked("2025-06-03T14:00", "Dr. Smith", "Ana Lee"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ChildName: "Ana", SlotStart: "2025-06-03T14:00:00"})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusCancelled, res.Status)
	assert.Equal(t, "2025-06-03T14:00", res.Cancelled.SlotStart)
	assert.Len(t, res.BookingsForChild, 1, "cancelled booking is no longer upcoming")
}

func TestCancel_UnparsableSlotStartIsIgnored(t *testing.T) {
	svc, _, _ := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana"),
		booked("2025-06-04T09:00", "Dr. Smith", "Ben"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ChildName: "Ana", SlotStart: "tomorrow morning"})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusCancelled, res.Status)
}

func TestCancel_NoCriteriaMatchesNothing(t *testing.T) {
	svc, _, _ := newTestService(t, booked("2025-06-03T09:00", "Dr. Smith", "Ana"))

	res, err := svc.Cancel(context.Background(), model.CancelRequest{SlotStart: "not a date"})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusNotFound, res.Status)
	assert.NotNil(t, res.BookingsForChild)
	assert.Empty(t, res.BookingsForChild)
}

func TestCancel_NotFoundListsChildBookings(t *testing.T) {
	svc, _, _ := newTestService(t,
		booked("2025-06-03T09:00", "Dr. Smith", "Ana"),
		booked("2025-05-20T09:00", "Dr. Smith", "Ana"),
	)

	res, err := svc.Cancel(context.Background(), model.CancelRequest{ChildName: "Ana", Provider: "Dr. Jones"})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusNotFound, res.Status)
	require.Len(t, res.BookingsForChild, 1, "past bookings are not listed")
	assert.Equal(t, "2025-06-03T09:00", res.BookingsForChild[0].SlotStart)
}

// ────────────────────────────────────────────────
// Reschedule
// ────────────────────────────────────────────────

func TestReschedule_ByConfirmationID(t *testing.T) {
	svc, st, pub := newTestService(t, booked("2025-06-03T09:00", "Dr. Smith", "Ana"))

	res, err := svc.Reschedule(context.Background(), model.RescheduleRequest{
		OldConfirmationID: "Dr. Smith-2025-06-03T09:00",
		NewSlotStart:      "2025-06-05T14:00",
		NewProvider:       "Dr. Jones",
		ChildName:         "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, &model.RescheduleResult{
		Status:            model.RescheduleStatusRescheduled,
		OldConfirmationID: "Dr. Smith-2025-06-03T09:00",
		NewConfirmationID: "Dr. Jones-2025-06-05T14:00",
		NewSlotStart:      "2025-06-05T14:00",
		NewProvider:       "Dr. Jones",
		Message:           "Your appointment has been rescheduled. New time: 2025-06-05T14:00 with Dr. Jones.",
	}, res)

	stored := load(t, st)
	require.Len(t, stored, 2)
	assert.Equal(t, model.StatusCancelled, stored[0].Status)
	assert.Equal(t, model.StatusBooked, stored[1].Status)
	assert.Equal(t, "Dr. Jones-2025-06-05T14:00", stored[1].ConfirmationID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeBookingRescheduled, pub.events[0].Type)
	assert.Equal(t, "Dr. Smith-2025-06-03T09:00", pub.events[0].Previous.ConfirmationID)
}

func TestReschedule_PicksEarliestUpcomingForChild(t *testing.T) {
	svc, st, _ := newTestService(t,
		booked("2025-05-30T09:00", "Dr. Smith", "Ana"),
		booked("2025-06-06T09:00", "Dr. Smith", "Ana"),
		booked("2025-06-04T09:00", "Dr. Smith", "Ana"),
		booked("2025-06-03T09:00", "Dr. Jones", "Ana"),
	)

	res, err := svc.Reschedule(context.Background(), model.RescheduleRequest{
		NewSlotStart: "2025-06-09T09:00",
		NewProvider:  "Dr. Smith",
		ChildName:    "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RescheduleStatusRescheduled, res.Status)
	assert.Equal(t, "Dr. Smith-2025-06-04T09:00", res.OldConfirmationID)

	stored := load(t, st)
	assert.Equal(t, model.StatusBooked, stored[0].Status, "past bookings are never picked")
	assert.Equal(t, model.StatusBooked, stored[1].Status)
	assert.Equal(t, model.StatusCancelled, stored[2].Status)
	assert.Equal(t, model.StatusBooked, stored[3].Status, "other providers are never picked")
}

func TestReschedule_NothingToReschedule(t *testing.T) {
	svc, st, pub := newTestService(t, booked("2025-06-03T09:00", "Dr. Smith", "Ana"))

	res, err := svc.Reschedule(context.Background(), model.RescheduleRequest{
		OldConfirmationID: "Dr. Smith-2025-07-01T09:00",
		NewSlotStart:      "2025-06-09T09:00",
		NewProvider:       "Dr. Smith",
		ChildName:         "Ben",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RescheduleStatusNotRescheduled, res.Status)
	assert.Equal(t, msgNotRescheduled, res.Message)
	assert.Empty(t, res.NewConfirmationID)

	stored := load(t, st)
	require.Len(t, stored, 1)
	assert.Equal(t, model.StatusBooked, stored[0].Status)
	assert.Empty(t, pub.events)
}

// ────────────────────────────────────────────────
// List
// ────────────────────────────────────────────────

func TestList_UpcomingActiveForChild(t *testing.T) {
	cancelled := booked("2025-06-05T09:00", "Dr. Smith", "Ana Lee")
	cancelled.Status = model.StatusCancelled
	svc, _, _ := newTestService(t,
		booked("2025-06-04T09:00", "Dr. Smith", "Ana Lee"),
		booked("2025-06-01T09:00", "Dr. Smith", "Ana Lee"),
		cancelled,
		booked("someday", "Dr. Smith", "Ana Lee"),
		booked("2025-06-03T09:00", "Dr. Jones", "Ben"),
		booked("2025-06-02T10:00", "Dr. Jones", "Anabel"),
	)

	list, err := svc.List(context.Background(), " ANA ")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2025-06-04T09:00", list[0].SlotStart, "store order is kept")
	assert.Equal(t, "Anabel", list[1].ChildName, "a slot starting now is upcoming")
}

func TestList_Empty(t *testing.T) {
	svc, _, _ := newTestService(t)

	list, err := svc.List(context.Background(), "Ana")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

// ────────────────────────────────────────────────
// Infrastructure failures
// ────────────────────────────────────────────────

func TestStoreFailureIsInternal(t *testing.T) {
	log := logger.Discard()
	svc := NewBookingService(failingStore{err: errors.New("connection refused")}, lock.NewLocal(), nil, validator.NewBookingValidator(log), clock.Fixed{T: now}, log, nil)

	_, err := svc.List(context.Background(), "Ana")
	requireAppError(t, err, apperrors.CodeInternal)
	assert.True(t, errors.Is(err, bookingserrors.ErrStoreUnavailable))
}

func TestLockTimeoutIsUnavailable(t *testing.T) {
	log := logger.Discard()
	svc := NewBookingService(store.NewMemoryStore(), busyLocker{}, nil, validator.NewBookingValidator(log), clock.Fixed{T: now}, log, nil)

	_, err := svc.Create(context.Background(), model.CreateBookingRequest{SlotStart: "2025-06-03T09:00", Provider: "Dr. Smith", ChildName: "Ana"})
	appErr := requireAppError(t, err, apperrors.CodeUnavailable)
	assert.Equal(t, 503, appErr.StatusCode())
	assert.True(t, errors.Is(err, bookingserrors.ErrLockTimeout))
	assert.True(t, errors.Is(err, lock.ErrNotAcquired))
}
