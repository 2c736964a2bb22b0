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
	"pediacenter/pkg/metrics"
	"pediacenter/pkg/model"
	"pediacenter/pkg/sanitizer"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("pediacenter/internal/bookings/service")

const (
	opCreate     = "create"
	opCancel     = "cancel"
	opReschedule = "reschedule"
	opList       = "list"

	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

const (
	msgCancelNotFound  = "I couldn't find an appointment that matches those details to cancel."
	msgCancelAmbiguous = "I found multiple matching appointments. Please tell me which one to cancel."
	msgNotRescheduled  = "Could not find an existing appointment to reschedule. Please provide the confirmation ID or more details."
)

type BookingService interface {
	Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, req model.CancelRequest) (*model.CancelResult, error)
	Reschedule(ctx context.Context, req model.RescheduleRequest) (*model.RescheduleResult, error)
	List(ctx context.Context, childName string) ([]*model.Booking, error)
}

type bookingService struct {
	store     store.Store
	locker    lock.Locker
	publisher events.Publisher
	validator *validator.BookingValidator
	clock     clock.Clock
	log       *logger.Logger
	metrics   *metrics.Metrics
}

func NewBookingService(
	st store.Store,
	locker lock.Locker,
	publisher events.Publisher,
	validator *validator.BookingValidator,
	clk clock.Clock,
	log *logger.Logger,
	m *metrics.Metrics,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		store:     st,
		locker:    locker,
		publisher: publisher,
		validator: validator,
		clock:     clk,
		log:       log,
		metrics:   m,
	}
}

// Create appends a booked record. Duplicate (slot_start, provider) pairs are
// accepted; callers are expected to pick a slot from a fresh search.
func (s *bookingService) Create(ctx context.Context, req model.CreateBookingRequest) (booking *model.Booking, err error) {
	ctx, span := tracer.Start(ctx, "bookings.Create")
	defer func() { endSpan(span, err) }()

	sanitizer.SanitizeCreateRequest(&req)
	if err := s.validate(s.validator.ValidateCreate(&req)); err != nil {
		s.metrics.ObserveLifecycle(opCreate, outcomeInvalid)
		return nil, err
	}

	loc := s.clock.Now().Location()
	booking = newBooking(req.SlotStart, req.Provider, req.ChildName, loc)
	span.SetAttributes(attribute.String("confirmation_id", booking.ConfirmationID))

	var duplicate bool
	err = s.update(ctx, func(bookings []*model.Booking) ([]*model.Booking, bool) {
		duplicate = holdsSlot(bookings, booking, loc)
		return append(bookings, booking.Clone()), true
	})
	if err != nil {
		s.metrics.ObserveLifecycle(opCreate, outcomeError)
		logger.FromContext(ctx, s.log).Error("Failed to create booking", "error", err)
		return nil, err
	}

	log := logger.FromContext(ctx, s.log)
	if duplicate {
		log.Warn("Slot already held by an active booking",
			"slot_start", booking.SlotStart,
			"provider", booking.Provider,
		)
	}
	log.Info("Booking created successfully",
		"confirmation_id", booking.ConfirmationID,
		"provider", booking.Provider,
		"slot_start", booking.SlotStart,
	)

	s.metrics.ObserveLifecycle(opCreate, model.StatusBooked)
	s.publish(ctx, events.Event{Type: events.TypeBookingCreated, Booking: booking})
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, req model.CancelRequest) (result *model.CancelResult, err error) {
	ctx, span := tracer.Start(ctx, "bookings.Cancel")
	defer func() {
		if result != nil {
			span.SetAttributes(attribute.String("status", result.Status))
		}
		endSpan(span, err)
	}()

	sanitizer.SanitizeCancelRequest(&req)
	if err := s.validate(s.validator.ValidateCancel(&req)); err != nil {
		s.metrics.ObserveLifecycle(opCancel, outcomeInvalid)
		return nil, err
	}

	now := s.clock.Now()
	err = s.update(ctx, func(bookings []*model.Booking) ([]*model.Booking, bool) {
		candidates := cancelCandidates(bookings, req, now.Location())

		switch len(candidates) {
		case 0:
			result = &model.CancelResult{
				Status:           model.CancelStatusNotFound,
				Message:          msgCancelNotFound,
				BookingsForChild: bookingsForChild(bookings, req.ChildName, now),
			}
			return bookings, false
		case 1:
			target := candidates[0]
			target.Status = model.StatusCancelled
			result = &model.CancelResult{
				Status:           model.CancelStatusCancelled,
				Message:          fmt.Sprintf("Appointment for %s with %s at %s has been cancelled.", target.ChildName, target.Provider, target.SlotStart),
				Cancelled:        target.Clone(),
				BookingsForChild: bookingsForChild(bookings, req.ChildName, now),
			}
			return bookings, true
		default:
			result = &model.CancelResult{
				Status:           model.CancelStatusAmbiguous,
				Message:          msgCancelAmbiguous,
				Candidates:       model.CloneBookings(candidates),
				BookingsForChild: bookingsForChild(bookings, req.ChildName, now),
			}
			return bookings, false
		}
	})
	if err != nil {
		s.metrics.ObserveLifecycle(opCancel, outcomeError)
		logger.FromContext(ctx, s.log).Error("Failed to cancel booking", "error", err)
		return nil, err
	}

	s.metrics.ObserveLifecycle(opCancel, result.Status)
	logger.FromContext(ctx, s.log).Info("Cancel request resolved",
		"status", result.Status,
		"candidates", len(result.Candidates),
	)

	if result.Cancelled != nil {
		s.publish(ctx, events.Event{Type: events.TypeBookingCancelled, Booking: result.Cancelled})
	}
	return result, nil
}

// Reschedule cancels the resolved booking and creates the replacement in the
// same critical section and the same save.
func (s *bookingService) Reschedule(ctx context.Context, req model.RescheduleRequest) (result *model.RescheduleResult, err error) {
	ctx, span := tracer.Start(ctx, "bookings.Reschedule")
	defer func() {
		if result != nil {
			span.SetAttributes(attribute.String("status", result.Status))
		}
		endSpan(span, err)
	}()

	sanitizer.SanitizeRescheduleRequest(&req)
	if err := s.validate(s.validator.ValidateReschedule(&req)); err != nil {
		s.metrics.ObserveLifecycle(opReschedule, outcomeInvalid)
		return nil, err
	}

	now := s.clock.Now()
	var previous, created *model.Booking
	err = s.update(ctx, func(bookings []*model.Booking) ([]*model.Booking, bool) {
		old := rescheduleTarget(bookings, req, now)
		if old == nil {
			result = &model.RescheduleResult{
				Status:  model.RescheduleStatusNotRescheduled,
				Message: msgNotRescheduled,
			}
			return bookings, false
		}

		old.Status = model.StatusCancelled
		previous = old.Clone()
		created = newBooking(req.NewSlotStart, req.NewProvider, req.ChildName, now.Location())

		result = &model.RescheduleResult{
			Status:            model.RescheduleStatusRescheduled,
			OldConfirmationID: old.ConfirmationID,
			NewConfirmationID: created.ConfirmationID,
			NewSlotStart:      created.SlotStart,
			NewProvider:       created.Provider,
			Message:           fmt.Sprintf("Your appointment has been rescheduled. New time: %s with %s.", created.SlotStart, created.Provider),
		}
		return append(bookings, created.Clone()), true
	})
	if err != nil {
		s.metrics.ObserveLifecycle(opReschedule, outcomeError)
		logger.FromContext(ctx, s.log).Error("Failed to reschedule booking", "error", err)
		return nil, err
	}

	s.metrics.ObserveLifecycle(opReschedule, result.Status)
	if created == nil {
		logger.FromContext(ctx, s.log).Info("No booking to reschedule", "child_name", req.ChildName)
		return result, nil
	}

	logger.FromContext(ctx, s.log).Info("Booking rescheduled successfully",
		"old_confirmation_id", result.OldConfirmationID,
		"new_confirmation_id", result.NewConfirmationID,
	)
	s.publish(ctx, events.Event{Type: events.TypeBookingRescheduled, Booking: created, Previous: previous})
	return result, nil
}

// List returns the active upcoming bookings whose child name contains
// childName, in store order. An empty name matches every child.
func (s *bookingService) List(ctx context.Context, childName string) (bookings []*model.Booking, err error) {
	ctx, span := tracer.Start(ctx, "bookings.List")
	defer func() { endSpan(span, err) }()

	childName = sanitizer.NormalizeName(childName)
	now := s.clock.Now()

	err = s.update(ctx, func(all []*model.Booking) ([]*model.Booking, bool) {
		bookings = upcomingFor(all, childName, now)
		return all, false
	})
	if err != nil {
		s.metrics.ObserveLifecycle(opList, outcomeError)
		return nil, err
	}

	s.metrics.ObserveLifecycle(opList, "ok")
	logger.FromContext(ctx, s.log).Debug("Bookings listed",
		"child_name", childName,
		"count", len(bookings),
	)
	return bookings, nil
}

// --- Helpers ---

// update loads the collection under the lock, applies fn and saves the
// result when fn reports a change.
func (s *bookingService) update(ctx context.Context, fn func(bookings []*model.Booking) ([]*model.Booking, bool)) error {
	err := lock.WithLock(ctx, s.locker, func(ctx context.Context) error {
		bookings, err := s.store.Load(ctx)
		if err != nil {
			return fmt.Errorf("%w: load: %w", bookingserrors.ErrStoreUnavailable, err)
		}

		updated, changed := fn(bookings)
		if !changed {
			return nil
		}

		if err := s.store.Save(ctx, updated); err != nil {
			return fmt.Errorf("%w: save: %w", bookingserrors.ErrStoreUnavailable, err)
		}
		return nil
	})
	return translateError(err)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, lock.ErrNotAcquired):
		return apperrors.Unavailable("Bookings store", fmt.Errorf("%w: %w", bookingserrors.ErrLockTimeout, err))
	case errors.Is(err, bookingserrors.ErrStoreUnavailable):
		return apperrors.Internal("Failed to access bookings store", err)
	default:
		return apperrors.Internal("Booking operation failed", err)
	}
}

func (s *bookingService) validate(err error) error {
	if err == nil {
		return nil
	}
	s.log.Warn("Booking request validation failed", "error", err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Booking validation failed", verrs.Details())
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

// publish never fails the operation; the booking is already persisted.
func (s *bookingService) publish(ctx context.Context, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.clock.Now()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx, s.log).Error("Failed to publish booking event",
			"event_type", event.Type,
			"confirmation_id", event.Booking.ConfirmationID,
			"error", err,
		)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func newBooking(slotStart, provider, childName string, loc *time.Location) *model.Booking {
	b := &model.Booking{
		SlotStart: model.NormalizeSlotStart(slotStart, loc),
		Provider:  provider,
		ChildName: childName,
		Status:    model.StatusBooked,
	}
	b.EnsureConfirmationID()
	return b
}

func holdsSlot(bookings []*model.Booking, booking *model.Booking, loc *time.Location) bool {
	for _, b := range bookings {
		if b.IsActive() && b.Provider == booking.Provider && model.NormalizeSlotStart(b.SlotStart, loc) == booking.SlotStart {
			return true
		}
	}
	return false
}
