// Package slots projects provider day templates onto the search window and
// removes the slots active bookings already hold.
package slots

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "pediacenter/internal/bookings/errors"
	"pediacenter/internal/bookings/store"
	"pediacenter/internal/catalog"
	"pediacenter/pkg/clock"
	apperrors "pediacenter/pkg/errors"
	"pediacenter/pkg/lock"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/metrics"
	"pediacenter/pkg/model"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pediacenter/internal/slots")

type SlotFinder interface {
	FindAvailableSlots(ctx context.Context, req model.SlotSearchRequest) ([]model.Slot, error)
}

type Service struct {
	catalog catalog.Catalog
	store   store.Store
	locker  lock.Locker
	clock   clock.Clock
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewService(cat catalog.Catalog, st store.Store, locker lock.Locker, clk clock.Clock, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		catalog: cat,
		store:   st,
		locker:  locker,
		clock:   clk,
		log:     log,
		metrics: m,
	}
}

type slotKey struct {
	start    string
	provider string
}

// FindAvailableSlots returns the open (start, provider) pairs for req in
// day order, then catalog order, then template order. ChildAgeYears does not
// affect the result.
func (s *Service) FindAvailableSlots(ctx context.Context, req model.SlotSearchRequest) (slots []model.Slot, err error) {
	window := WindowFor(req.VisitType, req.Urgency)

	ctx, span := tracer.Start(ctx, "slots.FindAvailableSlots")
	span.SetAttributes(
		attribute.String("visit_type", req.VisitType),
		attribute.String("urgency", req.Urgency),
		attribute.Int("window_start", window.Start),
		attribute.Int("window_end", window.End),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("slots", len(slots)))
		}
		span.End()
	}()

	templates, err := s.catalog.RecurringSlotsFor(ctx, req.PreferredProvider)
	if err != nil {
		return nil, apperrors.Unavailable("Provider catalog", err)
	}

	now := s.clock.Now()
	loc := now.Location()

	booked, err := s.bookedSlots(ctx, loc)
	if err != nil {
		return nil, err
	}

	slots = make([]model.Slot, 0)
	unparsable := make(map[string]struct{})

	for _, day := range window.Days(now) {
		for _, tmpl := range templates {
			for _, ts := range tmpl.Schedule {
				if ts.VisitType != req.VisitType {
					continue
				}

				hour, minute, perr := model.ParseClockTime(ts.Start)
				if perr != nil {
					unparsable[tmpl.Name+" "+ts.Start] = struct{}{}
					continue
				}

				start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
				if !matchesTimeOfDay(start, req.PreferredTimes) {
					continue
				}

				key := slotKey{start: model.FormatSlotTime(start), provider: tmpl.Name}
				if _, taken := booked[key]; taken {
					continue
				}

				slots = append(slots, model.Slot{Start: key.start, Provider: key.provider})
			}
		}
	}

	for entry := range unparsable {
		s.log.Warn("Skipping template slot with unparsable start", "slot", entry)
	}

	s.metrics.ObserveSlotSearch(len(slots))
	s.log.Debug("Slot search completed",
		"visit_type", req.VisitType,
		"urgency", req.Urgency,
		"preferred_times", req.PreferredTimes,
		"preferred_provider", req.PreferredProvider,
		"results", len(slots),
	)
	return slots, nil
}

// bookedSlots reads the store under the lock and keys every active booking
// by its normalized start.
func (s *Service) bookedSlots(ctx context.Context, loc *time.Location) (map[slotKey]struct{}, error) {
	var bookings []*model.Booking
	err := lock.WithLock(ctx, s.locker, func(ctx context.Context) error {
		var lerr error
		bookings, lerr = s.store.Load(ctx)
		return lerr
	})
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, apperrors.Unavailable("Bookings store", fmt.Errorf("%w: %w", bookingserrors.ErrLockTimeout, err))
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", fmt.Errorf("%w: %w", bookingserrors.ErrStoreUnavailable, err))
	}

	booked := make(map[slotKey]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || b.SlotStart == "" || b.Provider == "" {
			continue
		}
		booked[slotKey{start: model.NormalizeSlotStart(b.SlotStart, loc), provider: b.Provider}] = struct{}{}
	}
	return booked, nil
}
