package cli

import (
	"context"
	"net/url"
	"pediacenter/internal/bookings/handler"
	"pediacenter/internal/bookings/validator"
	"pediacenter/internal/bootstrap"
	"pediacenter/pkg/client"
	apperrors "pediacenter/pkg/errors"
	"pediacenter/pkg/model"
	"pediacenter/pkg/sanitizer"
)

// Backend runs scheduling operations either in-process against the
// configured store or against a remote scheduler.
type Backend interface {
	SearchSlots(ctx context.Context, req model.SlotSearchRequest) ([]model.Slot, error)
	Book(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, req model.CancelRequest) (*model.CancelResult, error)
	Reschedule(ctx context.Context, req model.RescheduleRequest) (*model.RescheduleResult, error)
	List(ctx context.Context, childName string) ([]*model.Booking, error)
}

type localBackend struct {
	services *bootstrap.Services
}

func NewLocalBackend(s *bootstrap.Services) Backend {
	return &localBackend{services: s}
}

func (b *localBackend) SearchSlots(ctx context.Context, req model.SlotSearchRequest) ([]model.Slot, error) {
	sanitizer.SanitizeSearchRequest(&req)
	if err := b.services.Validator.ValidateSearch(&req); err != nil {
		details := map[string]any{"error": err.Error()}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			details = verrs.Details()
		}
		return nil, apperrors.Validation("Request validation failed", details)
	}
	return b.services.Slots.FindAvailableSlots(ctx, req)
}

func (b *localBackend) Book(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	return b.services.Bookings.Create(ctx, req)
}

func (b *localBackend) Cancel(ctx context.Context, req model.CancelRequest) (*model.CancelResult, error) {
	return b.services.Bookings.Cancel(ctx, req)
}

func (b *localBackend) Reschedule(ctx context.Context, req model.RescheduleRequest) (*model.RescheduleResult, error) {
	return b.services.Bookings.Reschedule(ctx, req)
}

func (b *localBackend) List(ctx context.Context, childName string) ([]*model.Booking, error) {
	return b.services.Bookings.List(ctx, childName)
}

type remoteBackend struct {
	client *client.HttpClient
}

func NewRemoteBackend(c *client.HttpClient) Backend {
	return &remoteBackend{client: c}
}

func (b *remoteBackend) SearchSlots(ctx context.Context, req model.SlotSearchRequest) ([]model.Slot, error) {
	var out handler.SlotsResponse
	if err := b.post(ctx, "/api/v1/slots/search", req, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

func (b *remoteBackend) Book(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	var out model.Booking
	if err := b.post(ctx, "/api/v1/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *remoteBackend) Cancel(ctx context.Context, req model.CancelRequest) (*model.CancelResult, error) {
	var out model.CancelResult
	if err := b.post(ctx, "/api/v1/bookings/cancel", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *remoteBackend) Reschedule(ctx context.Context, req model.RescheduleRequest) (*model.RescheduleResult, error) {
	var out model.RescheduleResult
	if err := b.post(ctx, "/api/v1/bookings/reschedule", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *remoteBackend) List(ctx context.Context, childName string) ([]*model.Booking, error) {
	resp, err := b.client.GET(ctx, "/api/v1/bookings", url.Values{"child_name": {childName}})
	if err != nil {
		return nil, err
	}
	var out handler.BookingsResponse
	if err := resp.DecodeData(&out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (b *remoteBackend) post(ctx context.Context, path string, body, target any) error {
	resp, err := b.client.POST(ctx, path, body)
	if err != nil {
		return err
	}
	return resp.DecodeData(target)
}
