package validator

import (
	"errors"
	"pediacenter/pkg/logger"
	"pediacenter/pkg/model"
	"strings"
	"testing"
)

func intPtr(i int) *int { return &i }

func TestValidateCreate(t *testing.T) {
	validator := NewBookingValidator(logger.Discard())

	tests := []struct {
		name      string
		req       *model.CreateBookingRequest
		wantError bool
		wantField string
	}{
		{
			name:      "valid request",
			req:       &model.CreateBookingRequest{SlotStart: "2025-06-03T09:00", Provider: "Dr. Smith", ChildName: "Ana Lee"},
			wantError: false,
		},
		{
			name:      "seconds precision accepted",
			req:       &model.CreateBookingRequest{SlotStart: "2025-06-03T09:00:00", Provider: "Dr. Smith", ChildName: "Ana Lee"},
			wantError: false,
		},
		{
			name:      "missing slot start",
			req:       &model.CreateBookingRequest{Provider: "Dr. Smith", ChildName: "Ana Lee"},
			wantError: true,
			wantField: "slot_start",
		},
		{
			name:      "unparsable slot start",
			req:       &model.CreateBookingRequest{SlotStart: "next tuesday", Provider: "Dr. Smith", ChildName: "Ana Lee"},
			wantError: true,
			wantField: "slot_start",
		},
		{
			name:      "blank child name",
			req:       &model.CreateBookingRequest{SlotStart: "2025-06-03T09:00", Provider: "Dr. Smith", ChildName: "   "},
			wantError: true,
			wantField: "child_name",
		},
		{
			name:      "provider too long",
			req:       &model.CreateBookingRequest{SlotStart: "2025-06-03T09:00", Provider: strings.Repeat("x", 101), ChildName: "Ana"},
			wantError: true,
			wantField: "provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateCreate(tt.req)
			if (err != nil) != tt.wantError {
				t.Fatalf("ValidateCreate() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError {
				return
			}
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, verrs.Details())
			}
		})
	}
}

func TestValidateCancel_AllOptional(t *testing.T) {
	validator := NewBookingValidator(logger.Discard())

	if err := validator.ValidateCancel(&model.CancelRequest{}); err != nil {
		t.Errorf("empty cancel request should validate, got %v", err)
	}
	// an unparsable slot start is ignored as a filter, not rejected
	if err := validator.ValidateCancel(&model.CancelRequest{SlotStart: "soon"}); err != nil {
		t.Errorf("free form slot start should validate, got %v", err)
	}
}

func TestValidateReschedule(t *testing.T) {
	validator := NewBookingValidator(logger.Discard())

	err := validator.ValidateReschedule(&model.RescheduleRequest{NewSlotStart: "2025-06-05T14:00", NewProvider: "Dr. Jones"})
	if err == nil {
		t.Fatal("expected child_name to be required")
	}
	if !strings.Contains(err.Error(), "child_name is required") {
		t.Errorf("unexpected message: %v", err)
	}

	err = validator.ValidateReschedule(&model.RescheduleRequest{
		OldConfirmationID: "Dr. Smith-2025-06-03T09:00",
		NewSlotStart:      "2025-06-05T14:00",
		NewProvider:       "Dr. Jones",
		ChildName:         "Ana",
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSearch(t *testing.T) {
	validator := NewBookingValidator(logger.Discard())

	if err := validator.ValidateSearch(&model.SlotSearchRequest{VisitType: model.VisitTypeSick, ChildAgeYears: intPtr(4)}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validator.ValidateSearch(&model.SlotSearchRequest{}); err == nil {
		t.Error("expected visit_type to be required")
	}
	if err := validator.ValidateSearch(&model.SlotSearchRequest{VisitType: model.VisitTypeSick, ChildAgeYears: intPtr(-1)}); err == nil {
		t.Error("expected negative age to fail")
	}
}
