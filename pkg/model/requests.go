package model

const (
	CancelStatusCancelled = "cancelled"
	CancelStatusNotFound  = "not_found"
	CancelStatusAmbiguous = "ambiguous"

	RescheduleStatusRescheduled    = "rescheduled"
	RescheduleStatusNotRescheduled = "not_rescheduled"
)

type CreateBookingRequest struct {
	SlotStart string `json:"slot_start" validate:"required,slot_time"`
	Provider  string `json:"provider" validate:"required,notblank,max=100"`
	ChildName string `json:"child_name" validate:"required,notblank,max=100"`
}

// CancelRequest identifies the booking to cancel. Every field is optional;
// the lifecycle service decides which criteria apply.
type CancelRequest struct {
	ConfirmationID string `json:"confirmation_id,omitempty" validate:"omitempty,max=200"`
	ChildName      string `json:"child_name,omitempty" validate:"omitempty,max=100"`
	SlotStart      string `json:"slot_start,omitempty" validate:"omitempty,max=50"`
	Provider       string `json:"provider,omitempty" validate:"omitempty,max=100"`
}

type CancelResult struct {
	Status           string     `json:"status"`
	Message          string     `json:"message"`
	Cancelled        *Booking   `json:"cancelled,omitempty"`
	Candidates       []*Booking `json:"candidates,omitempty"`
	BookingsForChild []*Booking `json:"bookings_for_child"`
}

type RescheduleRequest struct {
	OldConfirmationID string `json:"old_confirmation_id,omitempty" validate:"omitempty,max=200"`
	NewSlotStart      string `json:"new_slot_start" validate:"required,slot_time"`
	NewProvider       string `json:"new_provider" validate:"required,notblank,max=100"`
	ChildName         string `json:"child_name" validate:"required,notblank,max=100"`
}

type RescheduleResult struct {
	Status            string `json:"status"`
	OldConfirmationID string `json:"old_confirmation_id,omitempty"`
	NewConfirmationID string `json:"new_confirmation_id,omitempty"`
	NewSlotStart      string `json:"new_slot_start,omitempty"`
	NewProvider       string `json:"new_provider,omitempty"`
	Message           string `json:"message"`
}
