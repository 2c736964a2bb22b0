package model

const (
	UrgencyUrgent  = "urgent"
	UrgencyRoutine = "routine"

	TimeOfDayMorning   = "morning"
	TimeOfDayAfternoon = "afternoon"
	TimeOfDayAny       = "any"
)

type Slot struct {
	Start    string `json:"start"`
	Provider string `json:"provider"`
}

type SlotSearchRequest struct {
	ChildAgeYears     *int   `json:"child_age_years,omitempty" validate:"omitempty,min=0,max=21"`
	VisitType         string `json:"visit_type" validate:"required,max=50"`
	PreferredTimes    string `json:"preferred_times,omitempty" validate:"omitempty,max=50"`
	PreferredProvider string `json:"preferred_provider,omitempty" validate:"omitempty,max=100"`
	Urgency           string `json:"urgency,omitempty" validate:"omitempty,max=50"`
}
