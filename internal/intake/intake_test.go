package intake

import (
	"pediacenter/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Details
	}{
		{
			name:    "urgent sick visit",
			message: "My 3 year old has a high fever and a cough, can we come in this morning?",
			want: Details{
				ChildAgeYears:  3,
				VisitType:      model.VisitTypeSick,
				Symptoms:       "cough, fever",
				PreferredTimes: model.TimeOfDayMorning,
				Urgency:        model.UrgencyUrgent,
			},
		},
		{
			name:    "well child check up with a doctor",
			message: "Annual check-up for my 7yo after school with Dr. Jones please",
			want: Details{
				ChildAgeYears:     7,
				VisitType:         model.VisitTypeWellChild,
				PreferredTimes:    model.TimeOfDayAfternoon,
				PreferredProvider: "Dr. Jones",
				Urgency:           model.UrgencyRoutine,
			},
		},
		{
			name:    "defaults",
			message: "Can I book an appointment?",
			want: Details{
				ChildAgeYears:  DefaultAgeYears,
				VisitType:      model.VisitTypeWellChild,
				PreferredTimes: model.TimeOfDayAny,
				Urgency:        model.UrgencyRoutine,
			},
		},
		{
			name:    "first listed doctor wins",
			message: "Smith or Bustamante, whoever is free. She has been vomiting.",
			want: Details{
				ChildAgeYears:     DefaultAgeYears,
				VisitType:         model.VisitTypeSick,
				Symptoms:          "vomit, vomiting",
				PreferredTimes:    model.TimeOfDayAny,
				PreferredProvider: "Dr. Bustamante",
				Urgency:           model.UrgencyRoutine,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.RawMessage = tt.message
			tt.want.Language = Language
			assert.Equal(t, tt.want, Extract(tt.message))
		})
	}
}

func TestDetails_SearchRequest(t *testing.T) {
	req := Extract("2 years old, rash, afternoon").SearchRequest()

	if assert.NotNil(t, req.ChildAgeYears) {
		assert.Equal(t, 2, *req.ChildAgeYears)
	}
	assert.Equal(t, model.VisitTypeSick, req.VisitType)
	assert.Equal(t, model.TimeOfDayAfternoon, req.PreferredTimes)
	assert.Equal(t, model.UrgencyRoutine, req.Urgency)
}
