package slots

import (
	"pediacenter/pkg/model"
	"time"
)

// Window is an inclusive range of day offsets from today.
type Window struct {
	Start int
	End   int
}

// WindowFor maps visit type and urgency to the days searched.
func WindowFor(visitType, urgency string) Window {
	switch visitType {
	case model.VisitTypeSick:
		if urgency == model.UrgencyUrgent {
			return Window{Start: 0, End: 2}
		}
		return Window{Start: 1, End: 5}
	case model.VisitTypeWellChild:
		return Window{Start: 2, End: 14}
	default:
		return Window{Start: 1, End: 7}
	}
}

// Days lists the open dates of w relative to now, Sundays excluded.
func (w Window) Days(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	days := make([]time.Time, 0, w.End-w.Start+1)
	for offset := w.Start; offset <= w.End; offset++ {
		day := today.AddDate(0, 0, offset)
		if day.Weekday() == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days
}

func matchesTimeOfDay(t time.Time, preferred string) bool {
	switch preferred {
	case model.TimeOfDayMorning:
		return t.Hour() < 12
	case model.TimeOfDayAfternoon:
		return t.Hour() >= 12
	default:
		return true
	}
}
