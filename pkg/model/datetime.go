package model

import (
	"errors"
	"strings"
	"time"
)

// SlotLayout is the minute precision form every slot start is stored in.
const SlotLayout = "2006-01-02T15:04"

const dateLayout = "2006-01-02"

var ErrUnparsableDateTime = errors.New("unparsable date-time")

var dateTimeLayouts = []string{
	SlotLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999",
	dateLayout,
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
}

// ParseSlotTime parses a naive local date-time in loc.
func ParseSlotTime(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableDateTime
}

func FormatSlotTime(t time.Time) string {
	return t.Format(SlotLayout)
}

// NormalizeSlotStart rewrites a parsable value to minute precision and
// returns anything else trimmed but otherwise untouched.
func NormalizeSlotStart(value string, loc *time.Location) string {
	t, err := ParseSlotTime(value, loc)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return FormatSlotTime(t)
}

// IsValidSlotTime reports whether value is an accepted date-time.
func IsValidSlotTime(value string) bool {
	_, err := ParseSlotTime(value, time.UTC)
	return err == nil
}

// HasTimeOfDay reports whether t carries a time other than midnight.
func HasTimeOfDay(t time.Time) bool {
	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseClockTime extracts hour and minute from a template start. Full
// date-times are accepted and their date part is dropped.
func ParseClockTime(value string) (hour, minute int, err error) {
	value = strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, perr := time.Parse(layout, value); perr == nil {
			return t.Hour(), t.Minute(), nil
		}
	}
	if t, perr := ParseSlotTime(value, time.UTC); perr == nil {
		return t.Hour(), t.Minute(), nil
	}
	return 0, 0, ErrUnparsableDateTime
}
