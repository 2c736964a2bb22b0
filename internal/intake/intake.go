// Package intake turns a parent's free-text message into slot search
// parameters with a keyword heuristic.
package intake

import (
	"pediacenter/pkg/model"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultAgeYears = 4
	Language        = "en"
)

var agePattern = regexp.MustCompile(`(\d+)\s*(year|yr|yo|yrs|years)\b`)

var (
	sickKeywords = []string{
		"fever", "cough", "vomit", "vomiting", "rash",
		"pain", "ear infection", "sore throat", "sick",
		"diarrhea", "flu", "cold", "ill",
	}

	morningKeywords   = []string{"morning", "early"}
	afternoonKeywords = []string{"afternoon", "after school", "evening"}

	urgentKeywords = []string{
		"difficulty breathing", "trouble breathing", "emergency",
		"really bad", "high fever", "can't keep anything down",
		"cant keep anything down", "severe", "urgent",
	}

	// checked in this order; the first surname found wins
	knownDoctors = []string{"bustamante", "smith", "jones"}
)

type Details struct {
	RawMessage        string `json:"raw_message"`
	ChildAgeYears     int    `json:"child_age_years"`
	VisitType         string `json:"visit_type"`
	Symptoms          string `json:"symptoms"`
	PreferredTimes    string `json:"preferred_times"`
	PreferredProvider string `json:"preferred_provider"`
	Urgency           string `json:"urgency"`
	Language          string `json:"language"`
}

// SearchRequest converts the extracted details into slot search input.
func (d Details) SearchRequest() model.SlotSearchRequest {
	age := d.ChildAgeYears
	return model.SlotSearchRequest{
		ChildAgeYears:     &age,
		VisitType:         d.VisitType,
		PreferredTimes:    d.PreferredTimes,
		PreferredProvider: d.PreferredProvider,
		Urgency:           d.Urgency,
	}
}

// Extract classifies message. Keywords match as lowercase substrings.
func Extract(message string) Details {
	text := strings.ToLower(message)

	symptoms := matching(text, sickKeywords)

	visitType := model.VisitTypeWellChild
	if len(symptoms) > 0 {
		visitType = model.VisitTypeSick
	}

	urgency := model.UrgencyRoutine
	if len(matching(text, urgentKeywords)) > 0 {
		urgency = model.UrgencyUrgent
	}

	return Details{
		RawMessage:        message,
		ChildAgeYears:     extractAge(text),
		VisitType:         visitType,
		Symptoms:          joinSorted(symptoms),
		PreferredTimes:    extractTimeOfDay(text),
		PreferredProvider: extractProvider(text),
		Urgency:           urgency,
		Language:          Language,
	}
}

func extractAge(text string) int {
	m := agePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultAgeYears
	}
	age, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultAgeYears
	}
	return age
}

func extractTimeOfDay(text string) string {
	switch {
	case len(matching(text, morningKeywords)) > 0:
		return model.TimeOfDayMorning
	case len(matching(text, afternoonKeywords)) > 0:
		return model.TimeOfDayAfternoon
	default:
		return model.TimeOfDayAny
	}
}

func extractProvider(text string) string {
	for _, doc := range knownDoctors {
		if strings.Contains(text, doc) {
			return "Dr. " + strings.ToUpper(doc[:1]) + doc[1:]
		}
	}
	return ""
}

func matching(text string, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func joinSorted(words []string) string {
	seen := make(map[string]struct{}, len(words))
	unique := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		unique = append(unique, w)
	}
	sort.Strings(unique)
	return strings.Join(unique, ", ")
}
