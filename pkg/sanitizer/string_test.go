package sanitizer

import (
	"pediacenter/pkg/model"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Ana Lee  ",
			want:  "Ana Lee",
		},
		{
			name:  "multiple spaces between words",
			input: "Ana    Lee",
			want:  "Ana Lee",
		},
		{
			name:  "tabs and newlines",
			input: "Ana\t\nLee",
			want:  "Ana Lee",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve accents and punctuation",
			input: " José O'Brien ",
			want:  "José O'Brien",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestMatchKey(t *testing.T) {
	if got := MatchKey("  Sick_Visit "); got != "sick_visit" {
		t.Errorf("MatchKey = %q, want %q", got, "sick_visit")
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{"Ana Lee", "ana", true},
		{"Ana Lee", "LEE", true},
		{"Ana Lee", "", true},
		{"Ana Lee", "bob", false},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.haystack, tt.needle); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestSanitizeCancelRequest(t *testing.T) {
	req := &model.CancelRequest{
		ConfirmationID: "  Dr. Smith-2025-06-03T09:00 ",
		ChildName:      " Ana   Lee",
		SlotStart:      " 2025-06-03 ",
		Provider:       "Dr.  Smith ",
	}

	SanitizeCancelRequest(req)

	if req.ConfirmationID != "Dr. Smith-2025-06-03T09:00" {
		t.Errorf("unexpected confirmation id %q", req.ConfirmationID)
	}
	if req.ChildName != "Ana Lee" {
		t.Errorf("unexpected child name %q", req.ChildName)
	}
	if req.SlotStart != "2025-06-03" {
		t.Errorf("unexpected slot start %q", req.SlotStart)
	}
	if req.Provider != "Dr. Smith" {
		t.Errorf("unexpected provider %q", req.Provider)
	}
}
