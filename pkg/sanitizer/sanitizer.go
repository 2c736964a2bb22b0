package sanitizer

import (
	"pediacenter/pkg/model"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var slotStartPipeline = Pipeline{strings.TrimSpace}

func SanitizeCreateRequest(req *model.CreateBookingRequest) {
	req.SlotStart = slotStartPipeline.Apply(req.SlotStart)
	req.Provider = NormalizeProvider(req.Provider)
	req.ChildName = NormalizeName(req.ChildName)
}

func SanitizeCancelRequest(req *model.CancelRequest) {
	req.ConfirmationID = strings.TrimSpace(req.ConfirmationID)
	req.SlotStart = slotStartPipeline.Apply(req.SlotStart)
	req.Provider = NormalizeProvider(req.Provider)
	req.ChildName = NormalizeName(req.ChildName)
}

func SanitizeRescheduleRequest(req *model.RescheduleRequest) {
	req.OldConfirmationID = strings.TrimSpace(req.OldConfirmationID)
	req.NewSlotStart = slotStartPipeline.Apply(req.NewSlotStart)
	req.NewProvider = NormalizeProvider(req.NewProvider)
	req.ChildName = NormalizeName(req.ChildName)
}

func SanitizeSearchRequest(req *model.SlotSearchRequest) {
	req.VisitType = MatchKey(req.VisitType)
	req.PreferredTimes = MatchKey(req.PreferredTimes)
	req.Urgency = MatchKey(req.Urgency)
	req.PreferredProvider = NormalizeProvider(req.PreferredProvider)
}
