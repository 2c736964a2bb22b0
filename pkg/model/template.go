package model

const (
	VisitTypeSick      = "sick_visit"
	VisitTypeWellChild = "well_child"
	VisitTypeOther     = "other"
)

// TemplateSlot is one recurring slot of a provider's day. Start is either
// HH:MM or a full date-time whose date part is ignored.
type TemplateSlot struct {
	Start     string `json:"start" bson:"start" toml:"start"`
	VisitType string `json:"visit_type" bson:"visit_type" toml:"visit_type"`
}

type ProviderTemplate struct {
	Name     string         `json:"name" bson:"name" toml:"name"`
	Schedule []TemplateSlot `json:"schedule" bson:"schedule" toml:"schedule"`
	Position int            `json:"-" bson:"position" toml:"-"`
}

// ScheduleFile is the on-disk layout of the provider catalog.
type ScheduleFile struct {
	Providers []ProviderTemplate `json:"providers" toml:"providers"`
}
