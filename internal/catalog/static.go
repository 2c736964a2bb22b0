package catalog

import (
	"context"
	"pediacenter/pkg/model"
)

// StaticCatalog serves a fixed list of templates.
type StaticCatalog struct {
	templates []model.ProviderTemplate
}

func NewStaticCatalog(templates []model.ProviderTemplate) *StaticCatalog {
	return &StaticCatalog{templates: templates}
}

func (c *StaticCatalog) RecurringSlotsFor(ctx context.Context, provider string) ([]model.ProviderTemplate, error) {
	return filterByProvider(c.templates, provider), nil
}

// DefaultTemplates is the clinic day used when no catalog is configured.
func DefaultTemplates() []model.ProviderTemplate {
	return []model.ProviderTemplate{
		{
			Name: "Dr. Smith",
			Schedule: []model.TemplateSlot{
				{Start: "09:00", VisitType: model.VisitTypeSick},
				{Start: "09:30", VisitType: model.VisitTypeSick},
				{Start: "10:00", VisitType: model.VisitTypeWellChild},
				{Start: "11:00", VisitType: model.VisitTypeWellChild},
				{Start: "14:00", VisitType: model.VisitTypeSick},
				{Start: "15:30", VisitType: model.VisitTypeWellChild},
			},
		},
		{
			Name: "Dr. Jones",
			Schedule: []model.TemplateSlot{
				{Start: "08:30", VisitType: model.VisitTypeWellChild},
				{Start: "10:30", VisitType: model.VisitTypeSick},
				{Start: "13:00", VisitType: model.VisitTypeSick},
				{Start: "16:00", VisitType: model.VisitTypeWellChild},
			},
		},
		{
			Name: "Dr. Bustamante",
			Schedule: []model.TemplateSlot{
				{Start: "09:15", VisitType: model.VisitTypeSick},
				{Start: "12:30", VisitType: model.VisitTypeWellChild},
				{Start: "15:00", VisitType: model.VisitTypeSick},
				{Start: "17:00", VisitType: model.VisitTypeOther},
			},
		},
	}
}
