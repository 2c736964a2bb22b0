// Package catalog serves the read-only provider day templates slot search
// projects onto calendar dates.
package catalog

import (
	"context"
	"errors"
	"pediacenter/pkg/model"
)

var ErrCatalogUnavailable = errors.New("provider catalog unavailable")

type Catalog interface {
	// RecurringSlotsFor returns every template in catalog order when provider
	// is empty, otherwise only the templates named exactly provider.
	RecurringSlotsFor(ctx context.Context, provider string) ([]model.ProviderTemplate, error)
}

func filterByProvider(templates []model.ProviderTemplate, provider string) []model.ProviderTemplate {
	if provider == "" {
		return templates
	}
	out := make([]model.ProviderTemplate, 0, 1)
	for _, t := range templates {
		if t.Name == provider {
			out = append(out, t)
		}
	}
	return out
}
