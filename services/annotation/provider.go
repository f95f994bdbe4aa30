package annotation

import (
	"context"

	"varanno/api/models"
	"varanno/api/models/constants"
)

// Capability flags which list fields a provider is able to supply.
type Capability uint8

const (
	ExposesDiseases Capability = 1 << iota
	ExposesTrials
)

// Provider looks up a single rsid against one remote annotation service
// and normalizes the response into an Annotation. The returned
// annotation's Source is ignored; the resolver assigns it.
//
// A nil error with an empty annotation means the service answered but
// knows nothing useful about the rsid.
type Provider interface {
	Source() constants.AnnotationSource
	Capabilities() Capability
	Lookup(ctx context.Context, rsid string) (*models.Annotation, error)
}
