package mvc

import (
	"varanno/api/contexts"
	"varanno/api/models"
	"varanno/api/models/constants/chromosome"
	"varanno/api/models/sessions"

	"github.com/labstack/echo"
)

// RetrieveCommonElements returns the session resolved by middleware along
// with the optional chromosome and bounds filters.
func RetrieveCommonElements(c echo.Context) (sessions.Session, string, int, int) {
	gc := c.(*contexts.VarannoContext)

	return gc.Session, gc.Chromosome, gc.LowerBound, gc.UpperBound
}

// FilterRecords keeps the records on chrom (any chromosome when empty)
// whose position lies within the given bounds (unbounded when zero).
func FilterRecords(records []*models.VariantRecord, chrom string, lowerBound int, upperBound int) []*models.VariantRecord {
	filtered := make([]*models.VariantRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if chrom != "" && chromosome.Normalize(r.Chromosome) != chrom {
			continue
		}
		if lowerBound > 0 && r.Position < lowerBound {
			continue
		}
		if upperBound > 0 && r.Position > upperBound {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
