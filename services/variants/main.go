package variantsService

import (
	"strings"

	"varanno/api/models"
	as "varanno/api/models/constants/annotation-source"
	"varanno/api/models/constants/chromosome"
	"varanno/api/models/dtos"

	. "github.com/ahmetb/go-linq"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const unreportedSignificance = "not reported"

// GetVariantsOverview aggregates a session's records into chart data.
// Every list in the result is non-nil, so an empty session still renders.
func GetVariantsOverview(sessionId uuid.UUID, records []*models.VariantRecord) dtos.OverviewDTO {
	valid := []*models.VariantRecord{}
	From(records).WhereT(func(r *models.VariantRecord) bool {
		return r != nil
	}).ToSlice(&valid)

	overview := dtos.OverviewDTO{
		SessionId:     sessionId,
		VariantCount:  len(valid),
		Chromosomes:   []dtos.CountBucket{},
		Sources:       []dtos.CountBucket{},
		Significances: []dtos.CountBucket{},
		Positions:     []dtos.PositionPoint{},
	}

	overview.AnnotatedCount = From(valid).CountWithT(func(r *models.VariantRecord) bool {
		return r.Source != as.None
	})

	// - per chromosome, in karyotype order
	From(valid).GroupByT(
		func(r *models.VariantRecord) string { return chromosome.Normalize(r.Chromosome) },
		func(r *models.VariantRecord) string { return r.Chromosome },
	).SelectT(func(g Group) dtos.CountBucket {
		return dtos.CountBucket{
			Key:   g.Key.(string),
			Label: g.Group[0].(string),
			Count: len(g.Group),
		}
	}).OrderByT(func(b dtos.CountBucket) int {
		return chromosome.SortKey(b.Key)
	}).ThenByT(func(b dtos.CountBucket) string {
		return b.Key
	}).ToSlice(&overview.Chromosomes)

	// - per annotation source, in priority order with "none" last
	From(valid).GroupByT(
		func(r *models.VariantRecord) string { return as.ToDisplayString(r.Source) },
		func(r *models.VariantRecord) *models.VariantRecord { return r },
	).SelectT(func(g Group) dtos.CountBucket {
		return dtos.CountBucket{
			Key:   g.Key.(string),
			Label: g.Key.(string),
			Count: len(g.Group),
		}
	}).OrderByT(func(b dtos.CountBucket) int {
		if rank := as.Rank(as.CastToAnnotationSource(b.Key)); rank >= 0 {
			return rank
		}
		return len(as.PriorityOrder)
	}).ToSlice(&overview.Sources)

	// - per clinical significance, most frequent first
	titler := cases.Title(language.English)
	From(valid).GroupByT(
		func(r *models.VariantRecord) string { return significanceKey(r.ClinicalSignificance) },
		func(r *models.VariantRecord) *models.VariantRecord { return r },
	).SelectT(func(g Group) dtos.CountBucket {
		key := g.Key.(string)
		return dtos.CountBucket{
			Key:   key,
			Label: titler.String(key),
			Count: len(g.Group),
		}
	}).OrderByDescendingT(func(b dtos.CountBucket) int {
		return b.Count
	}).ThenByT(func(b dtos.CountBucket) string {
		return b.Key
	}).ToSlice(&overview.Significances)

	From(valid).SelectT(func(r *models.VariantRecord) dtos.PositionPoint {
		return dtos.PositionPoint{
			Chromosome:           r.Chromosome,
			Position:             r.Position,
			Rsid:                 r.Rsid,
			Gene:                 r.Gene,
			ClinicalSignificance: r.ClinicalSignificance,
		}
	}).OrderByT(func(p dtos.PositionPoint) int {
		return chromosome.SortKey(p.Chromosome)
	}).ThenByT(func(p dtos.PositionPoint) string {
		return chromosome.Normalize(p.Chromosome)
	}).ThenByT(func(p dtos.PositionPoint) int {
		return p.Position
	}).ToSlice(&overview.Positions)

	return overview
}

func significanceKey(significance string) string {
	key := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(significance, "_", " ")))
	if key == "" {
		return unreportedSignificance
	}
	return key
}
