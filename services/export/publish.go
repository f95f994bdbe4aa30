package exportService

import (
	"context"
	"fmt"
	"strings"
	"time"

	"varanno/api/models"
	as "varanno/api/models/constants/annotation-source"
	"varanno/api/models/dtos"
	"varanno/api/models/indexes"
	"varanno/api/models/sessions"
	esRepo "varanno/api/repositories/elasticsearch"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/pkg/errors"
)

var ErrPublishingDisabled = errors.New("publishing is disabled: no elasticsearch url configured")

type PublishService struct {
	Es7Client *es7.Client
	Config    *models.Config
}

func NewPublishService(es *es7.Client, cfg *models.Config) *PublishService {
	return &PublishService{
		Es7Client: es,
		Config:    cfg,
	}
}

func (ps *PublishService) Enabled() bool {
	return ps != nil && ps.Es7Client != nil
}

// ToExportedVariants turns a session's records into export documents.
func ToExportedVariants(session sessions.Session, assemblyId string, exportedAt time.Time) []indexes.ExportedVariant {
	docs := make([]indexes.ExportedVariant, 0, len(session.Records))
	for i, r := range session.Records {
		if r == nil {
			continue
		}
		docs = append(docs, indexes.ExportedVariant{
			SessionId:            session.Id.String(),
			Filename:             session.Filename,
			Chromosome:           r.Chromosome,
			Position:             r.Position,
			ReferenceAllele:      r.ReferenceAllele,
			AlternateAllele:      r.AlternateAllele,
			Rsid:                 r.Rsid,
			AnnotationSource:     r.Source,
			Gene:                 r.Gene,
			ClinicalSignificance: r.ClinicalSignificance,
			Consequence:          r.Consequence,
			Link:                 r.Link,
			DiseaseAssociations:  r.DiseaseAssociations,
			ClinicalTrials:       r.ClinicalTrials,
			AssemblyId:           assemblyId,
			ExportedAt:           exportedAt,
			RowPosition:          i,
		})
	}
	return docs
}

// FromExportedVariant rebuilds a record from a published document.
func FromExportedVariant(doc indexes.ExportedVariant) *models.VariantRecord {
	r := models.NewVariantRecord(doc.Chromosome, doc.Position, doc.ReferenceAllele, doc.AlternateAllele, doc.Rsid)
	r.Source = as.CastToAnnotationSource(string(doc.AnnotationSource))
	r.Gene = doc.Gene
	r.ClinicalSignificance = doc.ClinicalSignificance
	r.Consequence = doc.Consequence
	r.Link = doc.Link
	r.DiseaseAssociations = append(r.DiseaseAssociations, doc.DiseaseAssociations...)
	r.ClinicalTrials = append(r.ClinicalTrials, doc.ClinicalTrials...)
	return r
}

// Publish replaces any earlier publication of the session with its
// current records.
func (ps *PublishService) Publish(ctx context.Context, session sessions.Session) (dtos.PublishResponseDTO, error) {
	if !ps.Enabled() {
		return dtos.PublishResponseDTO{}, ErrPublishingDisabled
	}

	if err := esRepo.EnsureExportIndex(ctx, ps.Config, ps.Es7Client); err != nil {
		return dtos.PublishResponseDTO{}, err
	}
	if err := esRepo.DeleteExportedVariantsBySessionId(ctx, ps.Config, ps.Es7Client, session.Id.String()); err != nil {
		return dtos.PublishResponseDTO{}, err
	}

	now := time.Now()
	docs := ToExportedVariants(session, assemblyIdOf(ps.Config), now)
	stats, err := esRepo.IndexExportedVariants(ctx, ps.Config, ps.Es7Client, docs)
	if err != nil {
		return dtos.PublishResponseDTO{}, err
	}

	fmt.Printf("[%s] - Published %d rows of session %s (%d failed)\n", time.Now(), stats.NumIndexed, session.Id, stats.NumFailed)

	return dtos.PublishResponseDTO{
		SessionId:   session.Id,
		Index:       ps.Config.Elasticsearch.ExportIndex,
		NumIndexed:  stats.NumIndexed,
		NumFailed:   stats.NumFailed,
		PublishedAt: now,
	}, nil
}

// Published reads a session's published export back as records.
func (ps *PublishService) Published(ctx context.Context, sessionId string) ([]*models.VariantRecord, error) {
	if !ps.Enabled() {
		return nil, ErrPublishingDisabled
	}

	docs, err := esRepo.GetExportedVariantsBySessionId(ctx, ps.Config, ps.Es7Client, sessionId, 10000)
	if err != nil {
		return nil, err
	}

	records := make([]*models.VariantRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, FromExportedVariant(doc))
	}
	return records, nil
}

func assemblyIdOf(cfg *models.Config) string {
	return strings.TrimSpace(cfg.Tools.AssemblyId)
}
