package annotation

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"varanno/api/models"
	as "varanno/api/models/constants/annotation-source"
	assemblyId "varanno/api/models/constants/assembly-id"
	"varanno/api/utils"

	"github.com/pkg/errors"
)

const defaultLookupTimeout = 10 * time.Second

// Resolver consults its providers in priority order. The first provider
// returning any primary field owns gene, significance, consequence and
// link; disease and trial lists are merged from every provider that
// answers, including list-capable providers after the primary one. Provider failures are logged and never surface to callers.
type Resolver struct {
	providers []Provider
	timeout   time.Duration
}

// NewResolver orders providers by annotation source priority, whatever
// order they are given in. A non-positive timeout uses the default.
func NewResolver(timeout time.Duration, providers ...Provider) *Resolver {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	ordered := append([]Provider{}, providers...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rankOf(ordered[i]) < rankOf(ordered[j])
	})

	return &Resolver{
		providers: ordered,
		timeout:   timeout,
	}
}

// NewResolverFromConfig wires the four public providers.
func NewResolverFromConfig(cfg *models.Config) *Resolver {
	timeout := time.Duration(cfg.Annotation.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	client := &http.Client{Timeout: timeout}
	userAgent := cfg.Annotation.UserAgent

	return NewResolver(timeout,
		NewNcbiProvider(cfg.Annotation.NcbiUrl, client, userAgent),
		NewMyVariantProvider(cfg.Annotation.MyVariantUrl, client, userAgent),
		NewEnsemblProvider(cfg.Annotation.EnsemblUrl, client, userAgent),
		NewUcscProvider(cfg.Annotation.UcscUrl, assemblyId.CastToAssemblyId(cfg.Tools.AssemblyId), client, userAgent),
	)
}

// Resolve returns the merged annotation for one rsid. An empty rsid
// yields an empty annotation without any lookup.
func (r *Resolver) Resolve(ctx context.Context, rsid string) models.Annotation {
	result := models.NewEmptyAnnotation()

	rsid = strings.TrimSpace(rsid)
	if rsid == "" {
		return result
	}

	primaryFound := false
	firstContributor := as.None

	for _, provider := range r.providers {
		// once primary fields are owned, only list-capable providers add anything
		if primaryFound && provider.Capabilities() == 0 {
			continue
		}

		partial, err := r.lookup(ctx, provider, rsid)
		if err != nil {
			fmt.Printf("[%s] - %s lookup of %s failed: %v\n", time.Now(), provider.Source(), rsid, err)
			continue
		}
		if partial == nil || partial.IsEmpty() {
			continue
		}

		if !primaryFound && partial.HasPrimary() {
			primaryFound = true
			result.Source = provider.Source()
			result.Gene = partial.Gene
			result.ClinicalSignificance = partial.ClinicalSignificance
			result.Consequence = partial.Consequence
			result.Link = partial.Link
		}

		listsBefore := len(result.DiseaseAssociations) + len(result.ClinicalTrials)
		result.DiseaseAssociations = utils.AppendUniqueFold(result.DiseaseAssociations, partial.DiseaseAssociations...)
		result.ClinicalTrials = utils.AppendUniqueFold(result.ClinicalTrials, partial.ClinicalTrials...)

		if firstContributor == as.None && len(result.DiseaseAssociations)+len(result.ClinicalTrials) > listsBefore {
			firstContributor = provider.Source()
		}
	}

	// lists without any primary data still need an owner
	if result.Source == as.None && !result.IsEmpty() {
		result.Source = firstContributor
	}

	return result
}

// AnnotateRecords resolves every record's rsid, looking each distinct
// rsid up once per call.
func (r *Resolver) AnnotateRecords(ctx context.Context, records []*models.VariantRecord) {
	memo := make(map[string]models.Annotation)

	for _, record := range records {
		if record == nil {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(record.Rsid))
		ann, seen := memo[key]
		if !seen {
			ann = r.Resolve(ctx, record.Rsid)
			memo[key] = ann
		}
		record.Annotation = ann.Copy()
	}
}

func (r *Resolver) lookup(ctx context.Context, provider Provider, rsid string) (ann *models.Annotation, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if recovered := recover(); recovered != nil {
			ann = nil
			err = errors.Errorf("provider panicked: %v", recovered)
		}
	}()

	return provider.Lookup(ctx, rsid)
}

func rankOf(p Provider) int {
	if rank := as.Rank(p.Source()); rank >= 0 {
		return rank
	}
	return len(as.PriorityOrder)
}
