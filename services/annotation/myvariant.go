package annotation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"varanno/api/models"
	"varanno/api/models/constants"
	as "varanno/api/models/constants/annotation-source"
	"varanno/api/utils"
)

const myVariantFields = "clinvar,dbsnp.gene,cadd.consequence,civic"

// MyVariantProvider queries myvariant.info, which aggregates ClinVar,
// dbSNP, CADD and CIViC documents per variant.
type MyVariantProvider struct {
	baseUrl   string
	client    *http.Client
	userAgent string
}

func NewMyVariantProvider(baseUrl string, client *http.Client, userAgent string) *MyVariantProvider {
	return &MyVariantProvider{
		baseUrl:   strings.TrimRight(baseUrl, "/"),
		client:    client,
		userAgent: userAgent,
	}
}

func (p *MyVariantProvider) Source() constants.AnnotationSource { return as.MyVariant }

func (p *MyVariantProvider) Capabilities() Capability { return ExposesDiseases | ExposesTrials }

func (p *MyVariantProvider) Lookup(ctx context.Context, rsid string) (*models.Annotation, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("dbsnp.rsid:%s", strings.TrimSpace(rsid)))
	query.Set("fields", myVariantFields)
	query.Set("size", "1")

	doc, err := utils.GetJsonContainer(ctx, p.client, fmt.Sprintf("%s/query?%s", p.baseUrl, query.Encode()), p.userAgent)
	if err != nil {
		return nil, err
	}

	ann := models.NewEmptyAnnotation()
	hits := children(doc, "hits")
	if len(hits) == 0 {
		return &ann, nil
	}
	hit := hits[0]

	ann.Gene = stringAt(hit, "clinvar", "gene", "symbol")
	if ann.Gene == "" {
		ann.Gene = stringAt(hit, "dbsnp", "gene", "symbol")
	}
	ann.Consequence = stringAt(hit, "cadd", "consequence")

	for _, rcv := range children(hit, "clinvar", "rcv") {
		if ann.ClinicalSignificance == "" {
			ann.ClinicalSignificance = stringAt(rcv, "clinical_significance")
		}
		for _, condition := range children(rcv, "conditions") {
			ann.DiseaseAssociations = utils.AppendUniqueFold(ann.DiseaseAssociations, stringsAt(condition, "name")...)
		}
	}

	for _, evidence := range children(hit, "civic", "evidence_items") {
		ann.DiseaseAssociations = utils.AppendUniqueFold(ann.DiseaseAssociations, stringsAt(evidence, "disease", "name")...)
		for _, trial := range children(evidence, "clinical_trials") {
			ann.ClinicalTrials = utils.AppendUniqueFold(ann.ClinicalTrials, stringsAt(trial, "nct_id")...)
		}
	}

	if ann.HasPrimary() {
		if variantId := stringAt(hit, "clinvar", "variant_id"); variantId != "" {
			ann.Link = fmt.Sprintf("https://www.ncbi.nlm.nih.gov/clinvar/variation/%s/", variantId)
		} else {
			ann.Link = fmt.Sprintf("https://myvariant.info/v1/query?%s", query.Encode())
		}
	}
	return &ann, nil
}
