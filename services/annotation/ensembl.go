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

// EnsemblProvider queries the Ensembl REST variation endpoint.
type EnsemblProvider struct {
	baseUrl   string
	client    *http.Client
	userAgent string
}

func NewEnsemblProvider(baseUrl string, client *http.Client, userAgent string) *EnsemblProvider {
	return &EnsemblProvider{
		baseUrl:   strings.TrimRight(baseUrl, "/"),
		client:    client,
		userAgent: userAgent,
	}
}

func (p *EnsemblProvider) Source() constants.AnnotationSource { return as.Ensembl }

func (p *EnsemblProvider) Capabilities() Capability { return ExposesDiseases }

func (p *EnsemblProvider) Lookup(ctx context.Context, rsid string) (*models.Annotation, error) {
	rsid = strings.TrimSpace(rsid)
	endpoint := fmt.Sprintf("%s/variation/human/%s?phenotypes=1&content-type=application/json",
		p.baseUrl, url.PathEscape(rsid))

	doc, err := utils.GetJsonContainer(ctx, p.client, endpoint, p.userAgent)
	if err != nil {
		return nil, err
	}

	ann := models.NewEmptyAnnotation()
	ann.Consequence = stringAt(doc, "most_severe_consequence")
	ann.ClinicalSignificance = stringAt(doc, "clinical_significance")

	for _, phenotype := range children(doc, "phenotypes") {
		if ann.Gene == "" {
			// genes is a comma separated string, or null
			if genes := utils.SplitAndTrim(stringAt(phenotype, "genes"), ","); len(genes) > 0 {
				ann.Gene = genes[0]
			}
		}
		ann.DiseaseAssociations = utils.AppendUniqueFold(ann.DiseaseAssociations, stringsAt(phenotype, "trait")...)
	}

	if ann.HasPrimary() {
		ann.Link = fmt.Sprintf("https://www.ensembl.org/Homo_sapiens/Variation/Explore?v=%s", url.QueryEscape(rsid))
	}
	return &ann, nil
}
