package annotation

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"varanno/api/models"
	"varanno/api/models/constants"
	as "varanno/api/models/constants/annotation-source"
	"varanno/api/utils"

	"github.com/pkg/errors"
)

// NcbiProvider queries the NCBI Variation Services refsnp endpoint.
type NcbiProvider struct {
	baseUrl   string
	client    *http.Client
	userAgent string
}

func NewNcbiProvider(baseUrl string, client *http.Client, userAgent string) *NcbiProvider {
	return &NcbiProvider{
		baseUrl:   strings.TrimRight(baseUrl, "/"),
		client:    client,
		userAgent: userAgent,
	}
}

func (p *NcbiProvider) Source() constants.AnnotationSource { return as.NCBI }

func (p *NcbiProvider) Capabilities() Capability { return ExposesDiseases }

func (p *NcbiProvider) Lookup(ctx context.Context, rsid string) (*models.Annotation, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(rsid)), "rs")
	if _, err := strconv.ParseUint(digits, 10, 64); err != nil {
		return nil, errors.Errorf("not a refsnp id: %q", rsid)
	}

	doc, err := utils.GetJsonContainer(ctx, p.client, fmt.Sprintf("%s/refsnp/%s", p.baseUrl, digits), p.userAgent)
	if err != nil {
		return nil, err
	}

	ann := models.NewEmptyAnnotation()
	for _, alleleAnnotation := range children(doc, "primary_snapshot_data", "allele_annotations") {
		for _, clinical := range children(alleleAnnotation, "clinical") {
			if ann.ClinicalSignificance == "" {
				ann.ClinicalSignificance = stringAt(clinical, "clinical_significances")
			}
			ann.DiseaseAssociations = utils.AppendUniqueFold(ann.DiseaseAssociations, stringsAt(clinical, "disease_names")...)
		}

		for _, assembly := range children(alleleAnnotation, "assembly_annotation") {
			for _, gene := range children(assembly, "genes") {
				if ann.Gene == "" {
					ann.Gene = stringAt(gene, "locus")
				}
				for _, rna := range children(gene, "rnas") {
					if ann.Consequence != "" {
						break
					}
					// protein level terms are more specific than transcript level ones
					ann.Consequence = stringAt(rna, "protein", "sequence_ontology", "name")
					if ann.Consequence == "" {
						ann.Consequence = stringAt(rna, "sequence_ontology", "name")
					}
				}
			}
		}
	}

	if ann.HasPrimary() {
		ann.Link = fmt.Sprintf("https://www.ncbi.nlm.nih.gov/snp/rs%s", digits)
	}
	return &ann, nil
}
