package models

import (
	"varanno/api/models/constants"
)

// Annotation holds everything the annotation resolver may fill in for
// a single rsid. An empty Source means no provider yielded data.
type Annotation struct {
	Source constants.AnnotationSource `json:"annotationSource"`

	// primary fields, all from the same provider call
	Gene                 string `json:"gene"`
	ClinicalSignificance string `json:"clinicalSignificance"`
	Consequence          string `json:"consequence"`
	Link                 string `json:"link"`

	DiseaseAssociations []string `json:"diseaseAssociations"`
	ClinicalTrials      []string `json:"clinicalTrials"`
}

// HasPrimary reports whether any primary field is populated.
func (a *Annotation) HasPrimary() bool {
	return a.Gene != "" || a.ClinicalSignificance != "" || a.Consequence != ""
}

// IsEmpty reports whether no annotation field at all is populated.
func (a *Annotation) IsEmpty() bool {
	return !a.HasPrimary() && a.Link == "" &&
		len(a.DiseaseAssociations) == 0 && len(a.ClinicalTrials) == 0
}

// Copy returns a deep copy so that callers can't share list backing arrays.
func (a Annotation) Copy() Annotation {
	a.DiseaseAssociations = append(make([]string, 0, len(a.DiseaseAssociations)), a.DiseaseAssociations...)
	a.ClinicalTrials = append(make([]string, 0, len(a.ClinicalTrials)), a.ClinicalTrials...)
	return a
}

func NewEmptyAnnotation() Annotation {
	return Annotation{
		DiseaseAssociations: []string{},
		ClinicalTrials:      []string{},
	}
}

type VariantRecord struct {
	Chromosome      string `json:"chromosome"`
	Position        int    `json:"position"`
	ReferenceAllele string `json:"referenceAllele"`
	AlternateAllele string `json:"alternateAllele"`
	Rsid            string `json:"rsid,omitempty"`

	Annotation
}

// NewVariantRecord creates an unannotated record skeleton.
func NewVariantRecord(chrom string, pos int, ref string, alt string, rsid string) *VariantRecord {
	return &VariantRecord{
		Chromosome:      chrom,
		Position:        pos,
		ReferenceAllele: ref,
		AlternateAllele: alt,
		Rsid:            rsid,
		Annotation:      NewEmptyAnnotation(),
	}
}
