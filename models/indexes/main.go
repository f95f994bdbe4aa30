package indexes

import (
	"time"

	"varanno/api/models/constants"
)

// ExportedVariant is one row of a published export table.
type ExportedVariant struct {
	SessionId string `json:"sessionId"`
	Filename  string `json:"filename"`

	Chromosome      string `json:"chromosome"`
	Position        int    `json:"position"`
	ReferenceAllele string `json:"referenceAllele"`
	AlternateAllele string `json:"alternateAllele"`
	Rsid            string `json:"rsid"`

	AnnotationSource     constants.AnnotationSource `json:"annotationSource"`
	Gene                 string                     `json:"gene"`
	ClinicalSignificance string                     `json:"clinicalSignificance"`
	Consequence          string                     `json:"consequence"`
	Link                 string                     `json:"link"`
	DiseaseAssociations  []string                   `json:"diseaseAssociations"`
	ClinicalTrials       []string                   `json:"clinicalTrials"`

	AssemblyId  string    `json:"assemblyId"`
	ExportedAt  time.Time `json:"exportedAt"`
	RowPosition int       `json:"rowPosition"`
}

var MAPPING_FIELDS_KEYWORD_IG256 = map[string]interface{}{
	"keyword": map[string]interface{}{
		"type":         "keyword",
		"ignore_above": 256,
	},
}
var MAPPING_TEXT = map[string]interface{}{"type": "text", "fields": MAPPING_FIELDS_KEYWORD_IG256}
var MAPPING_KEYWORD = map[string]interface{}{"type": "keyword"}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_DATE = map[string]interface{}{"type": "date"}

var EXPORTED_VARIANT_INDEX_MAPPING = map[string]interface{}{
	"properties": map[string]interface{}{
		"sessionId":            MAPPING_KEYWORD,
		"filename":             MAPPING_TEXT,
		"chromosome":           MAPPING_KEYWORD,
		"position":             MAPPING_LONG,
		"referenceAllele":      MAPPING_KEYWORD,
		"alternateAllele":      MAPPING_KEYWORD,
		"rsid":                 MAPPING_KEYWORD,
		"annotationSource":     MAPPING_KEYWORD,
		"gene":                 MAPPING_TEXT,
		"clinicalSignificance": MAPPING_TEXT,
		"consequence":          MAPPING_TEXT,
		"link":                 MAPPING_KEYWORD,
		"diseaseAssociations":  MAPPING_TEXT,
		"clinicalTrials":       MAPPING_KEYWORD,
		"assemblyId":           MAPPING_KEYWORD,
		"exportedAt":           MAPPING_DATE,
		"rowPosition":          MAPPING_LONG,
	},
}
