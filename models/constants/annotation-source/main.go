package annotationSource

import (
	"strings"
	"varanno/api/models/constants"
)

const (
	None constants.AnnotationSource = ""

	NCBI      constants.AnnotationSource = "NCBI"
	MyVariant constants.AnnotationSource = "MyVariant"
	Ensembl   constants.AnnotationSource = "Ensembl"
	UCSC      constants.AnnotationSource = "UCSC"
)

// PriorityOrder is the fixed order in which providers are consulted.
var PriorityOrder = []constants.AnnotationSource{NCBI, MyVariant, Ensembl, UCSC}

func CastToAnnotationSource(text string) constants.AnnotationSource {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "ncbi":
		return NCBI
	case "myvariant", "myvariant.info":
		return MyVariant
	case "ensembl":
		return Ensembl
	case "ucsc":
		return UCSC
	default:
		return None
	}
}

// ToDisplayString renders the unset source as "none".
func ToDisplayString(source constants.AnnotationSource) string {
	if source == None {
		return "none"
	}
	return string(source)
}

// Rank returns the position of source in PriorityOrder, or -1.
func Rank(source constants.AnnotationSource) int {
	for i, s := range PriorityOrder {
		if s == source {
			return i
		}
	}
	return -1
}
