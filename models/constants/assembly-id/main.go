package assemblyId

import (
	"strings"
	"varanno/api/models/constants"
)

const (
	Unknown constants.AssemblyId = "Unknown"

	GRCh38 constants.AssemblyId = "GRCh38"
	GRCh37 constants.AssemblyId = "GRCh37"
)

// UCSC genome browser database names by assembly
var ucscDatabases = map[constants.AssemblyId]string{
	GRCh38: "hg38",
	GRCh37: "hg19",
}

func CastToAssemblyId(text string) constants.AssemblyId {
	switch strings.ToLower(text) {
	case "grch38", "hg38":
		return GRCh38
	case "grch37", "hg19":
		return GRCh37
	default:
		return Unknown
	}
}

func IsKnownAssemblyId(text string) bool {
	// attempt to cast to assemblyId and
	// return if unknown assemblyId
	return CastToAssemblyId(text) != Unknown
}

// ToUcscDatabase returns the UCSC database name for the assembly,
// defaulting to hg38.
func ToUcscDatabase(assId constants.AssemblyId) string {
	if db, ok := ucscDatabases[assId]; ok {
		return db
	}
	return ucscDatabases[GRCh38]
}
