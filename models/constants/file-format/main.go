package fileFormat

import (
	"strings"
	"varanno/api/models/constants"
)

const (
	Unknown constants.FileFormat = "Unknown"

	Fasta constants.FileFormat = "FASTA"
	Fastq constants.FileFormat = "FASTQ"
	Vcf   constants.FileFormat = "VCF"
	VcfGz constants.FileFormat = "VCF.GZ"
)

var extensions = []struct {
	suffix string
	format constants.FileFormat
}{
	// longest suffixes first
	{".vcf.gz", VcfGz},
	{".vcf.bgz", VcfGz},
	{".fastq", Fastq},
	{".fasta", Fasta},
	{".vcf", Vcf},
	{".fna", Fasta},
	{".fq", Fastq},
	{".fa", Fasta},
}

// CastFromFilename infers a file format from the file's extension.
func CastFromFilename(filename string) constants.FileFormat {
	lowered := strings.ToLower(strings.TrimSpace(filename))
	for _, ext := range extensions {
		if strings.HasSuffix(lowered, ext.suffix) {
			return ext.format
		}
	}
	return Unknown
}

// IsReads reports whether the format holds sequencing reads, which
// must go through alignment and variant calling.
func IsReads(format constants.FileFormat) bool {
	return format == Fasta || format == Fastq
}

// IsVariantCalls reports whether the format is a pre-computed variant call file.
func IsVariantCalls(format constants.FileFormat) bool {
	return format == Vcf || format == VcfGz
}

func AcceptedExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		exts = append(exts, ext.suffix)
	}
	return exts
}
