package workflows

import (
	"varanno/api/models/constants"
	fileFormat "varanno/api/models/constants/file-format"
	"varanno/api/models/dtos"
	"varanno/api/services/tools"
	"varanno/api/utils"
)

const (
	REFERENCE_PLACEHOLDER = "{reference}"
	DBSNP_PLACEHOLDER     = "{dbsnp}"
	READS_PLACEHOLDER     = "{reads}"
)

var READS_PIPELINE = dtos.PipelineDescription{
	Name:        "reads",
	Description: "Aligns sequencing reads against the reference genome, calls variants and annotates them against public variant databases.",
	Accepts:     []constants.FileFormat{fileFormat.Fasta, fileFormat.Fastq},
	Steps: []dtos.PipelineStep{
		{Name: "aligning", Tool: tools.Bwa, Arguments: []string{"mem", REFERENCE_PLACEHOLDER, READS_PLACEHOLDER}},
		{Name: "calling", Tool: tools.Samtools, Arguments: []string{"view", "-bS", "aligned.sam", "-o", "aligned.bam"}},
		{Name: "calling", Tool: tools.Samtools, Arguments: []string{"sort", "aligned.bam", "-o", "aligned.sorted.bam"}},
		{Name: "calling", Tool: tools.Samtools, Arguments: []string{"index", "aligned.sorted.bam"}},
		{Name: "calling", Tool: tools.Bcftools, Arguments: []string{"mpileup", "-f", REFERENCE_PLACEHOLDER, "aligned.sorted.bam", "-Ou", "-o", "pileup.bcf"}},
		{Name: "calling", Tool: tools.Bcftools, Arguments: []string{"call", "-mv", "-Ov", "-o", "calls.vcf", "pileup.bcf"}},
		{Name: "calling", Tool: tools.Bcftools, Arguments: []string{"annotate", "-a", DBSNP_PLACEHOLDER, "-c", "ID", "-Ov", "-o", "calls.rsid.vcf", "calls.vcf"}},
		{Name: "annotating", Tool: "", Arguments: []string{}},
	},
}

var VCF_PIPELINE = dtos.PipelineDescription{
	Name:        "vcf",
	Description: "Annotates a pre-computed variant call file against public variant databases.",
	Accepts:     []constants.FileFormat{fileFormat.Vcf, fileFormat.VcfGz},
	Steps: []dtos.PipelineStep{
		{Name: "annotating", Tool: "", Arguments: []string{}},
	},
}

// Describe lists the pipelines, dropping the dbSNP step when no dbSNP
// file is configured.
func Describe(dbsnpConfigured bool) []dtos.PipelineDescription {
	reads := READS_PIPELINE
	reads.Steps = make([]dtos.PipelineStep, 0, len(READS_PIPELINE.Steps))
	for _, step := range READS_PIPELINE.Steps {
		if !dbsnpConfigured && utils.StringInSlice(DBSNP_PLACEHOLDER, step.Arguments) {
			continue
		}
		reads.Steps = append(reads.Steps, step)
	}
	return []dtos.PipelineDescription{reads, VCF_PIPELINE}
}
