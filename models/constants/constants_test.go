package constants_test

import (
	"testing"

	as "varanno/api/models/constants/annotation-source"
	assemblyId "varanno/api/models/constants/assembly-id"
	"varanno/api/models/constants/chromosome"
	fileFormat "varanno/api/models/constants/file-format"

	"github.com/stretchr/testify/assert"
)

func TestAnnotationSource(t *testing.T) {
	t.Run("should cast known provider names case-insensitively", func(t *testing.T) {
		assert.Equal(t, as.NCBI, as.CastToAnnotationSource("ncbi"))
		assert.Equal(t, as.MyVariant, as.CastToAnnotationSource("MyVariant.info"))
		assert.Equal(t, as.Ensembl, as.CastToAnnotationSource(" ENSEMBL "))
		assert.Equal(t, as.UCSC, as.CastToAnnotationSource("ucsc"))
		assert.Equal(t, as.None, as.CastToAnnotationSource("dbSNP"))
	})

	t.Run("should keep the fixed priority order", func(t *testing.T) {
		assert.Equal(t, 0, as.Rank(as.NCBI))
		assert.Equal(t, 1, as.Rank(as.MyVariant))
		assert.Equal(t, 2, as.Rank(as.Ensembl))
		assert.Equal(t, 3, as.Rank(as.UCSC))
		assert.Equal(t, -1, as.Rank(as.None))
	})

	t.Run("should display an unset source as none", func(t *testing.T) {
		assert.Equal(t, "none", as.ToDisplayString(as.None))
		assert.Equal(t, "Ensembl", as.ToDisplayString(as.Ensembl))
	})
}

func TestChromosome(t *testing.T) {
	assert.Equal(t, "1", chromosome.Normalize("chr1"))
	assert.Equal(t, "X", chromosome.Normalize("chrx"))
	assert.Equal(t, "M", chromosome.Normalize("chrMT"))
	assert.Equal(t, "17", chromosome.Normalize("17"))

	assert.True(t, chromosome.IsValidHumanChromosome("chr22"))
	assert.True(t, chromosome.IsValidHumanChromosome("Y"))
	assert.False(t, chromosome.IsValidHumanChromosome("23"))
	assert.False(t, chromosome.IsValidHumanChromosome("chrUn_KI270302v1"))

	assert.Len(t, chromosome.ValidListOfHumanChromosomes(), 25)

	assert.Less(t, chromosome.SortKey("chr2"), chromosome.SortKey("chr10"))
	assert.Less(t, chromosome.SortKey("22"), chromosome.SortKey("X"))
	assert.Less(t, chromosome.SortKey("M"), chromosome.SortKey("GL000192.1"))
}

func TestFileFormat(t *testing.T) {
	assert.Equal(t, fileFormat.Fasta, fileFormat.CastFromFilename("sample.fa"))
	assert.Equal(t, fileFormat.Fasta, fileFormat.CastFromFilename("sample.FASTA"))
	assert.Equal(t, fileFormat.Fastq, fileFormat.CastFromFilename("reads.fq"))
	assert.Equal(t, fileFormat.Vcf, fileFormat.CastFromFilename("calls.vcf"))
	assert.Equal(t, fileFormat.VcfGz, fileFormat.CastFromFilename("calls.vcf.gz"))
	assert.Equal(t, fileFormat.Unknown, fileFormat.CastFromFilename("reads.bam"))
	assert.Equal(t, fileFormat.Unknown, fileFormat.CastFromFilename("reads.fastq.gz"))

	assert.True(t, fileFormat.IsReads(fileFormat.Fastq))
	assert.False(t, fileFormat.IsReads(fileFormat.Vcf))
	assert.True(t, fileFormat.IsVariantCalls(fileFormat.VcfGz))
}

func TestAssemblyId(t *testing.T) {
	assert.Equal(t, assemblyId.GRCh38, assemblyId.CastToAssemblyId("hg38"))
	assert.True(t, assemblyId.IsKnownAssemblyId("GRCh37"))
	assert.False(t, assemblyId.IsKnownAssemblyId("NCBI36"))
	assert.Equal(t, "hg19", assemblyId.ToUcscDatabase(assemblyId.GRCh37))
	assert.Equal(t, "hg38", assemblyId.ToUcscDatabase(assemblyId.Unknown))
}
