package variantsService

import (
	"testing"

	"varanno/api/models"
	as "varanno/api/models/constants/annotation-source"
	"varanno/api/models/dtos"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func annotated(chrom string, pos int, rsid string, source string, significance string) *models.VariantRecord {
	r := models.NewVariantRecord(chrom, pos, "A", "G", rsid)
	r.Source = as.CastToAnnotationSource(source)
	r.ClinicalSignificance = significance
	if r.Source != as.None {
		r.Gene = "GENE"
	}
	return r
}

func TestGetVariantsOverview(t *testing.T) {
	t.Run("should aggregate chromosomes, sources and significances", func(t *testing.T) {
		// set up
		records := []*models.VariantRecord{
			annotated("chrX", 500, "rs1", "Ensembl", "benign"),
			annotated("chr2", 300, "rs2", "NCBI", "Pathogenic"),
			annotated("chr10", 100, "", "", ""),
			annotated("chr2", 100, "rs3", "MyVariant", "pathogenic"),
			annotated("chr1", 900, "rs4", "NCBI", "likely_benign"),
		}

		// perform
		overview := GetVariantsOverview(uuid.Nil, records)

		// verify
		assert.Equal(t, 5, overview.VariantCount)
		assert.Equal(t, 4, overview.AnnotatedCount)

		assert.Equal(t, []string{"1", "2", "10", "X"}, keys(overview.Chromosomes))
		assert.Equal(t, "chr2", overview.Chromosomes[1].Label)
		assert.Equal(t, 2, overview.Chromosomes[1].Count)

		assert.Equal(t, []string{"NCBI", "MyVariant", "Ensembl", "none"}, keys(overview.Sources))
		assert.Equal(t, 2, overview.Sources[0].Count)

		assert.Equal(t, "pathogenic", overview.Significances[0].Key)
		assert.Equal(t, "Pathogenic", overview.Significances[0].Label)
		assert.Equal(t, 2, overview.Significances[0].Count)
		assert.Contains(t, keys(overview.Significances), "likely benign")
		assert.Contains(t, keys(overview.Significances), "not reported")

		assert.Equal(t, "chr1", overview.Positions[0].Chromosome)
		assert.Equal(t, 100, overview.Positions[1].Position)
		assert.Equal(t, 300, overview.Positions[2].Position)
		assert.Equal(t, "chrX", overview.Positions[4].Chromosome)
	})

	t.Run("should return empty, non-nil lists for no records", func(t *testing.T) {
		overview := GetVariantsOverview(uuid.New(), nil)

		assert.Equal(t, 0, overview.VariantCount)
		assert.NotNil(t, overview.Chromosomes)
		assert.NotNil(t, overview.Sources)
		assert.NotNil(t, overview.Significances)
		assert.NotNil(t, overview.Positions)
	})
}

func keys(buckets []dtos.CountBucket) []string {
	out := []string{}
	for _, bucket := range buckets {
		out = append(out, bucket.Key)
	}
	return out
}
