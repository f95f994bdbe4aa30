package annotation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	as "varanno/api/models/constants/annotation-source"
	assemblyId "varanno/api/models/constants/assembly-id"

	"github.com/stretchr/testify/assert"
)

const ncbiRefsnpBody = `{
  "refsnp_id": "6025",
  "primary_snapshot_data": {
    "allele_annotations": [
      {
        "clinical": [],
        "assembly_annotation": [{"genes": [{"locus": "F5", "rnas": [{"sequence_ontology": [{"name": "coding_sequence_variant"}]}]}]}]
      },
      {
        "clinical": [
          {"clinical_significances": ["pathogenic"], "disease_names": ["Thrombophilia due to factor V Leiden", "not provided"]},
          {"clinical_significances": ["risk-factor"], "disease_names": ["thrombophilia due to factor v leiden"]}
        ],
        "assembly_annotation": [{"genes": [{"locus": "F5", "rnas": [{"protein": {"sequence_ontology": [{"name": "missense_variant"}]}}]}]}]
      }
    ]
  }
}`

const myVariantBody = `{
  "took": 3, "total": 1,
  "hits": [{
    "_id": "chr1:g.169519049T>C",
    "clinvar": {
      "variant_id": 642,
      "gene": {"symbol": "F5"},
      "rcv": [
        {"clinical_significance": "Pathogenic", "conditions": {"name": "Thrombophilia due to factor V Leiden"}},
        {"clinical_significance": "risk factor", "conditions": [{"name": "Budd-Chiari syndrome"}]}
      ]
    },
    "cadd": {"consequence": ["NON_SYNONYMOUS", "DOWNSTREAM"]},
    "civic": {"evidence_items": [{"disease": {"name": "Venous Thromboembolism"}, "clinical_trials": [{"nct_id": "NCT01234567"}]}]}
  }]
}`

const ensemblBody = `{
  "name": "rs6025",
  "most_severe_consequence": "missense_variant",
  "clinical_significance": ["pathogenic", "risk factor"],
  "phenotypes": [
    {"trait": "Thrombophilia due to activated protein C resistance", "genes": "F5,SLC19A2"},
    {"trait": "Budd-Chiari syndrome", "genes": null}
  ]
}`

const ucscSearchBody = `{
  "genome": "hg38",
  "positionMatches": [{
    "trackName": "dbSnp155Composite",
    "matches": [{"position": "chr1:169,549,810-169,549,811", "posName": "rs6025"}]
  }]
}`

const ucscTrackBody = `{
  "track": "knownGene",
  "knownGene": [{"chrom": "chr1", "geneName": "F5", "name": "ENST00000367797.9"}]
}`

func serve(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range routes {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestNcbiProvider(t *testing.T) {
	t.Run("should normalize a refsnp document", func(t *testing.T) {
		// set up
		server := serve(t, map[string]string{"/refsnp/6025": ncbiRefsnpBody})
		provider := NewNcbiProvider(server.URL, server.Client(), "test")

		// perform
		ann, err := provider.Lookup(context.Background(), "rs6025")

		// verify
		assert.Nil(t, err)
		assert.Equal(t, "F5", ann.Gene)
		assert.Equal(t, "pathogenic", ann.ClinicalSignificance)
		assert.Equal(t, "coding_sequence_variant", ann.Consequence)
		assert.Equal(t, []string{"Thrombophilia due to factor V Leiden", "not provided"}, ann.DiseaseAssociations)
		assert.Equal(t, "https://www.ncbi.nlm.nih.gov/snp/rs6025", ann.Link)
	})

	t.Run("should reject ids that are not refsnp ids", func(t *testing.T) {
		provider := NewNcbiProvider("http://127.0.0.1:1", http.DefaultClient, "test")

		_, err := provider.Lookup(context.Background(), "COSV123")

		assert.NotNil(t, err)
	})

	t.Run("should fail on a non-success status", func(t *testing.T) {
		server := serve(t, map[string]string{})
		provider := NewNcbiProvider(server.URL, server.Client(), "test")

		_, err := provider.Lookup(context.Background(), "rs1")

		assert.NotNil(t, err)
	})
}

func TestMyVariantProvider(t *testing.T) {
	t.Run("should normalize the first hit", func(t *testing.T) {
		// set up
		server := serve(t, map[string]string{"/query": myVariantBody})
		provider := NewMyVariantProvider(server.URL, server.Client(), "test")

		// perform
		ann, err := provider.Lookup(context.Background(), "rs6025")

		// verify
		assert.Nil(t, err)
		assert.Equal(t, "F5", ann.Gene)
		assert.Equal(t, "Pathogenic", ann.ClinicalSignificance)
		assert.Equal(t, "NON_SYNONYMOUS", ann.Consequence)
		assert.Equal(t, []string{
			"Thrombophilia due to factor V Leiden",
			"Budd-Chiari syndrome",
			"Venous Thromboembolism",
		}, ann.DiseaseAssociations)
		assert.Equal(t, []string{"NCT01234567"}, ann.ClinicalTrials)
		assert.Equal(t, "https://www.ncbi.nlm.nih.gov/clinvar/variation/642/", ann.Link)
	})

	t.Run("should return an empty annotation when nothing matches", func(t *testing.T) {
		server := serve(t, map[string]string{"/query": `{"took": 1, "total": 0, "hits": []}`})
		provider := NewMyVariantProvider(server.URL, server.Client(), "test")

		ann, err := provider.Lookup(context.Background(), "rs0")

		assert.Nil(t, err)
		assert.True(t, ann.IsEmpty())
	})
}

func TestEnsemblProvider(t *testing.T) {
	t.Run("should normalize a variation document", func(t *testing.T) {
		// set up
		server := serve(t, map[string]string{"/variation/human/rs6025": ensemblBody})
		provider := NewEnsemblProvider(server.URL, server.Client(), "test")

		// perform
		ann, err := provider.Lookup(context.Background(), "rs6025")

		// verify
		assert.Nil(t, err)
		assert.Equal(t, "F5", ann.Gene)
		assert.Equal(t, "pathogenic", ann.ClinicalSignificance)
		assert.Equal(t, "missense_variant", ann.Consequence)
		assert.Equal(t, []string{
			"Thrombophilia due to activated protein C resistance",
			"Budd-Chiari syndrome",
		}, ann.DiseaseAssociations)
		assert.Empty(t, ann.ClinicalTrials)
	})
}

func TestUcscProvider(t *testing.T) {
	t.Run("should locate the rsid and read the overlapping gene", func(t *testing.T) {
		// set up
		server := serve(t, map[string]string{
			"/search":        ucscSearchBody,
			"/getData/track": ucscTrackBody,
		})
		provider := NewUcscProvider(server.URL, assemblyId.GRCh38, server.Client(), "test")

		// perform
		ann, err := provider.Lookup(context.Background(), "rs6025")

		// verify
		assert.Nil(t, err)
		assert.Equal(t, "F5", ann.Gene)
		assert.Equal(t, "", ann.ClinicalSignificance)
		assert.Contains(t, ann.Link, "db=hg38")
	})

	t.Run("should return an empty annotation when the search finds nothing", func(t *testing.T) {
		server := serve(t, map[string]string{"/search": `{"positionMatches": []}`})
		provider := NewUcscProvider(server.URL, assemblyId.GRCh37, server.Client(), "test")

		ann, err := provider.Lookup(context.Background(), "rs0")

		assert.Nil(t, err)
		assert.True(t, ann.IsEmpty())
	})

	t.Run("should not borrow the locus of a match named after something else", func(t *testing.T) {
		// set up
		server := serve(t, map[string]string{
			"/search": `{"positionMatches": [{"trackName": "knownGene",
				"matches": [{"position": "chr1:169,549,810-169,549,811", "posName": "F5"}]}]}`,
			"/getData/track": ucscTrackBody,
		})
		provider := NewUcscProvider(server.URL, assemblyId.GRCh38, server.Client(), "test")

		// perform
		ann, err := provider.Lookup(context.Background(), "rs6025")

		// verify
		assert.Nil(t, err)
		assert.True(t, ann.IsEmpty())
	})

	t.Run("should parse positions with separators", func(t *testing.T) {
		location, err := parseUcscPosition("chr1:169,549,810-169,549,811")

		assert.Nil(t, err)
		assert.Equal(t, "chr1", location.Chrom)
		assert.Equal(t, 169549810, location.Start)
		assert.Equal(t, 169549811, location.End)

		_, err = parseUcscPosition("nonsense")
		assert.NotNil(t, err)
	})
}

func TestResolverOverHttp(t *testing.T) {
	t.Run("should fall through to myvariant when ncbi is down", func(t *testing.T) {
		// set up
		down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer down.Close()
		up := serve(t, map[string]string{"/query": myVariantBody})

		resolver := NewResolver(2*time.Second,
			NewNcbiProvider(down.URL, down.Client(), "test"),
			NewMyVariantProvider(up.URL, up.Client(), "test"),
		)

		// perform
		ann := resolver.Resolve(context.Background(), "rs6025")

		// verify
		assert.Equal(t, as.MyVariant, ann.Source)
		assert.Equal(t, "F5", ann.Gene)
		assert.Equal(t, "Pathogenic", ann.ClinicalSignificance)
	})
}
