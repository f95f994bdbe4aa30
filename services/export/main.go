package exportService

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"varanno/api/models"
	as "varanno/api/models/constants/annotation-source"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

const listSeparator = "; "

// Columns of the tabular export, in order.
var Columns = []string{
	"chromosome",
	"position",
	"reference_allele",
	"alternate_allele",
	"rsid",
	"annotation_source",
	"gene",
	"clinical_significance",
	"consequence",
	"link",
	"disease_associations",
	"clinical_trials",
}

// ToRow flattens a record into export column order.
func ToRow(r *models.VariantRecord) []string {
	source := ""
	if r.Source != as.None {
		source = string(r.Source)
	}

	return []string{
		r.Chromosome,
		strconv.Itoa(r.Position),
		r.ReferenceAllele,
		r.AlternateAllele,
		r.Rsid,
		source,
		r.Gene,
		r.ClinicalSignificance,
		r.Consequence,
		r.Link,
		strings.Join(r.DiseaseAssociations, listSeparator),
		strings.Join(r.ClinicalTrials, listSeparator),
	}
}

// ToDataFrame loads records into an all-string dataframe.
func ToDataFrame(records []*models.VariantRecord) dataframe.DataFrame {
	rows := [][]string{Columns}
	for _, r := range records {
		if r != nil {
			rows = append(rows, ToRow(r))
		}
	}

	return dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// literal "NA" and "NaN" are data here, not missing values
		dataframe.NaNValues([]string{}),
	)
}

// WriteCsv writes one row per record under a header row. No records
// still yields the header.
func WriteCsv(w io.Writer, records []*models.VariantRecord) error {
	nonNil := 0
	for _, r := range records {
		if r != nil {
			nonNil++
		}
	}

	// a dataframe needs at least one row
	if nonNil == 0 {
		cw := csv.NewWriter(w)
		if err := cw.Write(Columns); err != nil {
			return errors.Wrap(err, "writing csv header")
		}
		cw.Flush()
		return errors.Wrap(cw.Error(), "writing csv header")
	}

	df := ToDataFrame(records)
	if df.Err != nil {
		return errors.Wrap(df.Err, "building export table")
	}
	if err := df.WriteCSV(w); err != nil {
		return errors.Wrap(err, "writing csv")
	}
	return nil
}
