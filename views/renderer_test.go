package views

import (
	"bytes"
	"testing"
	"time"

	"varanno/api/models"
	as "varanno/api/models/constants/annotation-source"
	sessionState "varanno/api/models/constants/session-state"
	"varanno/api/models/sessions"
	variantsService "varanno/api/services/variants"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func render(t *testing.T, name string, data interface{}) *goquery.Document {
	r, err := NewRenderer()
	assert.Nil(t, err)

	var buf bytes.Buffer
	assert.Nil(t, r.Render(&buf, name, data, nil))

	doc, err := goquery.NewDocumentFromReader(&buf)
	assert.Nil(t, err)
	return doc
}

func doneSession(records []*models.VariantRecord) sessions.Session {
	return sessions.Session{
		Id:        uuid.New(),
		Filename:  "calls.vcf",
		State:     sessionState.Done,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Records:   records,
	}
}

func TestSessionPage(t *testing.T) {
	t.Run("should render a table row and chart bars per variant", func(t *testing.T) {
		// set up
		annotated := models.NewVariantRecord("chr1", 169549811, "C", "T", "rs6025")
		annotated.Source = as.MyVariant
		annotated.Gene = "F5"
		annotated.Link = "https://www.ncbi.nlm.nih.gov/clinvar/variation/642/"
		records := []*models.VariantRecord{
			annotated,
			models.NewVariantRecord("chr2", 1000, "A", "G", ""),
		}
		session := doneSession(records)
		page := NewSessionPage(session, variantsService.GetVariantsOverview(session.Id, records), false)

		// perform
		doc := render(t, "session.html", page)

		// verify
		assert.Equal(t, 2, doc.Find("tr.variant").Length())
		assert.Equal(t, "F5", doc.Find("tr.variant").First().Find("td.gene").Text())
		assert.Equal(t, "MyVariant", doc.Find("tr.variant").First().Find("td.source").Text())
		assert.Equal(t, "none", doc.Find("tr.variant").Last().Find("td.source").Text())

		href, _ := doc.Find("tr.variant a").Attr("href")
		assert.Equal(t, annotated.Link, href)

		assert.Equal(t, 2, doc.Find("#charts figure").First().Find("g.bar").Length())
		assert.Equal(t, 2, doc.Find("circle.dot").Length())
		assert.Equal(t, 1, doc.Find("a#export").Length())
		assert.Equal(t, 0, doc.Find("button#publish").Length())
	})

	t.Run("should render an empty session without failing", func(t *testing.T) {
		// set up
		session := doneSession(nil)
		page := NewSessionPage(session, variantsService.GetVariantsOverview(session.Id, nil), true)

		// perform
		doc := render(t, "session.html", page)

		// verify
		assert.Equal(t, 0, doc.Find("tr.variant").Length())
		assert.Contains(t, doc.Find("#variants .empty").Text(), "No variants")
		assert.Equal(t, 0, doc.Find("g.bar").Length())
		assert.Equal(t, 1, doc.Find("button#publish").Length())
	})

	t.Run("should show tool output of a failed session", func(t *testing.T) {
		session := sessions.Session{
			Id:         uuid.New(),
			Filename:   "reads.fq",
			State:      sessionState.Error,
			Message:    "bwa mem exited with status 1",
			ToolOutput: "[E::bwa_idx_load] fail to locate the index files",
		}

		doc := render(t, "session.html", NewSessionPage(session, variantsService.GetVariantsOverview(session.Id, nil), false))

		assert.Contains(t, doc.Find("pre.tool-output").Text(), "fail to locate the index files")
		assert.Equal(t, "Error", doc.Find("strong.state").Text())
		assert.Equal(t, 0, doc.Find("#charts").Length())
	})
}

func TestIndexPage(t *testing.T) {
	t.Run("should list sessions", func(t *testing.T) {
		session := doneSession(nil)

		doc := render(t, "index.html", IndexPage{
			Sessions:           []sessions.SessionResponseDTO{session.ToResponseDTO()},
			AcceptedExtensions: ".vcf, .fastq",
		})

		assert.Equal(t, 1, doc.Find("tr.session").Length())
		href, _ := doc.Find("tr.session a").Attr("href")
		assert.Equal(t, "/sessions/"+session.Id.String()+"/view", href)
	})

	t.Run("should render without sessions", func(t *testing.T) {
		doc := render(t, "index.html", IndexPage{})

		assert.Equal(t, 0, doc.Find("tr.session").Length())
		assert.Equal(t, 1, doc.Find("form input[type=file]").Length())
	})
}

func TestBuildCharts(t *testing.T) {
	t.Run("should scale bars to the largest count", func(t *testing.T) {
		records := []*models.VariantRecord{
			models.NewVariantRecord("1", 10, "A", "G", ""),
			models.NewVariantRecord("1", 20, "A", "G", ""),
			models.NewVariantRecord("2", 30, "A", "G", ""),
		}

		charts := BuildCharts(variantsService.GetVariantsOverview(uuid.Nil, records))

		assert.Len(t, charts.Chromosomes.Bars, 2)
		assert.Equal(t, plotWidth, charts.Chromosomes.Bars[0].Width)
		assert.Equal(t, plotWidth/2, charts.Chromosomes.Bars[1].Width)
		assert.Len(t, charts.Positions.Rows, 2)
		assert.Equal(t, labelWidth+plotWidth, charts.Positions.Dots[1].X)
	})

	t.Run("should place dots for chromosome-scale positions", func(t *testing.T) {
		records := []*models.VariantRecord{
			models.NewVariantRecord("1", 124000000, "A", "G", ""),
			models.NewVariantRecord("1", 248000000, "A", "G", ""),
		}

		charts := BuildCharts(variantsService.GetVariantsOverview(uuid.Nil, records))

		assert.Len(t, charts.Positions.Dots, 2)
		assert.Equal(t, labelWidth+plotWidth/2, charts.Positions.Dots[0].X)
		assert.Equal(t, labelWidth+plotWidth, charts.Positions.Dots[1].X)
	})
}
