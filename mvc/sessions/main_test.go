package sessions

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"varanno/api/contexts"
	gam "varanno/api/middleware"
	"varanno/api/models"
	sessionState "varanno/api/models/constants/session-state"
	s "varanno/api/models/sessions"
	exportService "varanno/api/services/export"
	"varanno/api/services/pipeline"
	sessionsService "varanno/api/services/sessions"
	"varanno/api/views"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

const sampleVcf = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO
chr1	100	.	A	G	50	PASS	.
chr2	200	.	C	T	50	PASS	.
`

func newTestContext(t *testing.T, method string, target string, body *bytes.Buffer, contentType string) (*contexts.VarannoContext, *httptest.ResponseRecorder) {
	cfg := &models.Config{}
	cfg.Api.WorkDirectory = t.TempDir()
	cfg.Api.MaxConcurrentSessions = 1
	cfg.Api.MaxUploadSizeMb = 1

	renderer, err := views.NewRenderer()
	assert.Nil(t, err)

	e := echo.New()
	e.Renderer = renderer

	// the tool checks are exercised through VarannoContext.Preflight
	pl := pipeline.NewPipeline(cfg, nil, nil)
	pl.Preflight = nil

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()

	return &contexts.VarannoContext{
		Context:        e.NewContext(req, rec),
		Config:         cfg,
		SessionService: sessionsService.NewSessionService(cfg, pl),
		PublishService: exportService.NewPublishService(nil, cfg),
	}, rec
}

func multipartUpload(t *testing.T, filename string, content string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	assert.Nil(t, err)
	_, err = part.Write([]byte(content))
	assert.Nil(t, err)
	assert.Nil(t, w.Close())
	return body, w.FormDataContentType()
}

func TestCreateSession(t *testing.T) {
	t.Run("should annotate an uploaded vcf and respond with the session", func(t *testing.T) {
		// set up
		body, contentType := multipartUpload(t, "calls.vcf", sampleVcf)
		gc, rec := newTestContext(t, http.MethodPost, "/sessions", body, contentType)

		// perform
		err := gam.MandateUploadedFile(CreateSession)(gc)

		// verify
		assert.Nil(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var dto s.SessionResponseDTO
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, sessionState.Done, dto.State)
		assert.Equal(t, 2, dto.VariantCount)
		assert.Equal(t, "calls.vcf", dto.Filename)

		stored, ok := gc.SessionService.Get(dto.Id)
		assert.True(t, ok)
		assert.Len(t, stored.Records, 2)
	})

	t.Run("should redirect to the result page when asked to", func(t *testing.T) {
		// set up
		body, contentType := multipartUpload(t, "calls.vcf", sampleVcf)
		gc, rec := newTestContext(t, http.MethodPost, "/sessions?redirect=true", body, contentType)

		// perform
		err := gam.MandateUploadedFile(CreateSession)(gc)

		// verify
		assert.Nil(t, err)
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		all := gc.SessionService.List()
		assert.Len(t, all, 1)
		assert.Equal(t, "/sessions/"+all[0].Id.String()+"/view", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("should reject an unsupported extension", func(t *testing.T) {
		// set up
		body, contentType := multipartUpload(t, "notes.txt", "hello")
		gc, rec := newTestContext(t, http.MethodPost, "/sessions", body, contentType)

		// perform
		err := gam.MandateUploadedFile(CreateSession)(gc)

		// verify
		assert.Nil(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, gc.SessionService.List())
	})

	t.Run("should refuse reads when tool prerequisites are missing", func(t *testing.T) {
		// set up
		body, contentType := multipartUpload(t, "sample.fastq", "@r1\nACGT\n+\nIIII\n")
		gc, rec := newTestContext(t, http.MethodPost, "/sessions", body, contentType)
		gc.Preflight = func(*models.Config) error { return errors.New("bwa not found") }

		// perform
		err := gam.MandateUploadedFile(CreateSession)(gc)

		// verify
		assert.Nil(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "bwa not found")
		assert.Empty(t, gc.SessionService.List())
	})

	t.Run("should show the error on the upload page when redirecting", func(t *testing.T) {
		// set up
		body, contentType := multipartUpload(t, "sample.fastq", "@r1\nACGT\n+\nIIII\n")
		gc, rec := newTestContext(t, http.MethodPost, "/sessions?redirect=true", body, contentType)
		gc.Preflight = func(*models.Config) error { return errors.New("bwa not found") }

		// perform
		err := gam.MandateUploadedFile(CreateSession)(gc)

		// verify
		assert.Nil(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
		assert.Nil(t, docErr)
		assert.Contains(t, doc.Find("p.error").Text(), "bwa not found")
	})

	t.Run("should fail the session on an empty read file", func(t *testing.T) {
		// set up
		body, contentType := multipartUpload(t, "sample.fasta", "")
		gc, rec := newTestContext(t, http.MethodPost, "/sessions", body, contentType)
		gc.Preflight = func(*models.Config) error { return nil }

		// perform
		err := gam.MandateUploadedFile(CreateSession)(gc)

		// verify
		assert.Nil(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		all := gc.SessionService.List()
		assert.Len(t, all, 1)
		assert.Equal(t, sessionState.Error, all[0].State)
	})
}

func TestSessionEndpoints(t *testing.T) {
	t.Run("should list, get and delete sessions", func(t *testing.T) {
		// set up
		gc, rec := newTestContext(t, http.MethodGet, "/sessions", nil, "")
		created, err := gc.SessionService.Create("calls.vcf")
		assert.Nil(t, err)

		// perform
		listErr := GetSessions(gc)

		// verify
		assert.Nil(t, listErr)
		var listed []s.SessionResponseDTO
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Len(t, listed, 1)
		assert.Equal(t, created.Id, listed[0].Id)

		// perform
		gc.Session = *created
		deleteRec := httptest.NewRecorder()
		gc.Context = echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), deleteRec)
		deleteErr := DeleteSession(gc)

		// verify
		assert.Nil(t, deleteErr)
		assert.Equal(t, http.StatusNoContent, deleteRec.Code)
		_, ok := gc.SessionService.Get(created.Id)
		assert.False(t, ok)
		assert.NoDirExists(t, created.WorkDirectory)
	})
}
