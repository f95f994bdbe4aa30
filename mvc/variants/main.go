package variants

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"varanno/api/contexts"
	sessionState "varanno/api/models/constants/session-state"
	"varanno/api/models/dtos"
	"varanno/api/models/dtos/errors"
	"varanno/api/mvc"
	exportService "varanno/api/services/export"
	variantService "varanno/api/services/variants"

	"github.com/labstack/echo"
)

func GetSessionVariants(c echo.Context) error {
	fmt.Printf("[%s] - GetSessionVariants hit!\n", time.Now())
	session, chromosome, lowerBound, upperBound := mvc.RetrieveCommonElements(c)

	results := mvc.FilterRecords(session.Records, chromosome, lowerBound, upperBound)

	return c.JSON(http.StatusOK, dtos.VariantsResponseDTO{
		Status:    http.StatusOK,
		Message:   fmt.Sprintf("%s: %s", session.State, session.Message),
		SessionId: session.Id,
		Count:     len(results),
		Results:   results,
	})
}

func GetSessionOverview(c echo.Context) error {
	fmt.Printf("[%s] - GetSessionOverview hit!\n", time.Now())
	session, chromosome, lowerBound, upperBound := mvc.RetrieveCommonElements(c)

	results := mvc.FilterRecords(session.Records, chromosome, lowerBound, upperBound)

	return c.JSON(http.StatusOK, variantService.GetVariantsOverview(session.Id, results))
}

// ExportSessionCsv streams the annotated records as a csv attachment.
func ExportSessionCsv(c echo.Context) error {
	fmt.Printf("[%s] - ExportSessionCsv hit!\n", time.Now())
	session, chromosome, lowerBound, upperBound := mvc.RetrieveCommonElements(c)

	if session.State != sessionState.Done {
		return c.JSON(http.StatusConflict, errors.CreateSimpleBadRequest(
			fmt.Sprintf("session %s is %s; nothing to export yet", session.Id, session.State)))
	}

	results := mvc.FilterRecords(session.Records, chromosome, lowerBound, upperBound)

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", exportFilename(session.Filename)))
	c.Response().WriteHeader(http.StatusOK)

	return exportService.WriteCsv(c.Response(), results)
}

func PublishSession(c echo.Context) error {
	fmt.Printf("[%s] - PublishSession hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)
	session := gc.Session

	if !gc.PublishService.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, errors.CreateSimpleServiceUnavailable(exportService.ErrPublishingDisabled.Error()))
	}
	if session.State != sessionState.Done {
		return c.JSON(http.StatusConflict, errors.CreateSimpleBadRequest(
			fmt.Sprintf("session %s is %s; nothing to publish yet", session.Id, session.State)))
	}

	result, err := gc.PublishService.Publish(c.Request().Context(), session)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError(err.Error()))
	}

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/sessions/%s/view", session.Id))
	}
	return c.JSON(http.StatusOK, result)
}

func GetPublishedVariants(c echo.Context) error {
	fmt.Printf("[%s] - GetPublishedVariants hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)

	if !gc.PublishService.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, errors.CreateSimpleServiceUnavailable(exportService.ErrPublishingDisabled.Error()))
	}

	results, err := gc.PublishService.Published(c.Request().Context(), gc.Session.Id.String())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError(err.Error()))
	}

	return c.JSON(http.StatusOK, dtos.PublishedVariantsResponseDTO{
		SessionId: gc.Session.Id,
		Count:     len(results),
		Results:   results,
	})
}

func exportFilename(uploaded string) string {
	base := filepath.Base(uploaded)
	for _, ext := range []string{".gz", ".bgz", ".vcf", ".fastq", ".fasta", ".fq", ".fa", ".fna"} {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		base = "variants"
	}
	return base + ".annotated.csv"
}
