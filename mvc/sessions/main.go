package sessions

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"varanno/api/contexts"
	fileFormat "varanno/api/models/constants/file-format"
	"varanno/api/models/dtos"
	"varanno/api/models/dtos/errors"
	s "varanno/api/models/sessions"
	"varanno/api/services/intake"
	"varanno/api/services/tools"
	"varanno/api/views"

	"github.com/labstack/echo"
	pkgErrors "github.com/pkg/errors"
)

// CreateSession saves the uploaded file into a new session and runs it
// through the pipeline before responding.
func CreateSession(c echo.Context) error {
	fmt.Printf("[%s] - CreateSession hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)
	cfg := gc.Config
	redirect := wantsRedirect(c)

	// reads need the aligner and caller; fail before touching the file
	if fileFormat.IsReads(gc.UploadType) && gc.Preflight != nil {
		if err := gc.Preflight(cfg); err != nil {
			fmt.Printf("[%s] - Preflight failed : %v\n", time.Now(), err)
			return respondError(c, redirect, http.StatusServiceUnavailable, errors.CreateSimpleServiceUnavailable(err.Error()))
		}
	}

	session, err := gc.SessionService.Create(gc.Upload.Filename)
	if err != nil {
		return respondError(c, redirect, http.StatusInternalServerError, errors.CreateSimpleInternalServerError(err.Error()))
	}

	src, err := gc.Upload.Open()
	if err != nil {
		gc.SessionService.Fail(session.Id, err)
		return respondError(c, redirect, http.StatusBadRequest, errors.CreateSimpleBadRequest(err.Error()))
	}
	defer src.Close()

	upload, err := intake.Save(src, session.WorkDirectory, gc.Upload.Filename, cfg.Api.MaxUploadSizeMb<<20)
	if err != nil {
		gc.SessionService.Fail(session.Id, err)
		if pkgErrors.Is(err, intake.ErrTooLarge) {
			return respondError(c, redirect, http.StatusRequestEntityTooLarge, errors.CreateSimpleRequestEntityTooLarge(err.Error()))
		}
		return respondError(c, redirect, http.StatusBadRequest, errors.CreateSimpleBadRequest(err.Error()))
	}

	processErr := gc.SessionService.Process(c.Request().Context(), session.Id, upload)

	// the result page shows failures as well as results
	if redirect {
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/sessions/%s/view", session.Id))
	}

	if processErr != nil {
		var toolErr *tools.ToolError
		var preflightErr *tools.PreflightError
		switch {
		case pkgErrors.As(processErr, &toolErr):
			return c.JSON(http.StatusUnprocessableEntity, errors.CreateToolFailure(processErr.Error(), toolErr.Stderr))
		case pkgErrors.As(processErr, &preflightErr):
			return c.JSON(http.StatusServiceUnavailable, errors.CreateSimpleServiceUnavailable(processErr.Error()))
		case pkgErrors.Is(processErr, intake.ErrNoSequences), pkgErrors.Is(processErr, intake.ErrUnsupportedFormat):
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(processErr.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError(processErr.Error()))
		}
	}

	done, _ := gc.SessionService.Get(session.Id)
	return c.JSON(http.StatusCreated, done.ToResponseDTO())
}

func GetSessions(c echo.Context) error {
	fmt.Printf("[%s] - GetSessions hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)

	all := gc.SessionService.List()
	dtoList := make([]s.SessionResponseDTO, 0, len(all))
	for _, session := range all {
		dtoList = append(dtoList, session.ToResponseDTO())
	}
	return c.JSON(http.StatusOK, dtoList)
}

func GetSession(c echo.Context) error {
	fmt.Printf("[%s] - GetSession hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)

	return c.JSON(http.StatusOK, gc.Session.ToResponseDTO())
}

func DeleteSession(c echo.Context) error {
	fmt.Printf("[%s] - DeleteSession hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)

	if err := gc.SessionService.Delete(gc.Session.Id); err != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError(err.Error()))
	}
	return c.NoContent(http.StatusNoContent)
}

func respondError(c echo.Context, redirect bool, status int, body dtos.GeneralErrorResponseDto) error {
	if !redirect {
		return c.JSON(status, body)
	}

	gc := c.(*contexts.VarannoContext)
	messages := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		messages = append(messages, e.Message)
	}

	page := views.NewIndexPage(gc.SessionService.List(), gc.PublishService.Enabled())
	page.Error = strings.Join(messages, " ")
	return c.Render(status, "index.html", page)
}

func wantsRedirect(c echo.Context) bool {
	redirect, err := strconv.ParseBool(c.QueryParam("redirect"))
	return err == nil && redirect
}
