package middleware

import (
	"fmt"
	"net/http"

	"varanno/api/contexts"
	"varanno/api/models/dtos/errors"
	"varanno/api/services/intake"

	"github.com/labstack/echo"
)

/*
	Echo middleware to ensure a multipart `file` part with an accepted
	extension was uploaded
*/
func MandateUploadedFile(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		gc := c.(*contexts.VarannoContext)

		fileHeader, err := c.FormFile("file")
		if err != nil || fileHeader == nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest("Missing 'file' upload!"))
		}

		format, err := intake.DetectFormat(fileHeader.Filename)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(err.Error()))
		}

		if maxMb := gc.Config.Api.MaxUploadSizeMb; maxMb > 0 && fileHeader.Size > maxMb<<20 {
			return c.JSON(http.StatusRequestEntityTooLarge, errors.CreateSimpleRequestEntityTooLarge(
				fmt.Sprintf("%s is larger than the %d MB limit", fileHeader.Filename, maxMb)))
		}

		gc.Upload = fileHeader
		gc.UploadType = format
		return next(c)
	}
}
