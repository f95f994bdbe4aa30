package contexts

import (
	"mime/multipart"

	"varanno/api/models"
	"varanno/api/models/constants"
	"varanno/api/models/sessions"
	exportService "varanno/api/services/export"
	sessionsService "varanno/api/services/sessions"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  the session registry and other variables
	VarannoContext struct {
		echo.Context
		Es7Client      *es7.Client
		Config         *models.Config
		SessionService *sessionsService.SessionService
		PublishService *exportService.PublishService

		// Preflight reports missing tool prerequisites; nil means none
		Preflight func(cfg *models.Config) error

		// set by middleware
		Session    sessions.Session
		Upload     *multipart.FileHeader
		UploadType constants.FileFormat
		Chromosome string
		LowerBound int
		UpperBound int
	}
)
