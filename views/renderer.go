package views

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"varanno/api/models"
	"varanno/api/models/constants"
	as "varanno/api/models/constants/annotation-source"
	fileFormat "varanno/api/models/constants/file-format"
	sessionState "varanno/api/models/constants/session-state"
	"varanno/api/models/dtos"
	"varanno/api/models/sessions"

	"github.com/labstack/echo"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

type (
	Renderer struct {
		templates *template.Template
	}

	IndexPage struct {
		Sessions           []sessions.SessionResponseDTO
		AcceptedExtensions string
		PublishingEnabled  bool
		Error              string
	}

	SessionPage struct {
		Session           sessions.SessionResponseDTO
		Records           []*models.VariantRecord
		Overview          dtos.OverviewDTO
		Charts            Charts
		PublishingEnabled bool
	}
)

var funcs = template.FuncMap{
	"sourceName": func(source constants.AnnotationSource) string {
		return as.ToDisplayString(source)
	},
	"join": strings.Join,
	"isDone": func(state constants.SessionState) bool {
		return state == sessionState.Done
	},
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parsing templates")
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func NewIndexPage(all []sessions.Session, publishingEnabled bool) IndexPage {
	dtoList := make([]sessions.SessionResponseDTO, 0, len(all))
	for _, session := range all {
		dtoList = append(dtoList, session.ToResponseDTO())
	}
	return IndexPage{
		Sessions:           dtoList,
		AcceptedExtensions: strings.Join(fileFormat.AcceptedExtensions(), ", "),
		PublishingEnabled:  publishingEnabled,
	}
}

func NewSessionPage(session sessions.Session, overview dtos.OverviewDTO, publishingEnabled bool) SessionPage {
	records := session.Records
	if records == nil {
		records = []*models.VariantRecord{}
	}
	return SessionPage{
		Session:           session.ToResponseDTO(),
		Records:           records,
		Overview:          overview,
		Charts:            BuildCharts(overview),
		PublishingEnabled: publishingEnabled,
	}
}
