package workflows

import (
	"net/http"
	"strings"

	"varanno/api/contexts"
	"varanno/api/models/dtos/errors"
	w "varanno/api/workflows"

	"github.com/labstack/echo"
)

func WorkflowsGet(c echo.Context) error {
	cfg := c.(*contexts.VarannoContext).Config
	return c.JSON(http.StatusOK, w.Describe(strings.TrimSpace(cfg.Tools.DbsnpPath) != ""))
}

func WorkflowGet(c echo.Context) error {
	cfg := c.(*contexts.VarannoContext).Config
	name := c.Param("name")

	for _, p := range w.Describe(strings.TrimSpace(cfg.Tools.DbsnpPath) != "") {
		if p.Name == name {
			return c.JSON(http.StatusOK, p)
		}
	}
	return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound("Invalid Request! Please specify a known pipeline; example : /workflows/reads"))
}
