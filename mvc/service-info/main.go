package serviceInfo

import (
	"net/http"

	"varanno/api/contexts"
	serviceInfo "varanno/api/models/constants/service-info"

	"github.com/labstack/echo"
)

// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
func GetServiceInfo(c echo.Context) error {
	cfg := c.(*contexts.VarannoContext).Config

	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": map[string]interface{}{
			"artifact": serviceInfo.SERVICE_ARTIFACT,
			"group":    serviceInfo.SERVICE_TYPE_NO_VER,
			"version":  cfg.SemVer,
		},
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"contactUrl":  cfg.ServiceContact,
		"version":     cfg.SemVer,
		"environment": map[string]interface{}{
			"assemblyId":        cfg.Tools.AssemblyId,
			"publishingEnabled": cfg.IsElasticsearchEnabled(),
		},
	})
}
