package pages

import (
	"fmt"
	"net/http"
	"time"

	"varanno/api/contexts"
	variantService "varanno/api/services/variants"
	"varanno/api/views"

	"github.com/labstack/echo"
)

func GetIndexPage(c echo.Context) error {
	fmt.Printf("[%s] - Root hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)

	return c.Render(http.StatusOK, "index.html", views.NewIndexPage(gc.SessionService.List(), gc.PublishService.Enabled()))
}

func GetSessionView(c echo.Context) error {
	fmt.Printf("[%s] - GetSessionView hit!\n", time.Now())
	gc := c.(*contexts.VarannoContext)
	session := gc.Session

	overview := variantService.GetVariantsOverview(session.Id, session.Records)
	return c.Render(http.StatusOK, "session.html", views.NewSessionPage(session, overview, gc.PublishService.Enabled()))
}
