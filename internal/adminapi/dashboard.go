package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/glamease/glamease/internal/analytics"
	"github.com/glamease/glamease/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", getDashboard, requireAdmin)
}

// getDashboard recomputes the full analytics report for the requested
// time window. Unknown timeRange values fall back to the all-time view.
func getDashboard(c echo.Context) error {
	window := analytics.ParseWindow(c.QueryParam("timeRange"))
	data := GetApp(c).Analytics().ProcessDashboardData(c.Request().Context(), window)
	return ok(c, data)
}
