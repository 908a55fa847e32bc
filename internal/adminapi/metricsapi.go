package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glamease/glamease/internal/webserver"
	"github.com/glamease/glamease/pkg/metrics"
)

// metric names exposed to the admin UI
var exposedMetrics = map[string]bool{
	"system_cpuuse":          true,
	"system_memuse":          true,
	"glamease_cpuuse":        true,
	"glamease_memuse":        true,
	"http_requests":          true,
	"http_request_errors":    true,
	"booking_reminders_sent": true,
}

type metricPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

func registerMetricsRoutes() {
	webserver.ApiGET("/metrics/:name", queryMetric, requireAdmin)
}

// queryMetric returns the stored samples for one metric. The default
// range is the trailing 24 hours; hours= overrides it up to the 7 day
// storage retention.
func queryMetric(c echo.Context) error {
	name := c.Param("name")
	if !exposedMetrics[name] {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Unknown metric", nil)
	}

	hours := 24
	if h, err := strconv.Atoi(c.QueryParam("hours")); err == nil && h > 0 && h <= 24*7 {
		hours = h
	}

	end := time.Now()
	start := end.Add(-time.Duration(hours) * time.Hour)

	points, err := metrics.QueryRange(name, start, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to query metric", err.Error())
	}

	out := make([]metricPoint, 0, len(points))
	for _, p := range points {
		out = append(out, metricPoint{Timestamp: p.Timestamp, Value: p.Value})
	}
	return ok(c, out)
}
