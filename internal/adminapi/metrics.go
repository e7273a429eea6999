package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/team2shop/storefront/internal/webserver"
	"github.com/team2shop/storefront/pkg/metrics"
)

var metricNames = map[string]string{
	"catalog_query":    metrics.CatalogQuery,
	"catalog_mutation": metrics.CatalogMutation,
	"review_fetch":     metrics.ReviewFetch,
	"review_synth":     metrics.ReviewSynth,
	"cpuuse":           metrics.SystemCpuuse,
	"memuse":           metrics.SystemMemuse,
}

// metricRange returns raw samples for one metric over the requested
// window (hours query param, default 24).
func metricRange(c echo.Context) error {
	name, ok := metricNames[c.Param("metric")]
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Unknown metric", nil)
	}

	hours := cast.ToInt(c.QueryParam("hours"))
	if hours < 1 {
		hours = 24
	}
	end := time.Now().Unix()
	start := end - int64(hours)*3600

	points, err := metrics.Range(name, start, end)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Metric query failed", err.Error())
	}
	type sample struct {
		Timestamp int64   `json:"timestamp"`
		Value     float64 `json:"value"`
	}
	out := make([]sample, 0, len(points))
	for _, p := range points {
		out = append(out, sample{Timestamp: p.Timestamp, Value: p.Value})
	}
	return webserver.OK(c, out)
}
