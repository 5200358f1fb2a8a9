package carehub

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "carehub"

type metrics struct {
	notFound *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		notFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carehub_not_found_total",
			Help: "Pages answered with 404 because a catalog record did not resolve.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.notFound)
	return m
}

func (a *App) metricsMiddleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 metricsSubsystem,
		Registerer:                a.registry,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/metrics" || strings.HasPrefix(path, "/public/")
		},
	})
}

func (a *App) handleMetrics() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: a.registry,
	})
}
