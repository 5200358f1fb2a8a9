package carehub

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/carehub/analytics"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAnalyticsDashboard(c)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		a.Logger.Info("admin login", zap.String("ip", c.RealIP()))
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.Logger.Warn("admin login failed", zap.String("ip", c.RealIP()))
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// renderAnalyticsDashboard shows page-view statistics for the period in the
// query string. With analytics disabled the page renders without stats.
func (a *App) renderAnalyticsDashboard(c echo.Context) error {
	period := analytics.ParsePeriod(c.QueryParam("period"))
	page := AnalyticsPage{
		Meta:      PageMeta{Title: "Analytics", Path: "/admin/"},
		Period:    period.Name,
		Periods:   analytics.PeriodNames,
		CSRFToken: CsrfToken(c),
	}
	a.fillMeta(&page.Meta)

	if a.analyticsStore != nil {
		from, to := period.Range(time.Now().UTC())
		stats, err := a.analyticsStore.GetStats(c.Request().Context(), from, to, period.Granularity)
		if err != nil {
			return err
		}
		page.Stats = stats
	}
	return Render(c, a.Views.AdminAnalytics(page))
}
