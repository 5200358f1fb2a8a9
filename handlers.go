package carehub

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/carehub/analytics"
)

const (
	popularDays  = 30
	popularLimit = 5
)

func (a *App) handleHome(c echo.Context) error {
	page := BuildHome(a.Catalog, a.popularConditions(c))
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.Home(page))
}

// popularConditions ranks condition pages by recent views. Analytics is
// optional, so failures only drop the section.
func (a *App) popularConditions(c echo.Context) []analytics.PageStat {
	if a.analyticsStore == nil {
		return nil
	}
	from, to := analytics.Period{Days: popularDays, Granularity: analytics.Daily}.Range(time.Now())
	stats, err := a.analyticsStore.TopPages(c.Request().Context(), analytics.KindCondition, from, to, popularLimit)
	if err != nil {
		a.Logger.Warn("popular conditions", zap.Error(err))
		return nil
	}
	return stats
}

func (a *App) handleBlogIndex(c echo.Context) error {
	page := BuildBlogIndex(a.Catalog)
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.BlogIndex(page))
}

func (a *App) handleBlogPost(c echo.Context) error {
	page, err := BuildBlogPage(a.Catalog, c.Param("slug"), a.Articles)
	if err != nil {
		return a.pageError(c, err)
	}
	if page.ReviewedBy == "" {
		page.ReviewedBy = a.Config.DefaultReviewer
	}
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.BlogPost(page))
}

func (a *App) handleConditionIndex(c echo.Context) error {
	page := BuildConditionIndex(a.Catalog, c.QueryParam("q"), c.QueryParam("category"))
	a.fillMeta(&page.Meta)
	if c.QueryParam("partial") == "list" {
		return Render(c, a.Views.ConditionList(page))
	}
	return Render(c, a.Views.ConditionIndex(page))
}

func (a *App) handleCondition(c echo.Context) error {
	page, err := BuildConditionPage(a.Catalog, c.Param("slug"))
	if err != nil {
		return a.pageError(c, err)
	}
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.Condition(page))
}

func (a *App) handleCareIndex(c echo.Context) error {
	page := BuildCareIndex(a.Catalog)
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.CareIndex(page))
}

func (a *App) handleCare(c echo.Context) error {
	page, err := BuildCarePage(a.Catalog, c.Param("slug"))
	if err != nil {
		return a.pageError(c, err)
	}
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.Care(page))
}

func (a *App) handleLabsIndex(c echo.Context) error {
	page := BuildLabsIndex(a.Catalog)
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.LabsIndex(page))
}

func (a *App) handleLabs(c echo.Context) error {
	page, err := BuildLabsPage(a.Catalog, c.Param("slug"))
	if err != nil {
		return a.pageError(c, err)
	}
	a.fillMeta(&page.Meta)
	return Render(c, a.Views.Labs(page))
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Catalog.LatestPosts(-1))
}

func (a *App) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "ok",
		"conditions": len(a.Catalog.Conditions()),
		"posts":      len(a.Catalog.BlogPosts()),
		"analytics":  a.analyticsStore != nil,
	})
}

// pageError answers a failed page build. Missing records become the 404 page
// and are counted by kind; anything else goes to the error handler.
func (a *App) pageError(c echo.Context, err error) error {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return err
	}
	a.metrics.notFound.WithLabelValues(nf.Kind).Inc()
	a.Logger.Debug("page not found",
		zap.String("path", c.Request().URL.Path),
		zap.String("kind", nf.Kind),
		zap.String("slug", nf.Slug),
	)
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
}

// fillMeta completes the site-wide parts of a page's metadata.
func (a *App) fillMeta(m *PageMeta) {
	m.SiteName = a.Config.Name
	if m.Description == "" {
		m.Description = a.Config.Description
	}
	m.URL = BuildURL(a.Config.URL, strings.Trim(m.Path, "/"))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", code),
			zap.Error(err),
		)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
