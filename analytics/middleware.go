package analytics

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Middleware records a View for every successful GET of a catalog page.
// Bots, Do Not Track or Global Privacy Control requests and partial
// fragment requests are skipped. Recording failures are logged and never
// affect the response.
func Middleware(store *Store, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil || !shouldRecord(c) {
				return err
			}

			req := c.Request()
			kind, slug := Classify(req.URL.Path)
			if kind == "" {
				return nil
			}
			ua := req.UserAgent()
			browser, os, device := ParseUserAgent(ua)
			view := View{
				VisitorID: store.VisitorID(c.RealIP(), ua),
				Kind:      kind,
				Slug:      slug,
				Path:      req.URL.Path,
				Browser:   browser,
				OS:        os,
				Device:    device,
				Referrer:  CleanReferrer(req.Referer(), req.Host),
				Timestamp: time.Now().UTC(),
			}
			if err := store.Record(req.Context(), view); err != nil {
				logger.Warn("record page view", zap.String("path", view.Path), zap.Error(err))
			}
			return nil
		}
	}
}

func shouldRecord(c echo.Context) bool {
	req := c.Request()
	switch {
	case req.Method != http.MethodGet:
		return false
	case c.Response().Status != http.StatusOK:
		return false
	case req.Header.Get("DNT") == "1", req.Header.Get("Sec-GPC") == "1":
		return false
	case req.URL.Query().Has("partial"):
		return false
	}
	return !IsBot(req.UserAgent())
}
