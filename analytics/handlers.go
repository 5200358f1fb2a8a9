package analytics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the analytics JSON API used by the admin dashboard.
type Handler struct {
	store  *Store
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a new analytics handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger, now: time.Now}
}

// RegisterRoutes mounts the API on g. Access control is the caller's job.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/api/stats", h.GetStats)
	g.GET("/api/top", h.GetTopPages)
}

// StatsResponse is the JSON response for stats endpoint.
type StatsResponse struct {
	Stats       *Stats `json:"stats"`
	PeriodName  string `json:"period_name"`
	PeriodDays  int    `json:"period_days"`
	Granularity string `json:"granularity"`
}

// GetStats returns analytics statistics as JSON.
func (h *Handler) GetStats(c echo.Context) error {
	period := ParsePeriod(c.QueryParam("period"))
	from, to := period.Range(h.now())

	stats, err := h.store.GetStats(c.Request().Context(), from, to, period.Granularity)
	if err != nil {
		h.logger.Error("get stats", zap.String("period", period.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, StatsResponse{
		Stats:       stats,
		PeriodName:  period.Name,
		PeriodDays:  period.Days,
		Granularity: period.Granularity.String(),
	})
}

const maxTopLimit = 50

// GetTopPages returns the most viewed pages of one kind (all kinds when the
// kind parameter is empty) for a period.
func (h *Handler) GetTopPages(c echo.Context) error {
	kind := c.QueryParam("kind")
	switch kind {
	case "", KindBlog, KindCondition, KindCare, KindLabs, KindPage:
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown kind"})
	}

	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = min(n, maxTopLimit)
	}

	period := ParsePeriod(c.QueryParam("period"))
	from, to := period.Range(h.now())
	pages, err := h.store.TopPages(c.Request().Context(), kind, from, to, limit)
	if err != nil {
		h.logger.Error("top pages", zap.String("kind", kind), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, pages)
}
