package stats

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler exposes the collection endpoint and the admin query API.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes wires the public beacon endpoint and the auth-protected
// admin API onto the Echo instance. authMiddleware guards the admin routes.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/stats/visit", h.handleVisit)

	admin := e.Group("/admin/stats/api", authMiddleware)
	admin.GET("/top", h.handleTopPaths)
	admin.GET("/total", h.handleTotal)
}

func (h *Handler) handleVisit(c echo.Context) error {
	var req VisitRequest
	if err := c.Bind(&req); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if req.Path == "" || !strings.HasPrefix(req.Path, "/") {
		return c.NoContent(http.StatusBadRequest)
	}
	if req.SessionID == "" {
		req.SessionID = NewSessionID()
	}
	visit := Visit{
		SessionID: req.SessionID,
		IPHash:    HashIP(c.RealIP()),
		Path:      req.Path,
		Referrer:  req.Referrer,
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.RecordVisit(visit); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) handleTopPaths(c echo.Context) error {
	since, limit := queryWindow(c)
	counts, err := h.store.TopPaths(since, limit)
	if err != nil {
		return err
	}
	if counts == nil {
		counts = []PathCount{}
	}
	return c.JSON(http.StatusOK, counts)
}

func (h *Handler) handleTotal(c echo.Context) error {
	since, _ := queryWindow(c)
	n, err := h.store.CountVisits(since)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"total": n})
}

// queryWindow parses ?days= and ?limit= with sane defaults.
func queryWindow(c echo.Context) (time.Time, int) {
	days := 30
	if v, err := strconv.Atoi(c.QueryParam("days")); err == nil && v > 0 && v <= 365 {
		days = v
	}
	limit := 10
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return time.Now().AddDate(0, 0, -days).UTC(), limit
}
