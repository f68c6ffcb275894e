package alert

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/pkg/pagination"
)

// Handler exposes alert endpoints.
type Handler struct {
	svc *Service
}

// NewHandler returns an alert HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts alert routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/alerts", h.ListAlerts)
	g.GET("/alerts/recent", h.RecentAlerts)
	g.GET("/patients/:id/alerts", h.ListPatientAlerts)
}

// ListAlerts handles GET /alerts.
func (h *Handler) ListAlerts(c echo.Context) error {
	params := pagination.FromContextDefault(c, 50)
	alerts, err := h.svc.List(c.Request().Context(), int64(params.Limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list alerts")
	}
	if alerts == nil {
		alerts = []*Alert{}
	}
	return c.JSON(http.StatusOK, alerts)
}

// RecentAlerts handles GET /alerts/recent.
func (h *Handler) RecentAlerts(c echo.Context) error {
	alerts, err := h.svc.Recent(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list recent alerts")
	}
	if alerts == nil {
		alerts = []*Alert{}
	}
	return c.JSON(http.StatusOK, alerts)
}

// ListPatientAlerts handles GET /patients/:id/alerts.
func (h *Handler) ListPatientAlerts(c echo.Context) error {
	params := pagination.FromContextDefault(c, 20)
	alerts, err := h.svc.ListByPatient(c.Request().Context(), c.Param("id"), int64(params.Limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list patient alerts")
	}
	if alerts == nil {
		alerts = []*Alert{}
	}
	return c.JSON(http.StatusOK, alerts)
}
