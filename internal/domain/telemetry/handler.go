package telemetry

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/pkg/pagination"
)

// Handler exposes telemetry endpoints.
type Handler struct {
	svc *Service
}

// NewHandler returns a telemetry HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts telemetry routes on the given group. The WebSocket
// stream is mounted separately by the ws handler.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/telemetry/live", h.Live)
	g.POST("/telemetry/reading", h.CaptureReading)
	g.GET("/patients/:id/readings", h.ListPatientReadings)
}

// Live handles GET /telemetry/live.
func (h *Handler) Live(c echo.Context) error {
	readings, err := h.svc.Live(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate live telemetry")
	}
	if readings == nil {
		readings = []*LiveReading{}
	}
	return c.JSON(http.StatusOK, readings)
}

// CaptureReading handles POST /telemetry/reading?patient_id=. Without a
// patient_id the first patient on file is used.
func (h *Handler) CaptureReading(c echo.Context) error {
	r, err := h.svc.Capture(c.Request().Context(), c.QueryParam("patient_id"))
	if errors.Is(err, ErrNoPatients) {
		return echo.NewHTTPError(http.StatusNotFound, "No patients found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to capture reading")
	}
	return c.JSON(http.StatusOK, r)
}

// ListPatientReadings handles GET /patients/:id/readings.
func (h *Handler) ListPatientReadings(c echo.Context) error {
	params := pagination.FromContextDefault(c, 50)
	readings, err := h.svc.History(c.Request().Context(), c.Param("id"), int64(params.Limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list readings")
	}
	if readings == nil {
		readings = []*Reading{}
	}
	return c.JSON(http.StatusOK, readings)
}
