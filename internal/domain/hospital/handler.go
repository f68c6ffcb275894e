package hospital

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes hospital endpoints.
type Handler struct {
	svc *Service
}

// NewHandler returns a hospital HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts hospital routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/hospitals", h.ListHospitals)
	g.GET("/hospitals/:id", h.GetHospital)
	g.GET("/hospitals/:id/stats", h.GetHospitalStats)
}

// ListHospitals handles GET /hospitals.
func (h *Handler) ListHospitals(c echo.Context) error {
	hospitals, err := h.svc.List(c.Request().Context(), 100)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list hospitals")
	}
	if hospitals == nil {
		hospitals = []*Hospital{}
	}
	return c.JSON(http.StatusOK, hospitals)
}

// GetHospital handles GET /hospitals/:id.
func (h *Handler) GetHospital(c echo.Context) error {
	hospital, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Hospital not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load hospital")
	}
	return c.JSON(http.StatusOK, hospital)
}

// GetHospitalStats handles GET /hospitals/:id/stats. Unknown ids return a
// zero-count summary rather than 404.
func (h *Handler) GetHospitalStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build hospital stats")
	}
	return c.JSON(http.StatusOK, stats)
}
