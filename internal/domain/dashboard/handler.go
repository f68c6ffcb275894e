package dashboard

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/domain/doctor"
	"github.com/omnihealth/guardian/internal/domain/patient"
)

// Handler exposes the dashboard endpoints.
type Handler struct {
	svc *Service
}

// NewHandler returns a dashboard HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts dashboard routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard/patient/:id", h.GetPatientDashboard)
	g.GET("/dashboard/doctor/:id", h.GetDoctorDashboard)
	g.GET("/dashboard/organization", h.GetOrganizationDashboard)
}

// GetPatientDashboard handles GET /dashboard/patient/:id.
func (h *Handler) GetPatientDashboard(c echo.Context) error {
	view, err := h.svc.Patient(c.Request().Context(), c.Param("id"))
	if errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build patient dashboard")
	}
	return c.JSON(http.StatusOK, view)
}

// GetDoctorDashboard handles GET /dashboard/doctor/:id.
func (h *Handler) GetDoctorDashboard(c echo.Context) error {
	view, err := h.svc.Doctor(c.Request().Context(), c.Param("id"))
	if errors.Is(err, doctor.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build doctor dashboard")
	}
	return c.JSON(http.StatusOK, view)
}

// GetOrganizationDashboard handles GET /dashboard/organization.
func (h *Handler) GetOrganizationDashboard(c echo.Context) error {
	view, err := h.svc.Organization(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build organization dashboard")
	}
	return c.JSON(http.StatusOK, view)
}
