package doctor

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

// Handler exposes doctor endpoints.
type Handler struct {
	svc *Service
}

// NewHandler returns a doctor HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts doctor routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/doctors", h.ListDoctors)
	g.GET("/doctors/:id", h.GetDoctor)
	g.GET("/doctors/:id/patients", h.ListDoctorPatients)
}

// ListDoctors handles GET /doctors.
func (h *Handler) ListDoctors(c echo.Context) error {
	doctors, err := h.svc.List(c.Request().Context(), 100)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list doctors")
	}
	if doctors == nil {
		doctors = []*Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

// GetDoctor handles GET /doctors/:id.
func (h *Handler) GetDoctor(c echo.Context) error {
	d, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load doctor")
	}
	return c.JSON(http.StatusOK, d)
}

// ListDoctorPatients handles GET /doctors/:id/patients.
func (h *Handler) ListDoctorPatients(c echo.Context) error {
	patients, err := h.svc.Patients(c.Request().Context(), c.Param("id"), 100)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list doctor patients")
	}
	if patients == nil {
		patients = []*patient.Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}
