package diet

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/domain/patient"
)

// Handler exposes diet endpoints.
type Handler struct {
	svc *Service
}

// NewHandler returns a diet HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts diet routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/diet/generate", h.GeneratePlan)
	g.GET("/diet/:patientID", h.ListPlans)
}

type generateRequest struct {
	PatientID string `json:"patient_id"`
}

// GeneratePlan handles POST /diet/generate. The patient id comes from the
// patient_id query param or a JSON body.
func (h *Handler) GeneratePlan(c echo.Context) error {
	patientID := c.QueryParam("patient_id")
	if patientID == "" {
		var req generateRequest
		if err := c.Bind(&req); err == nil {
			patientID = req.PatientID
		}
	}

	plan, err := h.svc.Generate(c.Request().Context(), patientID)
	if errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate diet plan")
	}
	return c.JSON(http.StatusOK, plan)
}

// ListPlans handles GET /diet/:patientID.
func (h *Handler) ListPlans(c echo.Context) error {
	plans, err := h.svc.History(c.Request().Context(), c.Param("patientID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list diet plans")
	}
	if plans == nil {
		plans = []*Plan{}
	}
	return c.JSON(http.StatusOK, plans)
}
