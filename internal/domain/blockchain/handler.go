package blockchain

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/patient"
)

// Handler exposes blockchain endpoints. RecordAlert carries a role guard
// applied at registration time.
type Handler struct {
	svc *Service
}

// NewHandler returns a blockchain HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts blockchain routes on the given group. recordGuard
// wraps the record-alert route; pass nil for no guard.
func (h *Handler) RegisterRoutes(g *echo.Group, recordGuard echo.MiddlewareFunc) {
	g.GET("/blockchain/verify/:txHash", h.VerifyTx)
	g.GET("/blockchain/contracts", h.Contracts)
	g.GET("/blockchain/wallet/:patientID", h.GetWallet)
	if recordGuard != nil {
		g.POST("/blockchain/record-alert", h.RecordAlert, recordGuard)
	} else {
		g.POST("/blockchain/record-alert", h.RecordAlert)
	}
}

// VerifyTx handles GET /blockchain/verify/:txHash.
func (h *Handler) VerifyTx(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.VerifyTx(c.Param("txHash")))
}

// Contracts handles GET /blockchain/contracts.
func (h *Handler) Contracts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Contracts())
}

// GetWallet handles GET /blockchain/wallet/:patientID.
func (h *Handler) GetWallet(c echo.Context) error {
	view, err := h.svc.Wallet(c.Request().Context(), c.Param("patientID"))
	if errors.Is(err, patient.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve wallet")
	}
	return c.JSON(http.StatusOK, view)
}

type recordAlertRequest struct {
	AlertID string `json:"alert_id"`
}

// RecordAlert handles POST /blockchain/record-alert. The alert id comes
// from the alert_id query param or a JSON body.
func (h *Handler) RecordAlert(c echo.Context) error {
	alertID := c.QueryParam("alert_id")
	if alertID == "" {
		var req recordAlertRequest
		if err := c.Bind(&req); err == nil {
			alertID = req.AlertID
		}
	}

	result, err := h.svc.RecordAlert(c.Request().Context(), alertID)
	if errors.Is(err, alert.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Alert not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record alert")
	}
	return c.JSON(http.StatusOK, result)
}
