package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the login endpoint.
type Handler struct {
	svc *Service
}

// NewHandler returns a user HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts auth routes on the given group. Login stays public;
// callers mount it outside the authenticated subtree.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

// Login handles POST /auth/login. An empty body logs in the demo account.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.svc.Login(c.Request().Context(), req)
	if errors.Is(err, ErrInvalidRole) {
		return echo.NewHTTPError(http.StatusBadRequest, "role must be one of patient, doctor, organization")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, resp)
}
