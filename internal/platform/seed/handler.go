package seed

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the admin seeding endpoint.
type Handler struct {
	seeder *Seeder
}

// NewHandler returns a seed HTTP handler.
func NewHandler(seeder *Seeder) *Handler {
	return &Handler{seeder: seeder}
}

// RegisterRoutes mounts the seed route on the given group. guard wraps the
// route; pass nil for no guard.
func (h *Handler) RegisterRoutes(g *echo.Group, guard echo.MiddlewareFunc) {
	if guard != nil {
		g.POST("/admin/seed", h.SeedDemoData, guard)
	} else {
		g.POST("/admin/seed", h.SeedDemoData)
	}
}

// SeedDemoData handles POST /admin/seed. An absent or unreadable body
// seeds with defaults.
func (h *Handler) SeedDemoData(c echo.Context) error {
	var opts Options
	if err := c.Bind(&opts); err != nil {
		opts = Options{}
	}

	result, err := h.seeder.Run(c.Request().Context(), opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to seed demo data")
	}
	return c.JSON(http.StatusOK, result)
}
