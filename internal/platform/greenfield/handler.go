package greenfield

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the storage endpoints.
type Handler struct {
	store Store
}

// NewHandler creates a Handler over the configured archive backend.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts storage routes on the supplied group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/storage/stats", h.handleStats)
	g.GET("/storage/record", h.handleRetrieve)
}

func (h *Handler) handleStats(c echo.Context) error {
	stats, err := h.store.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) handleRetrieve(c echo.Context) error {
	cid := c.QueryParam("cid")
	if cid == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "cid query parameter is required"})
	}

	record, err := h.store.Retrieve(c.Request().Context(), cid)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadCID):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusOK, record)
}
