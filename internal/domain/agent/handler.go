package agent

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnihealth/guardian/internal/domain/activity"
	"github.com/omnihealth/guardian/pkg/pagination"
)

const defaultActivityLimit = 50

// ActivityFeed is the slice of the activity repository the moltbot
// endpoints read.
type ActivityFeed interface {
	List(ctx context.Context, limit int64) ([]*activity.Activity, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context, activityType string) (int64, error)
}

// Handler exposes the gateway and the moltbot activity feed.
type Handler struct {
	gateway *Gateway
	feed    ActivityFeed
}

// NewHandler returns an agent HTTP handler.
func NewHandler(gateway *Gateway, feed ActivityFeed) *Handler {
	return &Handler{gateway: gateway, feed: feed}
}

// RegisterRoutes mounts the agent routes on the given group. executeGuard
// wraps the manual execution route; pass nil for no guard.
func (h *Handler) RegisterRoutes(g *echo.Group, executeGuard echo.MiddlewareFunc) {
	g.GET("/moltbot/activities", h.ListActivities)
	g.GET("/moltbot/stats", h.ActivityStats)
	g.GET("/agent/skills", h.ListSkills)
	g.GET("/agent/info", h.GatewayInfo)
	g.GET("/agent/stats", h.GatewayStats)
	if executeGuard != nil {
		g.POST("/agent/skills/:name/execute", h.ExecuteSkill, executeGuard)
	} else {
		g.POST("/agent/skills/:name/execute", h.ExecuteSkill)
	}
}

// ListActivities handles GET /moltbot/activities.
func (h *Handler) ListActivities(c echo.Context) error {
	params := pagination.FromContextDefault(c, defaultActivityLimit)
	feed, err := h.feed.List(c.Request().Context(), int64(params.Limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list activities")
	}
	if feed == nil {
		feed = []*activity.Activity{}
	}
	return c.JSON(http.StatusOK, feed)
}

// ActivityStats handles GET /moltbot/stats.
func (h *Handler) ActivityStats(c echo.Context) error {
	ctx := c.Request().Context()
	total, err := h.feed.Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to count activities")
	}
	diets, err := h.feed.CountByType(ctx, activity.TypeDietSuggestion)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to count activities")
	}
	verifications, err := h.feed.CountByType(ctx, activity.TypeAlertVerification)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to count activities")
	}
	return c.JSON(http.StatusOK, MoltbotStats{
		TotalActivities:    total,
		DietSuggestions:    diets,
		AlertVerifications: verifications,
		Uptime:             reportedUptime,
		AgentStatus:        "active",
	})
}

// ListSkills handles GET /agent/skills.
func (h *Handler) ListSkills(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.Configs())
}

// GatewayInfo handles GET /agent/info.
func (h *Handler) GatewayInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.Info())
}

// GatewayStats handles GET /agent/stats.
func (h *Handler) GatewayStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.Stats())
}

type executeRequest struct {
	PatientID string `json:"patient_id"`
}

// ExecuteSkill handles POST /agent/skills/:name/execute. Unknown skills
// still answer 200 with an error-status result, matching gateway
// semantics.
func (h *Handler) ExecuteSkill(c echo.Context) error {
	patientID := c.QueryParam("patient_id")
	if patientID == "" {
		var req executeRequest
		if err := c.Bind(&req); err == nil {
			patientID = req.PatientID
		}
	}
	result := h.gateway.Execute(c.Request().Context(), c.Param("name"), patientID)
	return c.JSON(http.StatusOK, result)
}
