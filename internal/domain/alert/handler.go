package alert

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/heartlog/heartlog/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/alerts", h.ListAlerts)
	api.GET("/alerts/unacknowledged", h.ListUnacknowledged)
	api.GET("/alerts/:id", h.GetAlert)
	api.POST("/alerts/:id/acknowledge", h.AcknowledgeAlert)
	api.GET("/alerts/conflict-banner", h.GetConflictBanner)
	api.POST("/alerts/conflict-banner/dismiss", h.DismissConflictBanner)
}

func (h *Handler) ListAlerts(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListUnacknowledged(c echo.Context) error {
	items, err := h.svc.ListUnacknowledged(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetAlert(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "alert not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) AcknowledgeAlert(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Acknowledge(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetConflictBanner(c echo.Context) error {
	d, err := h.svc.ConflictBannerDismissal(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if d == nil || !d.Until.After(time.Now().UTC()) {
		return c.JSON(http.StatusOK, map[string]any{"dismissed": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"dismissed": true, "until": d.Until})
}

type dismissBannerRequest struct {
	Until time.Time `json:"until"`
}

func (h *Handler) DismissConflictBanner(c echo.Context) error {
	var req dismissBannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.DismissConflictBanner(c.Request().Context(), req.Until); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
