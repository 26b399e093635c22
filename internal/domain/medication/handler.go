package medication

import (
	"errors"
	"net/http"

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
	api.POST("/medications", h.CreateMedication)
	api.GET("/medications", h.ListMedications)
	api.GET("/medications/:id", h.GetMedication)
	api.DELETE("/medications/:id", h.DeactivateMedication)
	api.GET("/medications/conflicts", h.ListConflicts)
	api.POST("/medications/check-conflicts", h.CheckConflicts)
}

type createMedicationRequest struct {
	Name     string               `json:"name"`
	Category *TherapeuticCategory `json:"category,omitempty"`
	Diuretic bool                 `json:"diuretic"`
}

type createMedicationResponse struct {
	Medication *Medication      `json:"medication,omitempty"`
	Conflicts  []ConflictRecord `json:"conflicts,omitempty"`
}

func (h *Handler) CreateMedication(c echo.Context) error {
	var req createMedicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	force := c.QueryParam("force") == "true"

	m := &Medication{Name: req.Name, Category: req.Category, Diuretic: req.Diuretic}
	conflicts, err := h.svc.Create(c.Request().Context(), m, force)
	if errors.Is(err, ErrConflictsDetected) {
		// Not saved. The client shows the conflicts and may retry with
		// ?force=true once the patient confirms.
		return c.JSON(http.StatusConflict, createMedicationResponse{Conflicts: conflicts})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, createMedicationResponse{Medication: m, Conflicts: conflicts})
}

func (h *Handler) GetMedication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	if c.QueryParam("active") == "true" {
		items, err := h.svc.ListActive(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, items)
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeactivateMedication(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListConflicts(c echo.Context) error {
	conflicts, err := h.svc.FindAllConflicts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, conflicts)
}

type checkConflictsRequest struct {
	Category TherapeuticCategory `json:"category"`
}

func (h *Handler) CheckConflicts(c echo.Context) error {
	var req checkConflictsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	conflicts, err := h.svc.CheckConflicts(c.Request().Context(), req.Category)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, conflicts)
}
