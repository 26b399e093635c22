package observation

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/vitals/weight", h.SaveWeight)
	api.POST("/vitals/heart-rate", h.SaveHeartRate)
	api.POST("/vitals/spo2", h.SaveSpO2)
	api.POST("/vitals/blood-pressure", h.SaveBloodPressure)
	api.GET("/vitals/:kind", h.GetVitalSeries)
	api.GET("/vitals/blood-pressure/series", h.GetBloodPressureSeries)
	api.POST("/symptoms", h.SaveSymptoms)
	api.GET("/symptoms", h.ListSymptoms)
	api.GET("/symptoms/today", h.GetTodaySymptoms)
}

type saveReadingRequest struct {
	Value float64   `json:"value"`
	Taken time.Time `json:"taken"`
}

func (h *Handler) SaveWeight(c echo.Context) error {
	var req saveReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.SaveWeight(c.Request().Context(), req.Value, req.Taken)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *Handler) SaveHeartRate(c echo.Context) error {
	return h.saveVital(c, VitalHeartRate)
}

func (h *Handler) SaveSpO2(c echo.Context) error {
	return h.saveVital(c, VitalSpO2)
}

func (h *Handler) saveVital(c echo.Context, kind VitalKind) error {
	var req saveReadingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	r, err := h.svc.SaveVital(c.Request().Context(), kind, req.Value, req.Taken)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, r)
}

type saveBPRequest struct {
	Systolic  float64   `json:"systolic"`
	Diastolic float64   `json:"diastolic"`
	Taken     time.Time `json:"taken"`
}

func (h *Handler) SaveBloodPressure(c echo.Context) error {
	var req saveBPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveBloodPressure(c.Request().Context(), req.Systolic, req.Diastolic, req.Taken); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) GetVitalSeries(c echo.Context) error {
	kind := VitalKind(c.Param("kind"))
	from, to, err := dateRange(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	series, err := h.svc.VitalSeries(c.Request().Context(), kind, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, series)
}

func (h *Handler) GetBloodPressureSeries(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	series, err := h.svc.BloodPressureSeries(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, series)
}

type saveSymptomsRequest struct {
	Day        time.Time                 `json:"day"`
	Severities map[rules.SymptomKind]int `json:"severities"`
}

func (h *Handler) SaveSymptoms(c echo.Context) error {
	var req saveSymptomsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	day := req.Day
	if day.IsZero() {
		day = time.Now().UTC()
	}
	e, err := h.svc.SaveSymptoms(c.Request().Context(), day, req.Severities)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) ListSymptoms(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entries, err := h.svc.ListSymptomEntries(c.Request().Context(), from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetTodaySymptoms(c echo.Context) error {
	e, err := h.svc.SymptomEntryForDay(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if e == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no symptoms logged today")
	}
	return c.JSON(http.StatusOK, e)
}

// dateRange reads from/to query params as YYYY-MM-DD, defaulting to the last
// 30 days.
func dateRange(c echo.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from, to := now.AddDate(0, 0, -30), now
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = t
	}
	return from, to, nil
}
