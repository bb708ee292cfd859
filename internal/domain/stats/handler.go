package stats

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospitalis/hospitalis/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/establishments/:establishmentId/stats", h.Hospital)
	api.GET("/establishments/:establishmentId/stats/occupancy", h.Occupancy)
	api.GET("/establishments/:establishmentId/stats/admissions", h.Admissions)
	api.GET("/establishments/:establishmentId/stats/length-of-stay", h.LengthOfStay)
}

func establishmentID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("establishmentId"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid establishment id")
	}
	return id, nil
}

func (h *Handler) Hospital(c echo.Context) error {
	id, err := establishmentID(c)
	if err != nil {
		return err
	}
	period, err := ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := h.svc.Hospital(c.Request().Context(), id, period)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Occupancy(c echo.Context) error {
	id, err := establishmentID(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Occupancy(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Admissions(c echo.Context) error {
	id, err := establishmentID(c)
	if err != nil {
		return err
	}
	period, err := ParsePeriod(c.QueryParam("period"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := h.svc.AdmissionCounts(c.Request().Context(), id, period)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) LengthOfStay(c echo.Context) error {
	id, err := establishmentID(c)
	if err != nil {
		return err
	}
	avg, err := h.svc.AvgLengthOfStay(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]float64{"avg_length_of_stay_days": avg})
}
