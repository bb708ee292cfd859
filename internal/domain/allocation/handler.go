package allocation

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospitalis/hospitalis/internal/domain/admission"
	"github.com/hospitalis/hospitalis/internal/platform/apperr"
)

type Handler struct {
	coord *Coordinator
}

func NewHandler(coord *Coordinator) *Handler {
	return &Handler{coord: coord}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/establishments/:establishmentId/admissions", h.Admit)
	api.GET("/admissions/:id", h.GetAdmission)
	api.POST("/admissions/:id/discharge", h.Discharge)
	api.POST("/admissions/:id/transfer", h.Transfer)
}

type admitBody struct {
	PatientID          uuid.UUID  `json:"patient_id"`
	BedID              *uuid.UUID `json:"bed_id,omitempty"`
	UnitID             *uuid.UUID `json:"unit_id,omitempty"`
	Reason             string     `json:"reason"`
	Diagnosis          *string    `json:"diagnosis,omitempty"`
	Priority           *string    `json:"priority,omitempty"`
	AttendingPhysician *string    `json:"attending_physician,omitempty"`
	Observations       *string    `json:"observations,omitempty"`
}

func (h *Handler) Admit(c echo.Context) error {
	establishmentID, err := uuid.Parse(c.Param("establishmentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid establishment id")
	}
	var body admitBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	if body.Reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	view, err := h.coord.Admit(c.Request().Context(), AdmitRequest{
		EstablishmentID: establishmentID,
		PatientID:       body.PatientID,
		BedID:           body.BedID,
		UnitID:          body.UnitID,
		Clinical: admission.ClinicalPayload{
			Reason:             body.Reason,
			Diagnosis:          body.Diagnosis,
			Priority:           body.Priority,
			AttendingPhysician: body.AttendingPhysician,
			Observations:       body.Observations,
		},
	})
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *Handler) GetAdmission(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	view, err := h.coord.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

type dischargeBody struct {
	Reason       string  `json:"reason"`
	Observations *string `json:"observations,omitempty"`
}

func (h *Handler) Discharge(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body dischargeBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.Reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	view, err := h.coord.Discharge(c.Request().Context(), id, body.Reason, body.Observations)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

type transferBody struct {
	NewBedID uuid.UUID `json:"new_bed_id"`
	Reason   string    `json:"reason"`
}

func (h *Handler) Transfer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body transferBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if body.NewBedID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "new_bed_id is required")
	}
	if body.Reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	view, err := h.coord.Transfer(c.Request().Context(), id, body.NewBedID, body.Reason)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, view)
}
