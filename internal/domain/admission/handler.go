package admission

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hospitalis/hospitalis/internal/platform/apperr"
	"github.com/hospitalis/hospitalis/pkg/pagination"
)

// Handler exposes the listing side of the ledger. Writes (admit, discharge,
// transfer) and single-admission reads go through the allocation
// coordinator's handler, which adds the transaction boundary and the joined
// view; the ledger only serves listings.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/establishments/:establishmentId/admissions", h.ListAdmissions)
}

func (h *Handler) ListAdmissions(c echo.Context) error {
	establishmentID, err := uuid.Parse(c.Param("establishmentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid establishment id")
	}

	pg := pagination.FromContext(c)
	filter := Filter{
		EstablishmentID: establishmentID,
		Limit:           pg.Limit,
		Offset:          pg.Offset,
	}

	if s := c.QueryParam("status"); s != "" {
		status := Status(s)
		if status != StatusActive && status != StatusDischarged {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		filter.Status = &status
	}
	if p := c.QueryParam("priority"); p != "" {
		filter.Priority = &p
	}
	if u := c.QueryParam("unit_id"); u != "" {
		unitID, err := uuid.Parse(u)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid unit_id")
		}
		filter.UnitID = &unitID
	}

	details, total, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(details, total, filter.Limit, filter.Offset))
}
