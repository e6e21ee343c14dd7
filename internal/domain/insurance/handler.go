package insurance

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/auth"
	"github.com/nikhiljagtap3989/orbit-hr-suite/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/submit_insurance", h.SubmitVerification)
	api.GET("/insurance-verifications", h.ListVerifications)
	api.GET("/insurance-verifications/:id", h.GetVerification)

	write := api.Group("", auth.RequireRole(auth.RoleBiller))
	write.PUT("/insurance-verifications/:id/status", h.UpdateStatus)
	write.PUT("/insurance-verifications/:id/benefits", h.RecordBenefits)
}

func (h *Handler) SubmitVerification(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v, err := h.svc.Submit(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) ListVerifications(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	firstName := c.QueryParam("patient_first_name")
	lastName := c.QueryParam("patient_last_name")

	var (
		items []*Verification
		total int
		err   error
	)
	if firstName != "" && lastName != "" {
		items, total, err = h.svc.ListByPatient(ctx, firstName, lastName, pg.Limit, pg.Offset)
	} else {
		items, total, err = h.svc.List(ctx, pg.Limit, pg.Offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Verification{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetVerification(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "verification not found")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) RecordBenefits(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req BenefitsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v, err := h.svc.RecordBenefits(c.Request().Context(), id, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}
