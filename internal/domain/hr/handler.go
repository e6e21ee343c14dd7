package hr

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
	api.GET("/employees", h.ListEmployees)
	api.GET("/employees/:id", h.GetEmployee)
	api.GET("/employees/:id/attendance", h.EmployeeAttendance)
	api.GET("/employees/:id/leave-balance", h.GetLeaveBalance)
	api.GET("/employees/:id/leaves", h.EmployeeLeaves)
	api.GET("/attendance", h.AttendanceByDay)
	api.POST("/attendance/clock-in", h.ClockIn)
	api.POST("/attendance/clock-out", h.ClockOut)
	api.POST("/leaves", h.RequestLeave)

	hrOnly := api.Group("", auth.RequireRole(auth.RoleHR))
	hrOnly.POST("/employees", h.CreateEmployee)
	hrOnly.DELETE("/employees/:id", h.DeactivateEmployee)
	hrOnly.POST("/attendance/absent", h.MarkAbsent)
	hrOnly.GET("/leaves/pending", h.ListPendingLeaves)
	hrOnly.PUT("/leaves/:id/approve", h.ApproveLeave)
	hrOnly.PUT("/leaves/:id/reject", h.RejectLeave)
}

// -- Employees --

func (h *Handler) CreateEmployee(c echo.Context) error {
	var req CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e, err := h.svc.CreateEmployee(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetEmployee(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.GetEmployee(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListEmployees(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListEmployees(c.Request().Context(), c.QueryParam("department"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Employee{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeactivateEmployee(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if _, err := h.svc.DeactivateEmployee(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Attendance --

type clockRequest struct {
	EmployeeID string `json:"employeeId"`
}

func (h *Handler) ClockIn(c echo.Context) error {
	var req clockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employeeId")
	}
	rec, err := h.svc.ClockIn(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) ClockOut(c echo.Context) error {
	var req clockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employeeId")
	}
	rec, err := h.svc.ClockOut(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) MarkAbsent(c echo.Context) error {
	var req struct {
		EmployeeID string `json:"employeeId"`
		Day        string `json:"day"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employeeId")
	}
	rec, err := h.svc.MarkAbsent(c.Request().Context(), id, req.Day)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) AttendanceByDay(c echo.Context) error {
	day := c.QueryParam("day")
	if day == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "day query parameter is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.AttendanceByDay(c.Request().Context(), day, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*AttendanceRecord{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) EmployeeAttendance(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.AttendanceByEmployee(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*AttendanceRecord{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Leave --

func (h *Handler) RequestLeave(c echo.Context) error {
	var input LeaveRequestInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	l, err := h.svc.RequestLeave(c.Request().Context(), &input)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) ApproveLeave(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	l, err := h.svc.ApproveLeave(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) RejectLeave(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	l, err := h.svc.RejectLeave(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) EmployeeLeaves(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListLeavesByEmployee(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*LeaveRequest{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListPendingLeaves(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPendingLeaves(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*LeaveRequest{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetLeaveBalance(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	balance, err := h.svc.LeaveBalance(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, balance)
}
