package claims

import (
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/auth"
	"github.com/nikhiljagtap3989/orbit-hr-suite/internal/platform/blobstore"
	"github.com/nikhiljagtap3989/orbit-hr-suite/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/submit-claim", h.SubmitClaim)
	api.GET("/claims", h.ListClaims)
	api.GET("/claims/:id", h.GetClaim)
	api.GET("/claims/:id/attachments", h.ListAttachments)

	write := api.Group("", auth.RequireRole(auth.RoleBiller))
	write.PUT("/claims/:id/status", h.UpdateStatus)
}

// SubmitClaim accepts a multipart form with the claim fields plus optional
// medicalReport and billingDoc file parts.
func (h *Handler) SubmitClaim(c echo.Context) error {
	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var attachments []Attachment
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for field, kind := range map[string]string{
		"medicalReport": blobstore.KindMedicalReport,
		"billingDoc":    blobstore.KindBillingDoc,
	} {
		fh, err := c.FormFile(field)
		if err != nil {
			continue // part is optional
		}
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to open uploaded file")
		}
		opened = append(opened, src)
		attachments = append(attachments, Attachment{
			Kind:        kind,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     src,
		})
	}

	cl, err := h.svc.Submit(c.Request().Context(), &req, attachments)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *Handler) ListClaims(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("status"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if items == nil {
		items = []*Claim{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetClaim(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cl, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "claim not found")
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *Handler) ListAttachments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.Attachments(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*blobstore.Metadata{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status       string `json:"status"`
		DenialReason string `json:"denialReason"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cl, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status, body.DenialReason)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cl)
}
