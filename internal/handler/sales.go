package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/apierror"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/service"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/session"
)

type SalesHandler struct {
	svc     service.SaleService
	profile session.Profile
}

func NewSalesHandler(svc service.SaleService, profile session.Profile) *SalesHandler {
	return &SalesHandler{svc: svc, profile: profile}
}

// cashier resolves the profile attached to a sale. The console sends its
// session identity in headers; the configured profile is the fallback.
func (h *SalesHandler) cashier(c *gin.Context) session.Profile {
	p := h.profile
	if name := c.GetHeader("X-Cashier-Name"); name != "" {
		p.Name = name
	}
	if role := c.GetHeader("X-Cashier-Role"); role != "" {
		p.Role = role
	}
	return p
}

func (h *SalesHandler) Register(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegisterSale(c.Request.Context(), h.cashier(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondMutation(c, http.StatusCreated, "Sale registered", resp)
}

func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sales"))
		return
	}
	respondList(c, items, dto.NewPagination(filter.Page, filter.Limit, total))
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Sale not found"))
		return
	}
	respondData(c, resp)
}

func (h *SalesHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.VoidSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.VoidSale(c.Request.Context(), id, req.Reason); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondDeleted(c)
}

func (h *SalesHandler) Report(c *gin.Context) {
	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	if dateFrom == "" || dateTo == "" {
		c.JSON(http.StatusBadRequest, apierror.New("date_from and date_to are required"))
		return
	}
	resp, err := h.svc.Report(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondData(c, resp)
}
