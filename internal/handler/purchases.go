package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/apierror"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/service"
)

type PurchasesHandler struct{ svc service.PurchaseService }

func NewPurchasesHandler(svc service.PurchaseService) *PurchasesHandler {
	return &PurchasesHandler{svc: svc}
}

func (h *PurchasesHandler) Receive(c *gin.Context) {
	var req dto.ReceivePurchaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReceivePurchase(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondMutation(c, http.StatusCreated, "Purchase received", resp)
}

func (h *PurchasesHandler) List(c *gin.Context) {
	var filter dto.PurchaseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list purchases"))
		return
	}
	respondList(c, items, dto.NewPagination(filter.Page, filter.Limit, total))
}

func (h *PurchasesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Purchase not found"))
		return
	}
	respondData(c, resp)
}
