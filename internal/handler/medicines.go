package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/apierror"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/service"
)

type MedicinesHandler struct{ svc service.MedicineService }

func NewMedicinesHandler(svc service.MedicineService) *MedicinesHandler {
	return &MedicinesHandler{svc: svc}
}

func (h *MedicinesHandler) Create(c *gin.Context) {
	var req dto.CreateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondMutation(c, http.StatusCreated, "Medicine created", resp)
}

func (h *MedicinesHandler) List(c *gin.Context) {
	var filter dto.MedicineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	filter.Normalize()
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list medicines"))
		return
	}
	respondList(c, items, dto.NewPagination(filter.Page, filter.Limit, total))
}

func (h *MedicinesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Medicine not found"))
		return
	}
	respondData(c, resp)
}

func (h *MedicinesHandler) GetByBarcode(c *gin.Context) {
	resp, err := h.svc.GetByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Medicine not found"))
		return
	}
	respondData(c, resp)
}

func (h *MedicinesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateMedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondMutation(c, http.StatusOK, "Medicine updated", resp)
}

func (h *MedicinesHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondMutation(c, http.StatusOK, "Stock adjusted", resp)
}

func (h *MedicinesHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	respondDeleted(c)
}
