package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/apierror"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/service"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute dashboard stats"))
		return
	}
	respondData(c, stats)
}
