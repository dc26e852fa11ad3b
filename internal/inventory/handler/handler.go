package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/httputil"
	"github.com/fekuna/omnipos-order-service/internal/inventory"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/inventory")
	g.POST("/adjust", h.adjust)
	g.GET("/movements", h.listMovements)
}

type adjustReq struct {
	VariantID      string `json:"variant_id"`
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason"`
}

func (h *InventoryHandler) adjust(c *gin.Context) {
	var req adjustReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	m, err := h.uc.Adjust(c.Request.Context(), auth.ActorFrom(c), &dto.AdjustStockInput{
		VariantID:      req.VariantID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *InventoryHandler) listMovements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filters := &dto.MovementFilters{
		VariantID:    c.Query("variant_id"),
		MovementType: c.Query("movement_type"),
		ReferenceID:  c.Query("reference_id"),
		Page:         page,
		PageSize:     pageSize,
	}

	items, total, err := h.uc.ListMovements(c.Request.Context(), auth.ActorFrom(c), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
