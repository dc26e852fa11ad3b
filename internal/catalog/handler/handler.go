package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-order-service/internal/httputil"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/catalog")
	g.POST("/products", h.createProduct)
	g.PATCH("/products/:id", h.updateProduct)
	g.POST("/products/:id/variants", h.addVariant)
	g.GET("/products/:id/variants", h.listVariants)
	g.GET("/variants/:id", h.getVariant)
}

type createProductReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BasePrice   int64  `json:"base_price"`
}

func (h *CatalogHandler) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), auth.ActorFrom(c), &dto.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type updateProductReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	BasePrice   *int64  `json:"base_price"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CatalogHandler) updateProduct(c *gin.Context) {
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), auth.ActorFrom(c), c.Param("id"), &dto.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		IsActive:    req.IsActive,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type createVariantReq struct {
	Size            string `json:"size"`
	Color           string `json:"color"`
	PriceAdjustment int64  `json:"price_adjustment"`
	StockAmount     int    `json:"stock_amount"`
}

func (h *CatalogHandler) addVariant(c *gin.Context) {
	var req createVariantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	v, err := h.uc.AddVariant(c.Request.Context(), auth.ActorFrom(c), &dto.CreateVariantInput{
		ProductID:       c.Param("id"),
		Size:            req.Size,
		Color:           req.Color,
		PriceAdjustment: req.PriceAdjustment,
		StockAmount:     req.StockAmount,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *CatalogHandler) getVariant(c *gin.Context) {
	v, err := h.uc.GetVariant(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *CatalogHandler) listVariants(c *gin.Context) {
	items, err := h.uc.ListVariants(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
