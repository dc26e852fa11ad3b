package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	"github.com/fekuna/omnipos-order-service/internal/httputil"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/cart")
	g.GET("", h.getCart)
	g.DELETE("", h.clear)
	g.POST("/lines", h.addLine)
	g.PATCH("/lines/:id", h.updateLineQuantity)
	g.DELETE("/lines/variant/:variantId", h.removeLine)
}

type cartView struct {
	ID         string      `json:"id"`
	MemberID   string      `json:"member_id"`
	Lines      interface{} `json:"lines"`
	TotalPrice int64       `json:"total_price"`
}

type addLineReq struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) addLine(c *gin.Context) {
	var req addLineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	actor := auth.ActorFrom(c)
	out, err := h.uc.AddLine(c.Request.Context(), actor.ID, &dto.AddLineInput{
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView{ID: out.ID, MemberID: out.MemberID, Lines: out.Lines, TotalPrice: out.TotalPrice()})
}

type updateLineReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) updateLineQuantity(c *gin.Context) {
	var req updateLineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	actor := auth.ActorFrom(c)
	out, err := h.uc.UpdateLineQuantity(c.Request.Context(), actor.ID, c.Param("id"), req.Quantity)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView{ID: out.ID, MemberID: out.MemberID, Lines: out.Lines, TotalPrice: out.TotalPrice()})
}

func (h *CartHandler) removeLine(c *gin.Context) {
	actor := auth.ActorFrom(c)
	if err := h.uc.RemoveLine(c.Request.Context(), actor.ID, c.Param("variantId")); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) clear(c *gin.Context) {
	actor := auth.ActorFrom(c)
	if err := h.uc.Clear(c.Request.Context(), actor.ID); err != nil {
		httputil.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) getCart(c *gin.Context) {
	actor := auth.ActorFrom(c)
	out, err := h.uc.GetCart(c.Request.Context(), actor.ID)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cartView{ID: out.ID, MemberID: out.MemberID, Lines: out.Lines, TotalPrice: out.TotalPrice()})
}
