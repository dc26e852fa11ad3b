package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/httputil"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/internal/order/dto"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	g.POST("", h.place)
	g.GET("", h.listMine)
	g.GET(":id", h.get)
	g.PATCH(":id/status", h.updateStatus)
	g.POST(":id/cancel", h.cancel)
	g.POST(":id/return", h.requestReturn)
	g.GET(":id/actions", h.listActions)
}

type placeOrderReq struct {
	CartLineIDs   []string `json:"cart_line_ids"`
	ReceiverName  string   `json:"receiver_name"`
	Address       string   `json:"address"`
	AddressDetail string   `json:"address_detail"`
	PostalCode    string   `json:"postal_code"`
	Phone         string   `json:"phone"`
	Requirement   string   `json:"requirement"`
	PayType       string   `json:"pay_type"`
}

func (h *OrderHandler) place(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := h.uc.Place(c.Request.Context(), auth.ActorFrom(c), &dto.PlaceOrderInput{
		CartLineIDs:   req.CartLineIDs,
		ReceiverName:  req.ReceiverName,
		Address:       req.Address,
		AddressDetail: req.AddressDetail,
		PostalCode:    req.PostalCode,
		Phone:         req.Phone,
		Requirement:   req.Requirement,
		PayType:       req.PayType,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) get(c *gin.Context) {
	o, err := h.uc.Get(c.Request.Context(), auth.ActorFrom(c), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) listMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, total, err := h.uc.ListMine(c.Request.Context(), auth.ActorFrom(c), page, pageSize)
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": orders, "total": total})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *OrderHandler) updateStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := h.uc.UpdateStatus(c.Request.Context(), auth.ActorFrom(c), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type cancelReq struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (h *OrderHandler) cancel(c *gin.Context) {
	var req cancelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := h.uc.Cancel(c.Request.Context(), auth.ActorFrom(c), c.Param("id"), &dto.CancelInput{
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type returnReq struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (h *OrderHandler) requestReturn(c *gin.Context) {
	var req returnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	o, err := h.uc.RequestReturn(c.Request.Context(), auth.ActorFrom(c), c.Param("id"), &dto.ReturnRequestInput{
		Reason:      req.Reason,
		Description: req.Description,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) listActions(c *gin.Context) {
	actions, err := h.uc.ListActions(c.Request.Context(), auth.ActorFrom(c), c.Param("id"))
	if err != nil {
		httputil.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": actions})
}
