package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type createOrderRequest struct {
	CompraID        string `json:"compra_id"`
	StatusEntrega   string `json:"status_entrega"`
	StatusPagamento string `json:"status_pagamento"`
}

type purchaseResponse struct {
	ID       string    `json:"id"`
	Total    float64   `json:"total"`
	CriadoEm time.Time `json:"criado_em"`
}

type orderResponse struct {
	ID              string            `json:"id"`
	CompraID        string            `json:"compra_id"`
	StatusEntrega   string            `json:"status_entrega"`
	StatusPagamento string            `json:"status_pagamento"`
	CriadoEm        time.Time         `json:"criado_em"`
	Compra          *purchaseResponse `json:"compra,omitempty"`
}

func toOrderResponse(detail models.OrderDetail) orderResponse {
	return orderResponse{
		ID:              detail.ID,
		CompraID:        detail.PurchaseID,
		StatusEntrega:   string(detail.StatusEntrega),
		StatusPagamento: string(detail.StatusPagamento),
		CriadoEm:        detail.CreatedAt,
		Compra: &purchaseResponse{
			ID:       detail.Purchase.ID,
			Total:    detail.Purchase.Total,
			CriadoEm: detail.Purchase.CreatedAt,
		},
	}
}

func (h HandlerSet) CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), user.ID, service.CreateOrderInput{
		PurchaseID:      req.CompraID,
		StatusEntrega:   req.StatusEntrega,
		StatusPagamento: req.StatusPagamento,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "pedido criado com sucesso",
		"pedido_id": order.ID,
	})
}

func (h HandlerSet) ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	orders, err := h.orders.List(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, detail := range orders {
		resp = append(resp, toOrderResponse(detail))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	detail, err := h.orders.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(detail))
}

type updateOrderRequest struct {
	StatusEntrega   *string `json:"status_entrega"`
	StatusPagamento *string `json:"status_pagamento"`
}

func (h HandlerSet) UpdateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	if err := h.orders.Update(c.Request.Context(), user.ID, c.Param("id"), service.UpdateOrderInput{
		StatusEntrega:   req.StatusEntrega,
		StatusPagamento: req.StatusPagamento,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pedido atualizado com sucesso"})
}

func (h HandlerSet) CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	if err := h.orders.Cancel(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pedido cancelado com sucesso"})
}

func (h HandlerSet) Checkout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	detail, err := h.orders.Checkout(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(detail))
}
