package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type createPaymentRequest struct {
	PedidoID string   `json:"pedido_id"`
	Metodo   string   `json:"metodo"`
	Valor    *float64 `json:"valor"`
}

type paymentResponse struct {
	ID       string    `json:"id"`
	PedidoID string    `json:"pedido_id"`
	Metodo   string    `json:"metodo"`
	Valor    float64   `json:"valor"`
	Status   string    `json:"status"`
	CriadoEm time.Time `json:"criado_em"`
}

func toPaymentResponse(payment models.Payment) paymentResponse {
	return paymentResponse{
		ID:       payment.ID,
		PedidoID: payment.OrderID,
		Metodo:   payment.Metodo,
		Valor:    payment.Valor,
		Status:   payment.Status,
		CriadoEm: payment.CreatedAt,
	}
}

func (h HandlerSet) CreatePayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	payment, err := h.payments.Create(c.Request.Context(), user.ID, service.CreatePaymentInput{
		OrderID: req.PedidoID,
		Metodo:  req.Metodo,
		Valor:   req.Valor,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "pagamento criado com sucesso",
		"pagamento_id": payment.ID,
	})
}

func (h HandlerSet) GetPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	payment, err := h.payments.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

type updatePaymentRequest struct {
	Status string `json:"status"`
}

func (h HandlerSet) UpdatePayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	payment, err := h.payments.UpdateStatus(c.Request.Context(), user.ID, c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "status do pagamento e do pedido atualizados com sucesso",
		"pagamento": toPaymentResponse(payment),
	})
}
