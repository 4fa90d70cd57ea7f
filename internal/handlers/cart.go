package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/models"
)

type addCartRequest struct {
	InstrumentoID string `json:"instrumento_id"`
	Quantidade    int    `json:"quantidade"`
}

func (h HandlerSet) AddCartItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	var req addCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	item, err := h.cart.Add(c.Request.Context(), user.ID, req.InstrumentoID, req.Quantidade)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "item adicionado ao carrinho",
		"id":         item.ID,
		"quantidade": item.Quantidade,
	})
}

type cartEntryResponse struct {
	ID            string  `json:"id"`
	InstrumentoID string  `json:"instrumento_id"`
	Nome          string  `json:"nome"`
	Preco         float64 `json:"preco"`
	Quantidade    int     `json:"quantidade"`
	Foto          *string `json:"foto"`
}

func (h HandlerSet) ListCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	entries, err := h.cart.List(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]cartEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, h.toCartEntryResponse(entry))
	}
	c.JSON(http.StatusOK, gin.H{"carrinho": resp})
}

func (h HandlerSet) RemoveCartItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	if err := h.cart.Remove(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removido do carrinho com sucesso"})
}

func (h HandlerSet) toCartEntryResponse(entry models.CartEntry) cartEntryResponse {
	var foto *string
	if entry.FotoKey != nil {
		url := h.photos.URL(*entry.FotoKey)
		foto = &url
	}
	return cartEntryResponse{
		ID:            entry.ID,
		InstrumentoID: entry.InstrumentID,
		Nome:          entry.Nome,
		Preco:         entry.Preco,
		Quantidade:    entry.Quantidade,
		Foto:          foto,
	}
}
