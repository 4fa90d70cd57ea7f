package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/middleware"
	"palcolivre/api/internal/security"
	"palcolivre/api/internal/service"
)

type cadastroRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Endereco string `json:"endereco"`
}

func (h HandlerSet) Cadastro(c *gin.Context) {
	var req cadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Nome:     req.Nome,
		Email:    req.Email,
		Senha:    req.Senha,
		Endereco: req.Endereco,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "usuário registrado com sucesso",
		"id":      user.ID,
	})
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Senha:     req.Senha,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login bem-sucedido",
		"token":   result.Token,
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	claimsVal, _ := c.Get(middleware.ContextClaims)
	claims, ok := claimsVal.(security.AccessClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims.SessionID); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"nome":     user.Nome,
		"email":    user.Email,
		"endereco": user.Endereco,
	})
}
