package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/service"
)

func (h HandlerSet) UploadFoto(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	file, header, err := c.Request.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo de foto é obrigatório"})
		return
	}
	defer file.Close()

	url, err := h.photos.SetProfilePhoto(c.Request.Context(), user.ID, service.PhotoUpload{
		File:   file,
		Header: header,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"foto":    url,
	})
}

func (h HandlerSet) FotoPerfil(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token não fornecido"})
		return
	}

	url, err := h.photos.ProfilePhotoURL(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"foto": url})
}
