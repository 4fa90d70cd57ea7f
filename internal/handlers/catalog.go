package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"palcolivre/api/internal/models"
	"palcolivre/api/internal/service"
)

type instrumentRequest struct {
	Nome      string   `json:"nome"`
	Categoria string   `json:"categoria"`
	Marca     string   `json:"marca"`
	Descricao *string  `json:"descricao"`
	Preco     *float64 `json:"preco"`
	Estoque   *int     `json:"estoque"`
}

type instrumentResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Categoria string    `json:"categoria"`
	Marca     string    `json:"marca"`
	Descricao *string   `json:"descricao"`
	Preco     float64   `json:"preco"`
	Estoque   int       `json:"estoque"`
	CriadoEm  time.Time `json:"criado_em"`
}

func toInstrumentResponse(instrument models.Instrument) instrumentResponse {
	return instrumentResponse{
		ID:        instrument.ID,
		Nome:      instrument.Nome,
		Categoria: instrument.Categoria,
		Marca:     instrument.Marca,
		Descricao: instrument.Descricao,
		Preco:     instrument.Preco,
		Estoque:   instrument.Estoque,
		CriadoEm:  instrument.CreatedAt,
	}
}

func (h HandlerSet) ListInstruments(c *gin.Context) {
	instruments, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]instrumentResponse, 0, len(instruments))
	for _, instrument := range instruments {
		resp = append(resp, toInstrumentResponse(instrument))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetInstrument(c *gin.Context) {
	instrument, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInstrumentResponse(instrument))
}

func (h HandlerSet) CreateInstrument(c *gin.Context) {
	var req instrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	instrument, err := h.catalog.Create(c.Request.Context(), service.InstrumentInput{
		Nome:      req.Nome,
		Categoria: req.Categoria,
		Marca:     req.Marca,
		Descricao: req.Descricao,
		Preco:     req.Preco,
		Estoque:   req.Estoque,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "instrumento adicionado com sucesso",
		"id":      instrument.ID,
	})
}

func (h HandlerSet) UpdateInstrument(c *gin.Context) {
	var req instrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
		return
	}

	if _, err := h.catalog.Update(c.Request.Context(), c.Param("id"), service.InstrumentInput{
		Nome:      req.Nome,
		Categoria: req.Categoria,
		Marca:     req.Marca,
		Descricao: req.Descricao,
		Preco:     req.Preco,
		Estoque:   req.Estoque,
	}); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "instrumento atualizado com sucesso"})
}

func (h HandlerSet) DeleteInstrument(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "instrumento removido com sucesso"})
}

type searchRequest struct {
	Nome      string   `json:"nome" form:"nome"`
	Categoria string   `json:"categoria" form:"categoria"`
	Marca     string   `json:"marca" form:"marca"`
	PrecoMin  *float64 `json:"preco_min" form:"preco_min"`
	PrecoMax  *float64 `json:"preco_max" form:"preco_max"`
}

// SearchInstruments serves /buscar for both GET (query string) and POST
// (JSON body). A price floor above the ceiling yields an empty list, not
// an error.
func (h HandlerSet) SearchInstruments(c *gin.Context) {
	var req searchRequest

	if c.Request.Method == http.MethodPost {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "corpo da requisição inválido"})
			return
		}
	} else {
		req.Nome = c.Query("nome")
		req.Categoria = c.Query("categoria")
		req.Marca = c.Query("marca")
		if raw := c.Query("preco_min"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "preco_min inválido"})
				return
			}
			req.PrecoMin = &v
		}
		if raw := c.Query("preco_max"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "preco_max inválido"})
				return
			}
			req.PrecoMax = &v
		}
	}

	instruments, err := h.catalog.Search(c.Request.Context(), models.InstrumentFilter{
		Nome:      req.Nome,
		Categoria: req.Categoria,
		Marca:     req.Marca,
		PrecoMin:  req.PrecoMin,
		PrecoMax:  req.PrecoMax,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]instrumentResponse, 0, len(instruments))
	for _, instrument := range instruments {
		resp = append(resp, toInstrumentResponse(instrument))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) UploadInstrumentPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo de foto é obrigatório"})
		return
	}
	defer file.Close()

	url, err := h.photos.SetInstrumentPhoto(c.Request.Context(), c.Param("id"), service.PhotoUpload{
		File:   file,
		Header: header,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"foto": url})
}
