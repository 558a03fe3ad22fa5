package handlers

import (
	"net/http"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/middleware"
	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	TemplateService *services.TemplateService
}

func NewTemplateHandler(t *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{TemplateService: t}
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req dtos.TemplateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	template, err := h.TemplateService.Create(middleware.OwnerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.TemplateService.List(middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	template, err := h.TemplateService.Get(middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	var req dtos.TemplateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	template, err := h.TemplateService.Update(middleware.OwnerID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.TemplateService.Delete(middleware.OwnerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}
