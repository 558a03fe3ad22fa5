package handlers

import (
	"net/http"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/middleware"
	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
}

func NewProfileHandler(p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{ProfileService: p}
}

// GetMe is GET /profiles/me - creates an empty profile on first access
func (h *ProfileHandler) GetMe(c *gin.Context) {
	profile, err := h.ProfileService.GetOrCreate(middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe is PUT /profiles/me - merges fields into the profile
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req dtos.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	profile, err := h.ProfileService.Update(middleware.OwnerID(c), req.Fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
