package handlers

import (
	"net/http"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/middleware"
	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type MappingHandler struct {
	MappingService *services.MappingService
	SuggestService *services.SuggestService
}

func NewMappingHandler(m *services.MappingService, s *services.SuggestService) *MappingHandler {
	return &MappingHandler{
		MappingService: m,
		SuggestService: s,
	}
}

// Upsert is POST /mappings - merges into any existing mapping for the site
func (h *MappingHandler) Upsert(c *gin.Context) {
	var req dtos.MappingUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	mapping, err := h.MappingService.Upsert(middleware.OwnerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

// List is GET /mappings?site=linkedin.com
func (h *MappingHandler) List(c *gin.Context) {
	mappings, err := h.MappingService.List(middleware.OwnerID(c), c.Query("site"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mappings)
}

func (h *MappingHandler) Get(c *gin.Context) {
	mapping, err := h.MappingService.Get(middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

// DeleteEntries is POST /mappings/:id/delete-entries - the explicit path for
// removing identifier entries, since upserts only ever merge
func (h *MappingHandler) DeleteEntries(c *gin.Context) {
	var req dtos.MappingDeleteEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	mapping, err := h.MappingService.DeleteEntries(middleware.OwnerID(c), c.Param("id"), req.Identifiers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping)
}

func (h *MappingHandler) Delete(c *gin.Context) {
	if err := h.MappingService.Delete(middleware.OwnerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Field mapping deleted successfully"})
}

// Suggest is POST /mappings/suggest - AI-proposed field mappings from the
// form's raw HTML. Returned for review, never persisted here.
func (h *MappingHandler) Suggest(c *gin.Context) {
	var req dtos.MappingSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	suggestions, err := h.SuggestService.SuggestFieldMappings(c.Request.Context(), req.RawHTML)
	if err != nil {
		// upstream model trouble, not storage; same {error, reason} shape
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI suggestion failed: " + err.Error(), "reason": "suggestion_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"site_domain":    services.NormalizeDomain(req.SiteDomain),
		"field_mappings": suggestions,
	})
}
