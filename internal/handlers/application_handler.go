package handlers

import (
	"net/http"
	"time"

	"github.com/careerpilot/autofill-backend/internal/dtos"
	"github.com/careerpilot/autofill-backend/internal/middleware"
	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	FillService        *services.FillService
}

func NewApplicationHandler(a *services.ApplicationService, f *services.FillService) *ApplicationHandler {
	return &ApplicationHandler{
		ApplicationService: a,
		FillService:        f,
	}
}

// Resolve is POST /fill-plans - builds the identifier->value plan for a form
func (h *ApplicationHandler) Resolve(c *gin.Context) {
	var req dtos.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result, err := h.FillService.Resolve(middleware.OwnerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Admit is POST /applications/admit - the advisory duplicate/rate check a
// worker runs before bothering with the form at all
func (h *ApplicationHandler) Admit(c *gin.Context) {
	var req dtos.AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	err := h.ApplicationService.Admit(middleware.OwnerID(c), req.JobID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowed": true})
}

// Create is POST /applications - records the attempt exactly once
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.ApplicationService.Record(middleware.OwnerID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List is GET /applications with status/site/time filters
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter dtos.ApplicationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query params: " + err.Error()})
		return
	}

	apps, err := h.ApplicationService.List(middleware.OwnerID(c), &filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.ApplicationService.Get(middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// UpdateStatus is PUT /applications/:id/status - the ledger's only mutator
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.ApplicationService.UpdateStatus(middleware.OwnerID(c), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Summary is GET /analytics/summary
func (h *ApplicationHandler) Summary(c *gin.Context) {
	summary, err := h.ApplicationService.Summarize(middleware.OwnerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
