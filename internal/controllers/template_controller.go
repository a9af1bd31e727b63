package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/services"
)

// TemplateController manages saved trip templates.
type TemplateController struct {
	templates *services.TemplateService
}

func NewTemplateController(templates *services.TemplateService) *TemplateController {
	return &TemplateController{templates: templates}
}

// CreateTemplate saves a template.
func (tc *TemplateController) CreateTemplate(c *gin.Context) {
	var input services.TemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl, err := tc.templates.CreateTemplate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template": tpl})
}

// ListTemplates lists templates, most used first.
func (tc *TemplateController) ListTemplates(c *gin.Context) {
	templates, err := tc.templates.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": templates})
}

// DeleteTemplate removes a template.
func (tc *TemplateController) DeleteTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := tc.templates.DeleteTemplate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// ApplyTemplate creates a trip from a template.
func (tc *TemplateController) ApplyTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input struct {
		DepartureDate time.Time `json:"departure_date" binding:"required"`
		ArrivalDate   time.Time `json:"arrival_date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trip, err := tc.templates.ApplyTemplate(c.Request.Context(), id, input.DepartureDate, input.ArrivalDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}
