package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

type LeadHandler struct {
	Leads *services.LeadService
}

func NewLeadHandler(l *services.LeadService) *LeadHandler {
	return &LeadHandler{Leads: l}
}

// SubmitLead is POST /leads, the public popup form.
func (h *LeadHandler) SubmitLead(c *gin.Context) {
	var req dtos.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Leads.Notify(c.Request.Context(), &req); err != nil {
		respondError(c, "Failed to submit lead", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}
