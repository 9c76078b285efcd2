package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(apps *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := h.Applications.Apply(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to apply", err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.Applications.ListForJob(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to list applications", err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := h.Applications.UpdateStatus(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), c.Param("appId"), req.Status)
	if err != nil {
		respondError(c, "Failed to update application", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// Candidates is GET /jobs/:id/candidates, the employer's filtered applicant view.
func (h *ApplicationHandler) Candidates(c *gin.Context) {
	var q dtos.CandidateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Applications.Candidates(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), services.CandidateFilter{
		Status:        q.Status,
		Skills:        services.SplitSkills(q.Skills),
		MinExperience: q.MinExperience,
		Location:      q.Location,
		Query:         q.Query,
	})
	if err != nil {
		respondError(c, "Failed to filter candidates", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// MyApplications is GET /job-seekers/me/applications.
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	apps, err := h.Applications.ListForApplicant(c.Request.Context(), middleware.CurrentActor(c).UID)
	if err != nil {
		respondError(c, "Failed to list applications", err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// EmployerApplications is GET /employers/me/applications.
func (h *ApplicationHandler) EmployerApplications(c *gin.Context) {
	apps, err := h.Applications.ListForEmployer(c.Request.Context(), middleware.CurrentActor(c).UID)
	if err != nil {
		respondError(c, "Failed to list applications", err)
		return
	}
	c.JSON(http.StatusOK, apps)
}
