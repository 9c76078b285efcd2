package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func NewProfileHandler(p *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

func (h *ProfileHandler) SaveEmployer(c *gin.Context) {
	var req dtos.EmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := middleware.CurrentIdentity(c)
	e, err := h.Profiles.SaveEmployer(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "Failed to save employer profile", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ProfileHandler) MyEmployer(c *gin.Context) {
	h.employer(c, middleware.CurrentActor(c).UID)
}

// Employer is the public company page, GET /employers/:id.
func (h *ProfileHandler) Employer(c *gin.Context) {
	h.employer(c, c.Param("id"))
}

func (h *ProfileHandler) employer(c *gin.Context, uid string) {
	e, err := h.Profiles.GetEmployer(c.Request.Context(), uid)
	if err != nil {
		respondError(c, "Failed to load employer", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ProfileHandler) SaveJobSeeker(c *gin.Context) {
	var req dtos.JobSeekerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := middleware.CurrentIdentity(c)
	js, err := h.Profiles.SaveJobSeeker(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, "Failed to save job seeker profile", err)
		return
	}
	c.JSON(http.StatusOK, js)
}

func (h *ProfileHandler) MyJobSeeker(c *gin.Context) {
	js, err := h.Profiles.GetJobSeeker(c.Request.Context(), middleware.CurrentActor(c).UID)
	if err != nil {
		respondError(c, "Failed to load job seeker profile", err)
		return
	}
	c.JSON(http.StatusOK, js)
}
