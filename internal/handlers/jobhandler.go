package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{JobService: j}
}

// ListJobs is GET /jobs. Paging details are repeated in X-Total, X-Page,
// X-Limit and X-Has-More.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.JobService.ListJobs(c.Request.Context(), services.JobQuery{
		Category:         q.Category,
		Location:         q.Location,
		Keyword:          q.Keyword,
		EmployerID:       q.EmployerID,
		PostedWithinDays: q.PostedWithinDays,
		Page:             q.Page,
		Limit:            q.Limit,
	})
	if err != nil {
		respondError(c, "Failed to list jobs", err)
		return
	}
	setPageHeaders(c, page.Total, page.Page, page.Limit, page.HasMore)
	c.JSON(http.StatusOK, page)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), middleware.CurrentActor(c), &req)
	if err != nil {
		respondError(c, "Failed to create job", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.JobService.UpdateJob(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to update job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateSEO(c *gin.Context) {
	var req dtos.SEORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.JobService.UpdateSEO(c.Request.Context(), c.Param("id"), req.Fields())
	if err != nil {
		respondError(c, "Failed to update job SEO", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.DeleteJob(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondError(c, "Failed to delete job", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MyJobs is GET /employers/me/jobs.
func (h *JobHandler) MyJobs(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	jobs, err := h.JobService.ListForEmployer(c.Request.Context(), actor.UID)
	if err != nil {
		respondError(c, "Failed to list jobs", err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func setPageHeaders(c *gin.Context, total int64, page, limit int, hasMore bool) {
	c.Header("X-Total", strconv.FormatInt(total, 10))
	c.Header("X-Page", strconv.Itoa(page))
	c.Header("X-Limit", strconv.Itoa(limit))
	c.Header("X-Has-More", strconv.FormatBool(hasMore))
}
