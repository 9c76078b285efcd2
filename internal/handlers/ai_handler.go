package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

// AIHandler exposes the generation flows. Request validation runs before any
// model call.
type AIHandler struct {
	LLMService *services.LLMService
}

func NewAIHandler(llm *services.LLMService) *AIHandler {
	return &AIHandler{LLMService: llm}
}

func (h *AIHandler) ResumeSummary(c *gin.Context) {
	var req dtos.ResumeSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.LLMService.SummarizeResume(c.Request.Context(), middleware.CurrentActor(c).UID, &req)
	if err != nil {
		respondError(c, "AI generation failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AIHandler) JobDescription(c *gin.Context) {
	var req dtos.JobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.LLMService.GenerateJobDescription(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "AI generation failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AIHandler) JobRecommendations(c *gin.Context) {
	var req dtos.JobRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.LLMService.RecommendJobs(c.Request.Context(), middleware.CurrentActor(c).UID, &req)
	if err != nil {
		respondError(c, "AI generation failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *AIHandler) BlogPost(c *gin.Context) {
	var req dtos.BlogGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.LLMService.GenerateBlogPost(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "AI generation failed", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
