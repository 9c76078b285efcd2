package dtos

import "github.com/hiringdekho/hiring-dekho/internal/models"

// ResumeSummaryRequest falls back to the caller's saved profile when both
// lists are empty.
type ResumeSummaryRequest struct {
	WorkExperience []models.ExperienceEntry `json:"work_experience"`
	Education      []models.EducationEntry  `json:"education"`
}

type JobDescriptionRequest struct {
	JobTitle   string `json:"job_title" binding:"required,notblank"`
	Experience string `json:"experience" binding:"required,notblank"`
}

type JobRecommendationRequest struct {
	SearchHistory []string `json:"search_history"`
}

type BlogGenerationRequest struct {
	Title    string `json:"title" binding:"required,notblank"`
	Keywords string `json:"keywords" binding:"required,notblank"`
}
