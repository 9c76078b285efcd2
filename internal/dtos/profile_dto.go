package dtos

import "github.com/hiringdekho/hiring-dekho/internal/models"

type EmployerProfileRequest struct {
	CompanyName        string `json:"company_name" binding:"required,notblank"`
	ContactName        string `json:"contact_name"`
	Phone              string `json:"phone"`
	Website            string `json:"website" binding:"omitempty,url"`
	Industry           string `json:"industry"`
	CompanySize        string `json:"company_size"`
	Location           string `json:"location"`
	CompanyDescription string `json:"company_description"`
	LogoURL            string `json:"logo_url" binding:"omitempty,url"`
}

type JobSeekerProfileRequest struct {
	FullName        string                   `json:"full_name" binding:"required,notblank"`
	Phone           string                   `json:"phone"`
	Location        string                   `json:"location"`
	Headline        string                   `json:"headline"`
	Summary         string                   `json:"summary"`
	Skills          []string                 `json:"skills"`
	ExperienceYears int                      `json:"experience_years" binding:"min=0,max=60"`
	Experience      []models.ExperienceEntry `json:"experience"`
	Education       []models.EducationEntry  `json:"education"`
	ResumeURL       string                   `json:"resume_url" binding:"omitempty,url"`
}
