package dtos

import "github.com/hiringdekho/hiring-dekho/internal/models"

type JobPostRequest struct {
	// EmployerID is only read for admins posting on behalf of an employer.
	EmployerID  string `json:"employer_id"`
	CompanyName string `json:"company_name"`
	Title       string `json:"title" binding:"required,notblank,max=150"`
	Location    string `json:"location" binding:"required,notblank"`
	Category    string `json:"category" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`

	// Optional Fields
	EmploymentType string      `json:"employment_type"`
	Salary         string      `json:"salary"`
	Experience     string      `json:"experience"`
	Requirements   string      `json:"requirements"`
	SEO            *SEORequest `json:"seo"`
}

type SEORequest struct {
	MetaTitle       string `json:"meta_title" binding:"max=70"`
	MetaDescription string `json:"meta_description" binding:"max=320"`
	MetaKeywords    string `json:"meta_keywords"`
}

func (r *SEORequest) Fields() models.SEOFields {
	if r == nil {
		return models.SEOFields{}
	}
	return models.SEOFields{
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		MetaKeywords:    r.MetaKeywords,
	}
}

// JobListQuery binds the public job search form.
type JobListQuery struct {
	Category         string `form:"category"`
	Location         string `form:"location"`
	Keyword          string `form:"q"`
	EmployerID       string `form:"employer_id"`
	PostedWithinDays int    `form:"posted_within_days" binding:"min=0"`
	Page             int    `form:"page" binding:"min=0"`
	Limit            int    `form:"limit" binding:"min=0"`
}
