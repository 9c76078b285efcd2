package models

import (
	"time"

	"gorm.io/datatypes"
)

// Application statuses. An application is only ever mutated by overwriting Status.
const (
	StatusApplied      = "Applied"
	StatusReviewed     = "Reviewed"
	StatusInterviewing = "Interviewing"
	StatusOffered      = "Offered"
	StatusRejected     = "Rejected"
)

// ApplicationStatuses lists the accepted statuses in pipeline order.
var ApplicationStatuses = []string{StatusApplied, StatusReviewed, StatusInterviewing, StatusOffered, StatusRejected}

// IsValidStatus reports whether s is one of ApplicationStatuses.
func IsValidStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// SEOFields are the optional search metadata carried by job posts and blogs.
type SEOFields struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `gorm:"type:text" json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

// JobPostContent is shared by the global job post and its employer-scoped mirror
// so both copies always carry the same columns.
type JobPostContent struct {
	EmployerID     string    `gorm:"index" json:"employer_id"`
	CompanyName    string    `gorm:"not null" json:"company_name"`
	Title          string    `gorm:"not null" json:"title"`
	Location       string    `json:"location"`
	Category       string    `gorm:"index" json:"category"`
	EmploymentType string    `json:"employment_type"`
	Salary         string    `json:"salary"`
	Experience     string    `json:"experience"`
	Description    string    `gorm:"type:text" json:"description"`
	Requirements   string    `gorm:"type:text" json:"requirements"`
	PostDate       time.Time `gorm:"index" json:"post_date"`
	SEO            SEOFields `gorm:"embedded;embeddedPrefix:seo_" json:"seo"`
}

// JobPost is the global copy (jobPosts collection).
type JobPost struct {
	ID string `gorm:"primaryKey" json:"id"`
	JobPostContent
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployerJobPost mirrors a JobPost under its employer (employers/{id}/jobPosts).
type EmployerJobPost struct {
	JobPostID string `gorm:"primaryKey" json:"job_post_id"`
	JobPostContent
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationContent is shared by an application and its employer-scoped mirror.
// A user applies to a job at most once; both tables enforce it.
type ApplicationContent struct {
	JobPostID      string    `gorm:"index:,unique,composite:job_applicant;not null" json:"job_post_id"`
	EmployerID     string    `gorm:"index" json:"employer_id"`
	ApplicantID    string    `gorm:"index;index:,unique,composite:job_applicant;not null" json:"applicant_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	JobTitle       string    `json:"job_title"`
	CompanyName    string    `json:"company_name"`
	CoverLetter    string    `gorm:"type:text" json:"cover_letter"`
	ResumeURL      string    `json:"resume_url"`
	Status         string    `gorm:"default:'Applied'" json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
}

// JobApplication lives under its job post (jobPosts/{id}/applications).
type JobApplication struct {
	ID string `gorm:"primaryKey" json:"id"`
	ApplicationContent
	UpdatedAt time.Time `json:"updated_at"`
}

// EmployerJobApplication mirrors a JobApplication under the employer.
type EmployerJobApplication struct {
	ApplicationID string `gorm:"primaryKey" json:"application_id"`
	ApplicationContent
	UpdatedAt time.Time `json:"updated_at"`
}

// ExperienceEntry is one row of a job seeker's work history.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one row of a job seeker's education.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartYear   string `json:"start_year,omitempty"`
	EndYear     string `json:"end_year,omitempty"`
}

// JobSeeker is keyed by the signed-in user's id (jobSeekers collection).
type JobSeeker struct {
	UserID          string                               `gorm:"primaryKey" json:"user_id"`
	Email           string                               `json:"email"`
	FullName        string                               `json:"full_name"`
	Phone           string                               `json:"phone"`
	Location        string                               `json:"location"`
	Headline        string                               `json:"headline"`
	Summary         string                               `gorm:"type:text" json:"summary"`
	Skills          datatypes.JSONSlice[string]          `json:"skills"`
	ExperienceYears int                                  `json:"experience_years"`
	Experience      datatypes.JSONSlice[ExperienceEntry] `json:"experience"`
	Education       datatypes.JSONSlice[EducationEntry]  `json:"education"`
	ResumeURL       string                               `json:"resume_url"`
	CreatedAt       time.Time                            `json:"created_at"`
	UpdatedAt       time.Time                            `json:"updated_at"`
}

// Employer is keyed by the signed-in user's id (employers collection).
type Employer struct {
	UserID             string    `gorm:"primaryKey" json:"user_id"`
	Email              string    `json:"email"`
	CompanyName        string    `gorm:"not null" json:"company_name"`
	ContactName        string    `json:"contact_name"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	Industry           string    `json:"industry"`
	CompanySize        string    `json:"company_size"`
	Location           string    `json:"location"`
	CompanyDescription string    `gorm:"type:text" json:"company_description"`
	LogoURL            string    `json:"logo_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Blog struct {
	ID          string                      `gorm:"primaryKey" json:"id"`
	Title       string                      `gorm:"not null" json:"title"`
	Slug        string                      `gorm:"uniqueIndex;not null" json:"slug"`
	Author      string                      `json:"author"`
	Content     string                      `gorm:"type:text" json:"content"`
	Excerpt     string                      `gorm:"type:text" json:"excerpt"`
	Keywords    datatypes.JSONSlice[string] `json:"keywords"`
	SEO         SEOFields                   `gorm:"embedded;embeddedPrefix:seo_" json:"seo"`
	PublishedAt time.Time                   `gorm:"index" json:"published_at"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// SEOManager grants the seo_manager role. Only the bcrypt hash of the password is stored.
type SEOManager struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// All returns every model for migration.
func All() []any {
	return []any{
		&JobPost{}, &EmployerJobPost{},
		&JobApplication{}, &EmployerJobApplication{},
		&JobSeeker{}, &Employer{},
		&Blog{}, &SEOManager{},
	}
}
