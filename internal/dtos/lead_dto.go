package dtos

const (
	LeadKindJobSeeker = "job_seeker"
	LeadKindEmployer  = "employer"
)

// LeadRequest is the popup lead form. Kind selects which variant fields apply.
type LeadRequest struct {
	Kind  string `json:"kind" binding:"required,leadkind"`
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,notblank"`
	City  string `json:"city"`

	// Job seeker variant
	DesiredRole     string   `json:"desired_role"`
	ExperienceYears *int     `json:"experience_years" binding:"omitempty,min=0,max=60"`
	Skills          []string `json:"skills"`

	// Employer variant
	CompanyName string `json:"company_name"`
	HiringFor   string `json:"hiring_for"`
	Openings    int    `json:"openings" binding:"min=0"`
	Message     string `json:"message" binding:"max=2000"`
}
