package dtos

type ApplicationRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
	ResumeURL   string `json:"resume_url" binding:"omitempty,url"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required,appstatus"`
}

// CandidateQuery binds the employer's applicant filter form. Skills is a
// comma separated list.
type CandidateQuery struct {
	Status        string `form:"status" binding:"omitempty,appstatus"`
	Skills        string `form:"skills"`
	MinExperience int    `form:"min_experience" binding:"min=0"`
	Location      string `form:"location"`
	Query         string `form:"q"`
}
