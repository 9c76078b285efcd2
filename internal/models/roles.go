package models

// Role is the single role a request is classified into.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleEmployer   Role = "employer"
	RoleJobSeeker  Role = "job_seeker"
	RoleSEOManager Role = "seo_manager"
	RoleNone       Role = "none"
)

func (r Role) String() string { return string(r) }
