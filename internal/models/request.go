package models

// CreateApplicationRequest is validated field by field by the application
// service so each rejection keeps its own message.
type CreateApplicationRequest struct {
	InternshipID string `json:"internship_id" example:"5b0c7a0e-8d5a-4c1e-9d43-2f5c3f0e9a11"`
	StudentID    string `json:"student_id" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	ResumeID     string `json:"resume_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	CoverLetter  string `json:"cover_letter" example:"Hello"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required" example:"accepted"`
}

type StudentProfileRequest struct {
	FirstName      string   `json:"first_name" binding:"required,max=100"`
	LastName       string   `json:"last_name" binding:"required,max=100"`
	Email          string   `json:"email" binding:"required,email"`
	Phone          string   `json:"phone,omitempty" binding:"omitempty,max=30"`
	University     string   `json:"university" binding:"required,max=200"`
	Major          string   `json:"major" binding:"required,max=200"`
	GraduationYear int      `json:"graduation_year" binding:"required,gte=1950,lte=2100"`
	GPA            *float64 `json:"gpa,omitempty" binding:"omitempty,gte=0,lte=10"`
	Bio            string   `json:"bio,omitempty" binding:"omitempty,max=2000"`
	LinkedInURL    string   `json:"linkedin_url,omitempty" binding:"omitempty,url"`
	GitHubURL      string   `json:"github_url,omitempty" binding:"omitempty,url"`
	PortfolioURL   string   `json:"portfolio_url,omitempty" binding:"omitempty,url"`
}

type CompanyProfileRequest struct {
	CompanyName        string `json:"company_name" binding:"required,max=200"`
	CompanyDescription string `json:"company_description" binding:"required"`
	CompanyWebsite     string `json:"company_website,omitempty" binding:"omitempty,url"`
	ContactEmail       string `json:"contact_email" binding:"required,email"`
	ContactPhone       string `json:"contact_phone,omitempty" binding:"omitempty,max=30"`
	CompanyAddress     string `json:"company_address,omitempty" binding:"omitempty,max=500"`
}

type CreateInternshipRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"required"`
	Requirements string   `json:"requirements" binding:"required"`
	Location     string   `json:"location" binding:"required,max=200"`
	Duration     string   `json:"duration" binding:"required,max=100"`
	Stipend      *float64 `json:"stipend,omitempty" binding:"omitempty,gte=0"`
	// ApplicationDeadline accepts RFC 3339 or a plain date (YYYY-MM-DD).
	ApplicationDeadline string `json:"application_deadline" binding:"required" example:"2026-12-31"`
}

type UpdateInternshipRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"user_type" binding:"required,oneof=student company"`
	// Optional display fields copied into the auth user metadata.
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
