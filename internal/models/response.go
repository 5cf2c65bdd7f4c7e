package models

import (
	"database/sql"
	"time"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type StudentResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	University     string    `json:"university"`
	Major          string    `json:"major"`
	GraduationYear int       `json:"graduation_year"`
	GPA            *float64  `json:"gpa"`
	Bio            *string   `json:"bio"`
	LinkedInURL    *string   `json:"linkedin_url"`
	GitHubURL      *string   `json:"github_url"`
	PortfolioURL   *string   `json:"portfolio_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CompanyResponse struct {
	ID                 string    `json:"id"`
	CompanyName        string    `json:"company_name"`
	CompanyDescription string    `json:"company_description"`
	CompanyWebsite     *string   `json:"company_website"`
	ContactEmail       string    `json:"contact_email"`
	ContactPhone       *string   `json:"contact_phone"`
	CompanyAddress     *string   `json:"company_address"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ResumeResponse struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	FileSize   int64     `json:"file_size"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ResumeUploadResponse struct {
	Resume ResumeResponse `json:"resume"`
}

type ResumeListResponse struct {
	Resumes []ResumeResponse `json:"resumes"`
}

type CompanySummary struct {
	ID                 string `json:"id"`
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description,omitempty"`
}

type InternshipResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Requirements        string          `json:"requirements"`
	Location            string          `json:"location"`
	Duration            string          `json:"duration"`
	Stipend             *float64        `json:"stipend"`
	ApplicationDeadline time.Time       `json:"application_deadline"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	Company             *CompanySummary `json:"company,omitempty"`
	HasApplied          *bool           `json:"has_applied,omitempty"`
}

type InternshipListResponse struct {
	Internships []InternshipResponse `json:"internships"`
}

type ApplicationResponse struct {
	ID           string     `json:"id"`
	InternshipID string     `json:"internship_id"`
	StudentID    string     `json:"student_id"`
	ResumeID     *string    `json:"resume_id"`
	CoverLetter  string     `json:"cover_letter"`
	Status       string     `json:"status"`
	AppliedAt    time.Time  `json:"applied_at"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}

type ApplicationCreatedResponse struct {
	Message     string              `json:"message"`
	Application ApplicationResponse `json:"application"`
}

type ApplicationInternshipSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Location string   `json:"location,omitempty"`
	Stipend  *float64 `json:"stipend,omitempty"`
	Company  struct {
		CompanyName string `json:"company_name"`
	} `json:"company"`
}

type ApplicationResumeSummary struct {
	FileName string  `json:"file_name"`
	FileURL  *string `json:"file_url,omitempty"`
}

type StudentSummary struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	University string `json:"university"`
	Major      string `json:"major"`
}

type StudentApplicationResponse struct {
	ApplicationResponse
	Internship ApplicationInternshipSummary `json:"internship"`
	Resume     *ApplicationResumeSummary    `json:"resume"`
}

type StudentApplicationListResponse struct {
	Applications []StudentApplicationResponse `json:"applications"`
}

type CompanyApplicationResponse struct {
	ApplicationResponse
	InternshipTitle string         `json:"internship_title"`
	Student         StudentSummary `json:"student"`
}

type CompanyApplicationListResponse struct {
	Applications []CompanyApplicationResponse `json:"applications"`
}

type ApplicationDetailResponse struct {
	ApplicationResponse
	Internship ApplicationInternshipSummary `json:"internship"`
	Student    StudentResponse              `json:"student"`
	Resume     *ApplicationResumeSummary    `json:"resume"`
}

type StudentDashboardResponse struct {
	Student               StudentResponse              `json:"student"`
	TotalApplications     int                          `json:"total_applications"`
	PendingApplications   int                          `json:"pending_applications"`
	AcceptedApplications  int                          `json:"accepted_applications"`
	ConfirmedApplications int                          `json:"confirmed_applications"`
	RejectedApplications  int                          `json:"rejected_applications"`
	TotalResumes          int                          `json:"total_resumes"`
	Progress              int                          `json:"progress"`
	RecentApplications    []StudentApplicationResponse `json:"recent_applications"`
}

type CompanyDashboardResponse struct {
	Company             CompanyResponse `json:"company"`
	TotalInternships    int             `json:"total_internships"`
	ActiveInternships   int             `json:"active_internships"`
	TotalApplications   int             `json:"total_applications"`
	PendingApplications int             `json:"pending_applications"`
}

type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type SignupResponse struct {
	UserID               string `json:"user_id"`
	Email                string `json:"email"`
	ConfirmationRequired bool   `json:"confirmation_required"`
}

func NewStudentResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:             s.ID.String(),
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          stringPtr(s.Phone),
		University:     s.University,
		Major:          s.Major,
		GraduationYear: s.GraduationYear,
		GPA:            floatPtr(s.GPA),
		Bio:            stringPtr(s.Bio),
		LinkedInURL:    stringPtr(s.LinkedInURL),
		GitHubURL:      stringPtr(s.GitHubURL),
		PortfolioURL:   stringPtr(s.PortfolioURL),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID.String(),
		CompanyName:        c.CompanyName,
		CompanyDescription: c.CompanyDescription,
		CompanyWebsite:     stringPtr(c.CompanyWebsite),
		ContactEmail:       c.ContactEmail,
		ContactPhone:       stringPtr(c.ContactPhone),
		CompanyAddress:     stringPtr(c.CompanyAddress),
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func NewResumeResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ID:         r.ID.String(),
		StudentID:  r.StudentID.String(),
		FileName:   r.FileName,
		FileURL:    r.FileURL,
		FileSize:   r.FileSize,
		IsPrimary:  r.IsPrimary,
		UploadedAt: r.UploadedAt,
	}
}

func NewInternshipResponse(i Internship) InternshipResponse {
	return InternshipResponse{
		ID:                  i.ID.String(),
		CompanyID:           i.CompanyID.String(),
		Title:               i.Title,
		Description:         i.Description,
		Requirements:        i.Requirements,
		Location:            i.Location,
		Duration:            i.Duration,
		Stipend:             floatPtr(i.Stipend),
		ApplicationDeadline: i.ApplicationDeadline,
		IsActive:            i.IsActive,
		CreatedAt:           i.CreatedAt,
	}
}

func NewInternshipListingResponse(l InternshipListing) InternshipResponse {
	resp := NewInternshipResponse(l.Internship)
	resp.Company = &CompanySummary{
		ID:                 l.CompanyID.String(),
		CompanyName:        l.CompanyName,
		CompanyDescription: l.CompanyDescription,
	}
	return resp
}

func NewApplicationResponse(a Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:           a.ID.String(),
		InternshipID: a.InternshipID.String(),
		StudentID:    a.StudentID.String(),
		CoverLetter:  a.CoverLetter,
		Status:       a.Status,
		AppliedAt:    a.AppliedAt,
	}
	if a.ResumeID.Valid {
		resumeID := a.ResumeID.UUID.String()
		resp.ResumeID = &resumeID
	}
	if a.ReviewedAt.Valid {
		reviewedAt := a.ReviewedAt.Time
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

func NewStudentApplicationResponse(a StudentApplication) StudentApplicationResponse {
	resp := StudentApplicationResponse{
		ApplicationResponse: NewApplicationResponse(a.Application),
		Internship: ApplicationInternshipSummary{
			ID:       a.InternshipID.String(),
			Title:    a.InternshipTitle,
			Location: a.InternshipLocation,
			Stipend:  floatPtr(a.InternshipStipend),
		},
	}
	resp.Internship.Company.CompanyName = a.CompanyName
	if a.ResumeFileName.Valid {
		resp.Resume = &ApplicationResumeSummary{FileName: a.ResumeFileName.String}
	}
	return resp
}

func NewCompanyApplicationResponse(a CompanyApplication) CompanyApplicationResponse {
	return CompanyApplicationResponse{
		ApplicationResponse: NewApplicationResponse(a.Application),
		InternshipTitle:     a.InternshipTitle,
		Student: StudentSummary{
			ID:         a.StudentID.String(),
			FirstName:  a.StudentFirstName,
			LastName:   a.StudentLastName,
			Email:      a.StudentEmail,
			University: a.StudentUniversity,
			Major:      a.StudentMajor,
		},
	}
}

func NewApplicationDetailResponse(d ApplicationDetail) ApplicationDetailResponse {
	resp := ApplicationDetailResponse{
		ApplicationResponse: NewApplicationResponse(d.Application),
		Internship: ApplicationInternshipSummary{
			ID:    d.InternshipID.String(),
			Title: d.InternshipTitle,
		},
		Student: NewStudentResponse(d.Student),
	}
	resp.Internship.Company.CompanyName = d.CompanyName
	if d.ResumeFileName.Valid {
		resp.Resume = &ApplicationResumeSummary{
			FileName: d.ResumeFileName.String,
			FileURL:  stringPtr(d.ResumeURL),
		}
	}
	return resp
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
