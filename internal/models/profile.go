package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Student.ID is the Supabase auth user id.
type Student struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	Phone          sql.NullString
	University     string
	Major          string
	GraduationYear int
	GPA            sql.NullFloat64
	Bio            sql.NullString
	LinkedInURL    sql.NullString
	GitHubURL      sql.NullString
	PortfolioURL   sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Company.ID is the Supabase auth user id.
type Company struct {
	ID                 uuid.UUID
	CompanyName        string
	CompanyDescription string
	CompanyWebsite     sql.NullString
	ContactEmail       string
	ContactPhone       sql.NullString
	CompanyAddress     sql.NullString
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
