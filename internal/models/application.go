package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Application statuses. Any of them may be written by the owning company;
// no transition order is enforced.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusConfirmed = "confirmed"
)

var ApplicationStatuses = []string{
	StatusPending,
	StatusReviewed,
	StatusAccepted,
	StatusRejected,
	StatusConfirmed,
}

func IsValidStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Application struct {
	ID           uuid.UUID
	InternshipID uuid.UUID
	StudentID    uuid.UUID
	// ResumeID is cleared when the student later deletes the resume.
	ResumeID    uuid.NullUUID
	CoverLetter string
	Status      string
	AppliedAt   time.Time
	ReviewedAt  sql.NullTime
}

// StudentApplication is an application as shown to the applying student.
type StudentApplication struct {
	Application
	InternshipTitle    string
	InternshipLocation string
	InternshipStipend  sql.NullFloat64
	CompanyName        string
	ResumeFileName     sql.NullString
}

// CompanyApplication is an application as shown to the owning company.
type CompanyApplication struct {
	Application
	InternshipTitle   string
	StudentFirstName  string
	StudentLastName   string
	StudentEmail      string
	StudentUniversity string
	StudentMajor      string
}

// ApplicationDetail carries everything needed to review one application,
// including the owning company used for authorization.
type ApplicationDetail struct {
	Application
	CompanyID       uuid.UUID
	CompanyName     string
	InternshipTitle string
	Student         Student
	ResumeFileName  sql.NullString
	ResumeURL       sql.NullString
}
