package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Internship struct {
	ID                  uuid.UUID
	CompanyID           uuid.UUID
	Title               string
	Description         string
	Requirements        string
	Location            string
	Duration            string
	Stipend             sql.NullFloat64
	ApplicationDeadline time.Time
	IsActive            bool
	CreatedAt           time.Time
}

// InternshipListing is an internship joined with its company summary.
type InternshipListing struct {
	Internship
	CompanyName        string
	CompanyDescription string
}

// OpenAt reports whether the posting accepts applications at t.
// The deadline itself is still inside the window.
func (i Internship) OpenAt(t time.Time) bool {
	return i.IsActive && !t.After(i.ApplicationDeadline)
}

// InternshipFilter narrows a listing. Zero values mean no restriction.
type InternshipFilter struct {
	// OpenAt keeps only active postings whose deadline is not before it.
	OpenAt    *time.Time
	CompanyID uuid.NullUUID
}
