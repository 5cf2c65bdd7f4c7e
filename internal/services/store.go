package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"internship-portal-backend/internal/models"
)

type StudentStore interface {
	CreateStudent(ctx context.Context, s *models.Student) error
	GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error)
	UpdateStudent(ctx context.Context, s *models.Student) error
}

type CompanyStore interface {
	CreateCompany(ctx context.Context, c *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
}

type ResumeStore interface {
	CreateResume(ctx context.Context, r *models.Resume) error
	GetResume(ctx context.Context, id uuid.UUID) (*models.Resume, error)
	ListResumes(ctx context.Context, studentID uuid.UUID) ([]models.Resume, error)
	CountResumes(ctx context.Context, studentID uuid.UUID) (int, error)
	ClearPrimaryResumes(ctx context.Context, studentID uuid.UUID) error
	SetResumePrimary(ctx context.Context, id uuid.UUID) error
	DeleteResume(ctx context.Context, id uuid.UUID) error
}

type InternshipStore interface {
	CreateInternship(ctx context.Context, i *models.Internship) error
	GetInternship(ctx context.Context, id uuid.UUID) (*models.Internship, error)
	GetInternshipListing(ctx context.Context, id uuid.UUID) (*models.InternshipListing, error)
	ListInternships(ctx context.Context, filter models.InternshipFilter) ([]models.InternshipListing, error)
	SetInternshipActive(ctx context.Context, id uuid.UUID, active bool) (*models.Internship, error)
	CountCompanyInternships(ctx context.Context, companyID uuid.UUID) (total, active int, err error)
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, a *models.Application) error
	ApplicationExists(ctx context.Context, studentID, internshipID uuid.UUID) (bool, error)
	GetApplicationDetail(ctx context.Context, id uuid.UUID) (*models.ApplicationDetail, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, reviewedAt time.Time) (*models.Application, error)
	ListStudentApplications(ctx context.Context, studentID uuid.UUID, status string) ([]models.StudentApplication, error)
	ListCompanyApplications(ctx context.Context, companyID uuid.UUID, status string) ([]models.CompanyApplication, error)
	CountStudentApplications(ctx context.Context, studentID uuid.UUID) (map[string]int, error)
	CountCompanyApplications(ctx context.Context, companyID uuid.UUID) (total, pending int, err error)
}

// Store is everything the services read and write. supabase.DatabaseClient
// implements it.
type Store interface {
	StudentStore
	CompanyStore
	ResumeStore
	InternshipStore
	ApplicationStore
}

// BlobStore holds resume files. supabase.StorageClient implements it.
type BlobStore interface {
	Upload(path, contentType string, data []byte) (string, error)
	Remove(path string) error
	PathFromURL(publicURL string) (string, error)
}

// Clock is swapped in tests.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

type base struct {
	now    Clock
	logger *slog.Logger
}

type Option func(*base)

func WithClock(c Clock) Option {
	return func(b *base) { b.now = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *base) { b.logger = l }
}

func newBase(opts []Option) base {
	b := base{now: systemClock, logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// parseID returns uuid.Nil for anything that is not a UUID; callers treat
// that as "not found".
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil
	}
	return id
}
