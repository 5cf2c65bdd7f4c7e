package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(t time.Time) { c.now = t }

func testOptions(clock *testClock) []services.Option {
	return []services.Option{
		services.WithClock(clock.Now),
		services.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func seedStudent(t *testing.T, store *memStore) authz.Actor {
	t.Helper()
	s := &models.Student{
		ID:             uuid.New(),
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		University:     "State University",
		Major:          "Computer Science",
		GraduationYear: 2027,
	}
	require.NoError(t, store.CreateStudent(context.Background(), s))
	return authz.Actor{ID: s.ID, Role: authz.RoleStudent}
}

func seedCompany(t *testing.T, store *memStore, name string) authz.Actor {
	t.Helper()
	c := &models.Company{
		ID:                 uuid.New(),
		CompanyName:        name,
		CompanyDescription: "We build things",
		ContactEmail:       "jobs@example.com",
	}
	require.NoError(t, store.CreateCompany(context.Background(), c))
	return authz.Actor{ID: c.ID, Role: authz.RoleCompany}
}

func seedInternship(t *testing.T, store *memStore, company authz.Actor, title string, deadline time.Time, active bool) models.Internship {
	t.Helper()
	i := &models.Internship{
		ID:                  uuid.New(),
		CompanyID:           company.ID,
		Title:               title,
		Description:         "Work on real projects",
		Requirements:        "Go",
		Location:            "Remote",
		Duration:            "3 months",
		ApplicationDeadline: deadline,
		IsActive:            active,
	}
	require.NoError(t, store.CreateInternship(context.Background(), i))
	return *i
}

func seedResume(t *testing.T, store *memStore, student authz.Actor, name string) models.Resume {
	t.Helper()
	r := &models.Resume{
		ID:         uuid.New(),
		StudentID:  student.ID,
		FileName:   name,
		FileURL:    "https://project.supabase.co/storage/v1/object/public/resumes/" + student.ID.String() + "/1-" + name,
		FileSize:   1024,
		UploadedAt: baseTime,
	}
	require.NoError(t, store.CreateResume(context.Background(), r))
	return *r
}

func applyRequest(internship models.Internship, student authz.Actor, resume models.Resume) models.CreateApplicationRequest {
	return models.CreateApplicationRequest{
		InternshipID: internship.ID.String(),
		StudentID:    student.ID.String(),
		ResumeID:     resume.ID.String(),
		CoverLetter:  "Hello",
	}
}
