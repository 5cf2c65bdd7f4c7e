package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

func studentRequest() models.StudentProfileRequest {
	gpa := 3.7
	return models.StudentProfileRequest{
		FirstName:      " Grace ",
		LastName:       "Hopper",
		Email:          "grace@example.com",
		University:     "Yale",
		Major:          "Mathematics",
		GraduationYear: 2027,
		GPA:            &gpa,
		GitHubURL:      "https://github.com/grace",
	}
}

func TestStudentProfileLifecycle(t *testing.T) {
	store := newMemStore()
	svc := services.NewProfileService(store)
	actor := authz.Actor{ID: uuid.New(), Role: authz.RoleStudent}

	_, err := svc.GetStudent(context.Background(), actor)
	assert.ErrorIs(t, err, services.ErrStudentProfileNotFound)

	created, err := svc.CreateStudent(context.Background(), actor, studentRequest())
	require.NoError(t, err)
	assert.Equal(t, actor.ID, created.ID)
	assert.Equal(t, "Grace", created.FirstName)
	assert.True(t, created.GPA.Valid)
	assert.False(t, created.LinkedInURL.Valid)
	assert.Equal(t, "https://github.com/grace", created.GitHubURL.String)

	_, err = svc.CreateStudent(context.Background(), actor, studentRequest())
	assert.ErrorIs(t, err, services.ErrStudentProfileExists)
	assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))

	req := studentRequest()
	req.Major = "Physics"
	req.GPA = nil
	updated, err := svc.UpdateStudent(context.Background(), actor, req)
	require.NoError(t, err)
	assert.Equal(t, "Physics", updated.Major)
	assert.False(t, updated.GPA.Valid)

	got, err := svc.GetStudent(context.Background(), actor)
	require.NoError(t, err)
	assert.Equal(t, "Physics", got.Major)
}

func TestCompanyProfileLifecycle(t *testing.T) {
	store := newMemStore()
	svc := services.NewProfileService(store)
	actor := authz.Actor{ID: uuid.New(), Role: authz.RoleCompany}
	req := models.CompanyProfileRequest{
		CompanyName:        "Acme",
		CompanyDescription: "Rockets",
		ContactEmail:       "hr@acme.test",
	}

	_, err := svc.UpdateCompany(context.Background(), actor, req)
	assert.ErrorIs(t, err, services.ErrCompanyProfileNotFound)

	created, err := svc.CreateCompany(context.Background(), actor, req)
	require.NoError(t, err)
	assert.False(t, created.CompanyWebsite.Valid)

	_, err = svc.CreateCompany(context.Background(), actor, req)
	assert.ErrorIs(t, err, services.ErrCompanyProfileExists)

	req.CompanyWebsite = "https://acme.test"
	updated, err := svc.UpdateCompany(context.Background(), actor, req)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test", updated.CompanyWebsite.String)
}
