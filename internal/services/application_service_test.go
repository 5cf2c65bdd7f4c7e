package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

type applicationFixture struct {
	store      *memStore
	clock      *testClock
	svc        *services.ApplicationService
	student    authz.Actor
	company    authz.Actor
	internship models.Internship
	resume     models.Resume
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	store := newMemStore()
	clock := &testClock{now: baseTime}
	f := &applicationFixture{
		store:   store,
		clock:   clock,
		svc:     services.NewApplicationService(store, testOptions(clock)...),
		student: seedStudent(t, store),
		company: seedCompany(t, store, "Acme"),
	}
	f.internship = seedInternship(t, store, f.company, "Backend Intern", baseTime.Add(24*time.Hour), true)
	f.resume = seedResume(t, store, f.student, "cv.pdf")
	return f
}

func TestSubmit_CreatesPendingApplication(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, baseTime, app.AppliedAt)
	assert.Equal(t, f.resume.ID, app.ResumeID.UUID)
	assert.False(t, app.ReviewedAt.Valid)
}

func TestSubmit_Twice(t *testing.T) {
	f := newApplicationFixture(t)
	req := applyRequest(f.internship, f.student, f.resume)

	_, err := f.svc.Submit(context.Background(), f.student, req)
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), f.student, req)
	assert.ErrorIs(t, err, services.ErrAlreadyApplied)
	assert.Equal(t, "Application already submitted", err.Error())
}

func TestSubmit_InsertRaceReportsAlreadyApplied(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	// The pre-check misses the existing row; the insert still catches it.
	other := services.NewApplicationService(existsAlwaysFalse{f.store}, testOptions(f.clock)...)
	_, err = other.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	assert.ErrorIs(t, err, services.ErrAlreadyApplied)
}

type existsAlwaysFalse struct {
	*memStore
}

func (existsAlwaysFalse) ApplicationExists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestSubmit_CheckOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *applicationFixture, req *models.CreateApplicationRequest)
		want    error
		message string
		status  int
	}{
		{
			name:    "missing cover letter",
			mutate:  func(f *applicationFixture, req *models.CreateApplicationRequest) { req.CoverLetter = "   " },
			want:    services.ErrMissingFields,
			message: "Missing required fields",
			status:  http.StatusBadRequest,
		},
		{
			name: "missing fields win over identity mismatch",
			mutate: func(f *applicationFixture, req *models.CreateApplicationRequest) {
				req.ResumeID = ""
				req.StudentID = uuid.NewString()
			},
			want:   services.ErrMissingFields,
			status: http.StatusBadRequest,
		},
		{
			name:    "student mismatch",
			mutate:  func(f *applicationFixture, req *models.CreateApplicationRequest) { req.StudentID = uuid.NewString() },
			want:    services.ErrStudentMismatch,
			message: "Unauthorized",
			status:  http.StatusUnauthorized,
		},
		{
			name:    "unknown internship",
			mutate:  func(f *applicationFixture, req *models.CreateApplicationRequest) { req.InternshipID = uuid.NewString() },
			want:    services.ErrInternshipNotFound,
			message: "Internship not found",
			status:  http.StatusNotFound,
		},
		{
			name:   "malformed internship id",
			mutate: func(f *applicationFixture, req *models.CreateApplicationRequest) { req.InternshipID = "abc" },
			want:   services.ErrInternshipNotFound,
			status: http.StatusNotFound,
		},
		{
			name: "inactive internship",
			mutate: func(f *applicationFixture, req *models.CreateApplicationRequest) {
				i := seedInternshipFor(f, baseTime.Add(time.Hour), false)
				req.InternshipID = i.ID.String()
			},
			want:    services.ErrInternshipInactive,
			message: "Internship is no longer active",
			status:  http.StatusBadRequest,
		},
		{
			name: "inactive wins over expired",
			mutate: func(f *applicationFixture, req *models.CreateApplicationRequest) {
				i := seedInternshipFor(f, baseTime.Add(-time.Hour), false)
				req.InternshipID = i.ID.String()
			},
			want:   services.ErrInternshipInactive,
			status: http.StatusBadRequest,
		},
		{
			name: "deadline passed",
			mutate: func(f *applicationFixture, req *models.CreateApplicationRequest) {
				i := seedInternshipFor(f, baseTime.Add(-time.Hour), true)
				req.InternshipID = i.ID.String()
			},
			want:    services.ErrDeadlinePassed,
			message: "Application deadline has passed",
			status:  http.StatusBadRequest,
		},
		{
			name:    "unknown resume",
			mutate:  func(f *applicationFixture, req *models.CreateApplicationRequest) { req.ResumeID = uuid.NewString() },
			want:    services.ErrInvalidResume,
			message: "Invalid resume selection",
			status:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newApplicationFixture(t)
			req := applyRequest(f.internship, f.student, f.resume)
			tt.mutate(f, &req)

			_, err := f.svc.Submit(context.Background(), f.student, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.status, apperror.StatusOf(err))
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func seedInternshipFor(f *applicationFixture, deadline time.Time, active bool) models.Internship {
	i := &models.Internship{
		ID:                  uuid.New(),
		CompanyID:           f.company.ID,
		Title:               "Other",
		ApplicationDeadline: deadline,
		IsActive:            active,
	}
	_ = f.store.CreateInternship(context.Background(), i)
	return *i
}

func TestSubmit_DeadlineBoundary(t *testing.T) {
	f := newApplicationFixture(t)
	deadline := f.internship.ApplicationDeadline

	f.clock.Set(deadline.Add(time.Second))
	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	assert.ErrorIs(t, err, services.ErrDeadlinePassed)

	f.clock.Set(deadline)
	_, err = f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	assert.NoError(t, err, "the deadline instant is still open")

	g := newApplicationFixture(t)
	g.clock.Set(g.internship.ApplicationDeadline.Add(-time.Second))
	_, err = g.svc.Submit(context.Background(), g.student, applyRequest(g.internship, g.student, g.resume))
	assert.NoError(t, err)
}

func TestSubmit_ForeignResume(t *testing.T) {
	f := newApplicationFixture(t)
	other := seedStudent(t, f.store)
	foreign := seedResume(t, f.store, other, "theirs.pdf")

	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, foreign))
	assert.ErrorIs(t, err, services.ErrInvalidResume)

	exists, _ := f.store.ApplicationExists(context.Background(), f.student.ID, f.internship.ID)
	assert.False(t, exists)
}

func TestSubmit_DownstreamFailureIsInternal(t *testing.T) {
	f := newApplicationFixture(t)
	f.store.FailOn["GetInternship"] = errors.New("connection reset")

	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
	assert.Equal(t, "connection reset", apperror.Detail(err))
}

func TestSubmit_InsertFailureIsInternal(t *testing.T) {
	f := newApplicationFixture(t)
	f.store.FailOn["CreateApplication"] = errors.New("disk full")

	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(err))
	assert.Equal(t, "Failed to submit application", err.Error())
}

func TestReview_OwnerSetsStatusAndReviewedAt(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	f.clock.Set(baseTime.Add(2 * time.Hour))
	updated, err := f.svc.Review(context.Background(), f.company, app.ID.String(), "accepted")
	require.NoError(t, err)

	assert.Equal(t, models.StatusAccepted, updated.Status)
	require.True(t, updated.ReviewedAt.Valid)
	assert.Equal(t, baseTime.Add(2*time.Hour), updated.ReviewedAt.Time)
}

func TestReview_NonOwnerRejected(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	intruder := seedCompany(t, f.store, "Globex")
	_, err = f.svc.Review(context.Background(), intruder, app.ID.String(), "rejected")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))

	detail, _ := f.store.GetApplicationDetail(context.Background(), app.ID)
	assert.Equal(t, models.StatusPending, detail.Status)
	assert.False(t, detail.ReviewedAt.Valid)
}

func TestReview_AnyKnownStatusWithoutTransitionCheck(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	for _, status := range []string{"rejected", "pending", "confirmed", "reviewed"} {
		updated, err := f.svc.Review(context.Background(), f.company, app.ID.String(), status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestReview_Rejections(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	_, err = f.svc.Review(context.Background(), f.company, app.ID.String(), "hired")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	_, err = f.svc.Review(context.Background(), f.company, uuid.NewString(), "accepted")
	assert.ErrorIs(t, err, services.ErrApplicationNotFound)

	_, err = f.svc.Review(context.Background(), f.company, "not-a-uuid", "accepted")
	assert.ErrorIs(t, err, services.ErrApplicationNotFound)
}

func TestListForStudent(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	apps, err := f.svc.ListForStudent(context.Background(), f.student, f.student.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Backend Intern", apps[0].InternshipTitle)
	assert.Equal(t, "Acme", apps[0].CompanyName)
	assert.Equal(t, "cv.pdf", apps[0].ResumeFileName.String)

	_, err = f.svc.ListForStudent(context.Background(), f.student, "", "")
	assert.ErrorIs(t, err, services.ErrStudentIDRequired)

	_, err = f.svc.ListForStudent(context.Background(), f.student, uuid.NewString(), "")
	assert.ErrorIs(t, err, services.ErrStudentMismatch)

	apps, err = f.svc.ListForStudent(context.Background(), f.student, f.student.ID.String(), "accepted")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestListForCompany_OnlyOwnInternships(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	apps, err := f.svc.ListForCompany(context.Background(), f.company, "")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Ada", apps[0].StudentFirstName)

	other := seedCompany(t, f.store, "Globex")
	apps, err = f.svc.ListForCompany(context.Background(), other, "")
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestGet_VisibleToStudentAndOwner(t *testing.T) {
	f := newApplicationFixture(t)
	app, err := f.svc.Submit(context.Background(), f.student, applyRequest(f.internship, f.student, f.resume))
	require.NoError(t, err)

	detail, err := f.svc.Get(context.Background(), f.student, app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", detail.ResumeFileName.String)

	detail, err = f.svc.Get(context.Background(), f.company, app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ada", detail.Student.FirstName)

	stranger := seedStudent(t, f.store)
	_, err = f.svc.Get(context.Background(), stranger, app.ID.String())
	assert.Equal(t, http.StatusForbidden, apperror.StatusOf(err))
}
