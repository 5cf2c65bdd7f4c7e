package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

func TestUploadApplyReviewWorkflow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	blobs := newMemBlobs()
	clock := &testClock{now: baseTime}
	opts := testOptions(clock)

	resumes := services.NewResumeService(store, blobs, opts...)
	apps := services.NewApplicationService(store, opts...)

	student := seedStudent(t, store)
	company := seedCompany(t, store, "Acme")
	internship := seedInternship(t, store, company, "Backend Intern", baseTime.Add(24*time.Hour), true)

	resume, err := resumes.Upload(ctx, student, pdfUpload(student, "cv.pdf", 4096))
	require.NoError(t, err)
	_, err = resumes.SetPrimary(ctx, student, resume.ID.String())
	require.NoError(t, err)

	clock.Set(baseTime.Add(time.Hour))
	app, err := apps.Submit(ctx, student, applyRequest(internship, student, *resume))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, resume.ID, app.ResumeID.UUID)

	incoming, err := apps.ListForCompany(ctx, company, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "Ada", incoming[0].StudentFirstName)

	clock.Set(baseTime.Add(2 * time.Hour))
	_, err = apps.Review(ctx, company, app.ID.String(), models.StatusAccepted)
	require.NoError(t, err)

	mine, err := apps.ListForStudent(ctx, student, student.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusAccepted, mine[0].Status)
	assert.True(t, mine[0].ReviewedAt.Valid)
	assert.Equal(t, baseTime.Add(2*time.Hour), mine[0].ReviewedAt.Time)
	assert.Equal(t, "cv.pdf", mine[0].ResumeFileName.String)

	// Deleting the resume afterwards keeps the application.
	require.NoError(t, resumes.Delete(ctx, student, resume.ID.String()))
	mine, err = apps.ListForStudent(ctx, student, student.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.False(t, mine[0].ResumeID.Valid)
}
