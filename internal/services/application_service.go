package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/metrics"
	"internship-portal-backend/internal/models"
)

// Submission rejections, in the order they are checked.
var (
	ErrMissingFields      = apperror.BadRequest("Missing required fields")
	ErrStudentMismatch    = apperror.Unauthorized("Unauthorized")
	ErrInternshipNotFound = apperror.NotFound("Internship not found")
	ErrInternshipInactive = apperror.BadRequest("Internship is no longer active")
	ErrDeadlinePassed     = apperror.BadRequest("Application deadline has passed")
	ErrAlreadyApplied     = apperror.BadRequest("Application already submitted")
	ErrInvalidResume      = apperror.BadRequest("Invalid resume selection")
)

var (
	ErrApplicationNotFound = apperror.NotFound("Application not found")
	ErrInvalidStatus       = apperror.BadRequest("Invalid status")
	ErrStudentIDRequired   = apperror.BadRequest("Student ID required")
)

type ApplicationService struct {
	base
	store Store
}

func NewApplicationService(store Store, opts ...Option) *ApplicationService {
	return &ApplicationService{base: newBase(opts), store: store}
}

// Submit creates a pending application after checking, in order: required
// fields, caller identity, internship existence, activity, deadline,
// uniqueness and resume ownership.
func (s *ApplicationService) Submit(ctx context.Context, actor authz.Actor, req models.CreateApplicationRequest) (*models.Application, error) {
	if isBlank(req.InternshipID) || isBlank(req.StudentID) || isBlank(req.ResumeID) || isBlank(req.CoverLetter) {
		return nil, ErrMissingFields
	}

	studentID := parseID(req.StudentID)
	if authz.Decide(actor, studentID) != authz.Allow {
		return nil, ErrStudentMismatch
	}

	internshipID := parseID(req.InternshipID)
	if internshipID == uuid.Nil {
		return nil, ErrInternshipNotFound
	}
	internship, err := s.store.GetInternship(ctx, internshipID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrInternshipNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to submit application", err)
	}

	if !internship.IsActive {
		return nil, ErrInternshipInactive
	}

	now := s.now()
	if !internship.OpenAt(now) {
		return nil, ErrDeadlinePassed
	}

	exists, err := s.store.ApplicationExists(ctx, studentID, internshipID)
	if err != nil {
		return nil, apperror.Internal("Failed to submit application", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	resumeID := parseID(req.ResumeID)
	if resumeID == uuid.Nil {
		return nil, ErrInvalidResume
	}
	resume, err := s.store.GetResume(ctx, resumeID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrInvalidResume
	}
	if err != nil {
		return nil, apperror.Internal("Failed to submit application", err)
	}
	if resume.StudentID != studentID {
		return nil, ErrInvalidResume
	}

	app := &models.Application{
		ID:           uuid.New(),
		InternshipID: internshipID,
		StudentID:    studentID,
		ResumeID:     uuid.NullUUID{UUID: resumeID, Valid: true},
		CoverLetter:  req.CoverLetter,
		Status:       models.StatusPending,
		AppliedAt:    now,
	}
	if err := s.store.CreateApplication(ctx, app); err != nil {
		// Lost a race with a concurrent submission.
		if errors.Is(err, apperror.ErrConflict) {
			return nil, ErrAlreadyApplied
		}
		return nil, apperror.Internal("Failed to submit application", err)
	}

	metrics.ApplicationSubmitted()
	s.logger.InfoContext(ctx, "application submitted",
		"application_id", app.ID, "internship_id", internshipID, "student_id", studentID)

	return app, nil
}

// Review sets the status of an application to one of the known values and
// stamps reviewed_at. Only the company that owns the internship may do so.
func (s *ApplicationService) Review(ctx context.Context, actor authz.Actor, applicationID, status string) (*models.Application, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	detail, err := s.getDetail(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := authz.AssertOwns(actor, detail.CompanyID, "application"); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateApplicationStatus(ctx, detail.ID, status, s.now())
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to update application status", err)
	}

	metrics.ApplicationReviewed(status)
	s.logger.InfoContext(ctx, "application reviewed",
		"application_id", updated.ID, "status", status, "company_id", actor.ID)

	return updated, nil
}

func (s *ApplicationService) ListForStudent(ctx context.Context, actor authz.Actor, studentID, status string) ([]models.StudentApplication, error) {
	if isBlank(studentID) {
		return nil, ErrStudentIDRequired
	}
	id := parseID(studentID)
	if authz.Decide(actor, id) != authz.Allow {
		return nil, ErrStudentMismatch
	}
	if status != "" && !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	apps, err := s.store.ListStudentApplications(ctx, id, status)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch applications", err)
	}
	return apps, nil
}

func (s *ApplicationService) ListForCompany(ctx context.Context, actor authz.Actor, status string) ([]models.CompanyApplication, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	apps, err := s.store.ListCompanyApplications(ctx, actor.ID, status)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch applications", err)
	}
	return apps, nil
}

// Get returns one application to the student who submitted it or the
// company that owns the internship.
func (s *ApplicationService) Get(ctx context.Context, actor authz.Actor, applicationID string) (*models.ApplicationDetail, error) {
	detail, err := s.getDetail(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if authz.Decide(actor, detail.StudentID) == authz.Allow {
		return detail, nil
	}
	if err := authz.AssertOwns(actor, detail.CompanyID, "application"); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *ApplicationService) getDetail(ctx context.Context, applicationID string) (*models.ApplicationDetail, error) {
	id := parseID(applicationID)
	if id == uuid.Nil {
		return nil, ErrApplicationNotFound
	}
	detail, err := s.store.GetApplicationDetail(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch application", err)
	}
	return detail, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
