package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/metrics"
	"internship-portal-backend/internal/models"
)

const (
	MaxResumeSize     = 5 * 1024 * 1024
	ResumeContentType = "application/pdf"
)

var (
	ErrMissingUpload   = apperror.BadRequest("Missing file or student ID")
	ErrNotPDF          = apperror.BadRequest("Only PDF files are allowed")
	ErrResumeTooLarge  = apperror.BadRequest("File size must be less than 5MB")
	ErrUploadForbidden = apperror.Unauthorized("Unauthorized")
	ErrResumeNotFound  = apperror.NotFound("Resume not found")
)

// ResumeUpload is one multipart file as received from the client. Size is
// the declared size; Content is read only after every check passes.
type ResumeUpload struct {
	StudentID   string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ResumeService struct {
	base
	store Store
	blobs BlobStore
}

func NewResumeService(store Store, blobs BlobStore, opts ...Option) *ResumeService {
	return &ResumeService{base: newBase(opts), store: store, blobs: blobs}
}

// Upload validates the file, stores it at {student_id}/{unix_millis}-{name}
// and records it as a non-primary resume. A failed insert leaves the blob in
// place.
func (s *ResumeService) Upload(ctx context.Context, actor authz.Actor, in ResumeUpload) (*models.Resume, error) {
	if in.Content == nil || in.FileName == "" || isBlank(in.StudentID) {
		return nil, ErrMissingUpload
	}
	if in.ContentType != ResumeContentType {
		return nil, ErrNotPDF
	}
	if in.Size > MaxResumeSize {
		return nil, ErrResumeTooLarge
	}

	studentID := parseID(in.StudentID)
	if authz.Decide(actor, studentID) != authz.Allow {
		return nil, ErrUploadForbidden
	}

	data, err := io.ReadAll(io.LimitReader(in.Content, MaxResumeSize+1))
	if err != nil {
		return nil, apperror.Internal("Failed to upload file", err)
	}
	if len(data) > MaxResumeSize {
		return nil, ErrResumeTooLarge
	}

	fileName := cleanFileName(in.FileName)
	now := s.now()
	objectPath := fmt.Sprintf("%s/%d-%s", studentID, now.UnixMilli(), fileName)

	publicURL, err := s.blobs.Upload(objectPath, in.ContentType, data)
	if err != nil {
		return nil, apperror.Internal("Failed to upload file", err)
	}

	resume := &models.Resume{
		ID:         uuid.New(),
		StudentID:  studentID,
		FileName:   fileName,
		FileURL:    publicURL,
		FileSize:   int64(len(data)),
		IsPrimary:  false,
		UploadedAt: now,
	}
	if err := s.store.CreateResume(ctx, resume); err != nil {
		s.logger.ErrorContext(ctx, "resume row insert failed, blob left behind",
			"path", objectPath, "error", err)
		return nil, apperror.Internal("Failed to save resume record", err)
	}

	metrics.ResumeUploaded()
	return resume, nil
}

func (s *ResumeService) List(ctx context.Context, actor authz.Actor) ([]models.Resume, error) {
	resumes, err := s.store.ListResumes(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch resumes", err)
	}
	return resumes, nil
}

// SetPrimary clears the flag on every resume of the caller, then sets it on
// the chosen one. The two writes are not atomic: a failure in between leaves
// the student with no primary resume.
func (s *ResumeService) SetPrimary(ctx context.Context, actor authz.Actor, resumeID string) (*models.Resume, error) {
	resume, err := s.owned(ctx, actor, resumeID)
	if err != nil {
		return nil, err
	}

	if err := s.store.ClearPrimaryResumes(ctx, actor.ID); err != nil {
		return nil, apperror.Internal("Failed to update primary resume", err)
	}
	if err := s.store.SetResumePrimary(ctx, resume.ID); err != nil {
		s.logger.WarnContext(ctx, "student left without a primary resume",
			"student_id", actor.ID, "resume_id", resume.ID, "error", err)
		return nil, apperror.Internal("Failed to update primary resume", err)
	}

	resume.IsPrimary = true
	return resume, nil
}

// Delete removes the blob best-effort, then the row.
func (s *ResumeService) Delete(ctx context.Context, actor authz.Actor, resumeID string) error {
	resume, err := s.owned(ctx, actor, resumeID)
	if err != nil {
		return err
	}

	if objectPath, err := s.blobs.PathFromURL(resume.FileURL); err != nil {
		s.logger.WarnContext(ctx, "resume url has no storage path", "resume_id", resume.ID, "url", resume.FileURL)
	} else if err := s.blobs.Remove(objectPath); err != nil {
		s.logger.WarnContext(ctx, "failed to delete resume from storage",
			"resume_id", resume.ID, "path", objectPath, "error", err)
	}

	if err := s.store.DeleteResume(ctx, resume.ID); err != nil {
		return apperror.Internal("Failed to delete resume record", err)
	}
	return nil
}

// owned looks the resume up scoped to the caller, so a foreign resume is
// indistinguishable from a missing one.
func (s *ResumeService) owned(ctx context.Context, actor authz.Actor, resumeID string) (*models.Resume, error) {
	id := parseID(resumeID)
	if id == uuid.Nil {
		return nil, ErrResumeNotFound
	}
	resume, err := s.store.GetResume(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch resume", err)
	}
	if authz.Decide(actor, resume.StudentID) != authz.Allow {
		return nil, ErrResumeNotFound
	}
	return resume, nil
}

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "resume.pdf"
	}
	return name
}
