package services

import (
	"context"
	"errors"
	"strings"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/models"
)

var (
	ErrStudentProfileExists   = apperror.Conflict("Student profile already exists")
	ErrCompanyProfileExists   = apperror.Conflict("Company profile already exists")
	ErrStudentProfileNotFound = apperror.NotFound("Student profile not found")
	ErrCompanyProfileNotFound = apperror.NotFound("Company profile not found")
)

// ProfileService manages the one student or company profile each account
// owns. Profile ids are the auth user ids.
type ProfileService struct {
	base
	store Store
}

func NewProfileService(store Store, opts ...Option) *ProfileService {
	return &ProfileService{base: newBase(opts), store: store}
}

func (s *ProfileService) CreateStudent(ctx context.Context, actor authz.Actor, req models.StudentProfileRequest) (*models.Student, error) {
	student := &models.Student{ID: actor.ID}
	applyStudentRequest(student, req)

	if err := s.store.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, ErrStudentProfileExists
		}
		return nil, apperror.Internal("Failed to create student profile", err)
	}
	return student, nil
}

func (s *ProfileService) GetStudent(ctx context.Context, actor authz.Actor) (*models.Student, error) {
	student, err := s.store.GetStudent(ctx, actor.ID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrStudentProfileNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch student profile", err)
	}
	return student, nil
}

func (s *ProfileService) UpdateStudent(ctx context.Context, actor authz.Actor, req models.StudentProfileRequest) (*models.Student, error) {
	student, err := s.GetStudent(ctx, actor)
	if err != nil {
		return nil, err
	}
	applyStudentRequest(student, req)

	if err := s.store.UpdateStudent(ctx, student); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		return nil, apperror.Internal("Failed to update student profile", err)
	}
	return student, nil
}

func (s *ProfileService) CreateCompany(ctx context.Context, actor authz.Actor, req models.CompanyProfileRequest) (*models.Company, error) {
	company := &models.Company{ID: actor.ID}
	applyCompanyRequest(company, req)

	if err := s.store.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, ErrCompanyProfileExists
		}
		return nil, apperror.Internal("Failed to create company profile", err)
	}
	return company, nil
}

func (s *ProfileService) GetCompany(ctx context.Context, actor authz.Actor) (*models.Company, error) {
	company, err := s.store.GetCompany(ctx, actor.ID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrCompanyProfileNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to fetch company profile", err)
	}
	return company, nil
}

func (s *ProfileService) UpdateCompany(ctx context.Context, actor authz.Actor, req models.CompanyProfileRequest) (*models.Company, error) {
	company, err := s.GetCompany(ctx, actor)
	if err != nil {
		return nil, err
	}
	applyCompanyRequest(company, req)

	if err := s.store.UpdateCompany(ctx, company); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrCompanyProfileNotFound
		}
		return nil, apperror.Internal("Failed to update company profile", err)
	}
	return company, nil
}

func applyStudentRequest(s *models.Student, req models.StudentProfileRequest) {
	s.FirstName = strings.TrimSpace(req.FirstName)
	s.LastName = strings.TrimSpace(req.LastName)
	s.Email = strings.TrimSpace(req.Email)
	s.Phone = nullString(req.Phone)
	s.University = strings.TrimSpace(req.University)
	s.Major = strings.TrimSpace(req.Major)
	s.GraduationYear = req.GraduationYear
	s.GPA = nullFloat(req.GPA)
	s.Bio = nullString(req.Bio)
	s.LinkedInURL = nullString(req.LinkedInURL)
	s.GitHubURL = nullString(req.GitHubURL)
	s.PortfolioURL = nullString(req.PortfolioURL)
}

func applyCompanyRequest(c *models.Company, req models.CompanyProfileRequest) {
	c.CompanyName = strings.TrimSpace(req.CompanyName)
	c.CompanyDescription = req.CompanyDescription
	c.CompanyWebsite = nullString(req.CompanyWebsite)
	c.ContactEmail = strings.TrimSpace(req.ContactEmail)
	c.ContactPhone = nullString(req.ContactPhone)
	c.CompanyAddress = nullString(req.CompanyAddress)
}
