package services

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/models"
)

const recentApplicationsLimit = 5

type StudentDashboard struct {
	Student      models.Student
	Counts       map[string]int
	Total        int
	TotalResumes int
	Progress     int
	Recent       []models.StudentApplication
}

type CompanyDashboard struct {
	Company             models.Company
	TotalInternships    int
	ActiveInternships   int
	TotalApplications   int
	PendingApplications int
}

type DashboardService struct {
	base
	store Store
}

func NewDashboardService(store Store, opts ...Option) *DashboardService {
	return &DashboardService{base: newBase(opts), store: store}
}

// Progress weighs pending applications at 25, accepted at 50 and confirmed
// at 100, averaged over every application. Reviewed and rejected count
// toward the total only.
func Progress(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return 0
	}
	score := counts[models.StatusPending]*25 +
		counts[models.StatusAccepted]*50 +
		counts[models.StatusConfirmed]*100
	return int(math.Round(float64(score) / float64(total)))
}

func (s *DashboardService) Student(ctx context.Context, actor authz.Actor) (*StudentDashboard, error) {
	var (
		dash    StudentDashboard
		student *models.Student
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = s.store.GetStudent(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		dash.Counts, err = s.store.CountStudentApplications(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		dash.TotalResumes, err = s.store.CountResumes(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		apps, err := s.store.ListStudentApplications(gctx, actor.ID, "")
		if err != nil {
			return err
		}
		if len(apps) > recentApplicationsLimit {
			apps = apps[:recentApplicationsLimit]
		}
		dash.Recent = apps
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		return nil, apperror.Internal("Failed to load dashboard", err)
	}

	dash.Student = *student
	for _, n := range dash.Counts {
		dash.Total += n
	}
	dash.Progress = Progress(dash.Counts)
	return &dash, nil
}

func (s *DashboardService) Company(ctx context.Context, actor authz.Actor) (*CompanyDashboard, error) {
	var (
		dash    CompanyDashboard
		company *models.Company
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, err = s.store.GetCompany(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		dash.TotalInternships, dash.ActiveInternships, err = s.store.CountCompanyInternships(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		dash.TotalApplications, dash.PendingApplications, err = s.store.CountCompanyApplications(gctx, actor.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrCompanyProfileNotFound
		}
		return nil, apperror.Internal("Failed to load dashboard", err)
	}

	dash.Company = *company
	return &dash, nil
}
