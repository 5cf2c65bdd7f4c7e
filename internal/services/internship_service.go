package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/models"
)

var (
	ErrCompanyProfileRequired = apperror.Forbidden("Complete your company profile before posting internships")
	ErrInvalidDeadline        = apperror.BadRequest("application_deadline must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	ErrDeadlineInPast         = apperror.BadRequest("application_deadline must be in the future")
)

// ListInternshipsInput filters the browse listing.
type ListInternshipsInput struct {
	// ActiveOnly hides inactive postings and postings past their deadline.
	ActiveOnly bool
	// Query matches title, company name or location, case-insensitively.
	Query string
}

type InternshipService struct {
	base
	store Store
}

func NewInternshipService(store Store, opts ...Option) *InternshipService {
	return &InternshipService{base: newBase(opts), store: store}
}

// ParseDeadline accepts an RFC 3339 timestamp or a plain date. A plain date
// means the end of that day in UTC.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, ErrInvalidDeadline
	}
	return d.Add(24*time.Hour - time.Second).UTC(), nil
}

func (s *InternshipService) Create(ctx context.Context, actor authz.Actor, req models.CreateInternshipRequest) (*models.Internship, error) {
	if _, err := s.store.GetCompany(ctx, actor.ID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrCompanyProfileRequired
		}
		return nil, apperror.Internal("Failed to create internship", err)
	}

	deadline, err := ParseDeadline(req.ApplicationDeadline)
	if err != nil {
		return nil, err
	}
	if deadline.Before(s.now()) {
		return nil, ErrDeadlineInPast
	}

	internship := &models.Internship{
		ID:                  uuid.New(),
		CompanyID:           actor.ID,
		Title:               strings.TrimSpace(req.Title),
		Description:         req.Description,
		Requirements:        req.Requirements,
		Location:            strings.TrimSpace(req.Location),
		Duration:            strings.TrimSpace(req.Duration),
		Stipend:             nullFloat(req.Stipend),
		ApplicationDeadline: deadline,
		IsActive:            true,
	}
	if err := s.store.CreateInternship(ctx, internship); err != nil {
		return nil, apperror.Internal("Failed to create internship", err)
	}

	s.logger.InfoContext(ctx, "internship posted", "internship_id", internship.ID, "company_id", actor.ID)
	return internship, nil
}

// List returns postings newest first.
func (s *InternshipService) List(ctx context.Context, in ListInternshipsInput) ([]models.InternshipListing, error) {
	var filter models.InternshipFilter
	if in.ActiveOnly {
		now := s.now()
		filter.OpenAt = &now
	}

	listings, err := s.store.ListInternships(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch internships", err)
	}
	return FilterListings(listings, in.Query), nil
}

// FilterListings keeps listings whose title, company name or location
// contains query, ignoring case. An empty query keeps everything.
func FilterListings(listings []models.InternshipListing, query string) []models.InternshipListing {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return listings
	}

	out := make([]models.InternshipListing, 0, len(listings))
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Title), query) ||
			strings.Contains(strings.ToLower(l.CompanyName), query) ||
			strings.Contains(strings.ToLower(l.Location), query) {
			out = append(out, l)
		}
	}
	return out
}

// Get returns one posting. For a student caller hasApplied reports whether
// they already applied; it is nil for everyone else.
func (s *InternshipService) Get(ctx context.Context, actor authz.Actor, internshipID string) (*models.InternshipListing, *bool, error) {
	id := parseID(internshipID)
	if id == uuid.Nil {
		return nil, nil, ErrInternshipNotFound
	}
	listing, err := s.store.GetInternshipListing(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil, ErrInternshipNotFound
	}
	if err != nil {
		return nil, nil, apperror.Internal("Failed to fetch internship", err)
	}

	if actor.Role != authz.RoleStudent {
		return listing, nil, nil
	}
	applied, err := s.store.ApplicationExists(ctx, actor.ID, id)
	if err != nil {
		return nil, nil, apperror.Internal("Failed to fetch internship", err)
	}
	return listing, &applied, nil
}

func (s *InternshipService) ListForCompany(ctx context.Context, actor authz.Actor) ([]models.InternshipListing, error) {
	listings, err := s.store.ListInternships(ctx, models.InternshipFilter{
		CompanyID: uuid.NullUUID{UUID: actor.ID, Valid: true},
	})
	if err != nil {
		return nil, apperror.Internal("Failed to fetch internships", err)
	}
	return listings, nil
}

// SetActive opens or closes a posting. Only its company may do so.
func (s *InternshipService) SetActive(ctx context.Context, actor authz.Actor, internshipID string, active bool) (*models.Internship, error) {
	id := parseID(internshipID)
	if id == uuid.Nil {
		return nil, ErrInternshipNotFound
	}
	internship, err := s.store.GetInternship(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrInternshipNotFound
	}
	if err != nil {
		return nil, apperror.Internal("Failed to update internship", err)
	}
	if err := authz.AssertOwns(actor, internship.CompanyID, "internship"); err != nil {
		return nil, err
	}

	updated, err := s.store.SetInternshipActive(ctx, id, active)
	if err != nil {
		return nil, apperror.Internal("Failed to update internship", err)
	}
	return updated, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
