// Package servicestest provides in-memory implementations of the service
// store interfaces for tests.
package servicestest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
	"internship-portal-backend/internal/supabase"
)

var (
	_ services.Store     = (*MemStore)(nil)
	_ services.BlobStore = (*MemBlobs)(nil)
)

// MemStore is an in-memory services.Store with the same uniqueness rules as
// the database schema.
type MemStore struct {
	mu          sync.Mutex
	students    map[uuid.UUID]models.Student
	companies   map[uuid.UUID]models.Company
	resumes     map[uuid.UUID]models.Resume
	internships map[uuid.UUID]models.Internship
	apps        map[uuid.UUID]models.Application

	// FailOn makes the named method return an error.
	FailOn map[string]error
}

func NewMemStore() *MemStore {
	return &MemStore{
		students:    make(map[uuid.UUID]models.Student),
		companies:   make(map[uuid.UUID]models.Company),
		resumes:     make(map[uuid.UUID]models.Resume),
		internships: make(map[uuid.UUID]models.Internship),
		apps:        make(map[uuid.UUID]models.Application),
		FailOn:      make(map[string]error),
	}
}

func (m *MemStore) fail(method string) error {
	return m.FailOn[method]
}

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, apperror.ErrNotFound)
}

func (m *MemStore) CreateStudent(ctx context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[s.ID]; ok {
		return fmt.Errorf("student: %w", apperror.ErrConflict)
	}
	s.CreatedAt, s.UpdatedAt = time.Now(), time.Now()
	m.students[s.ID] = *s
	return nil
}

func (m *MemStore) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetStudent"); err != nil {
		return nil, err
	}
	s, ok := m.students[id]
	if !ok {
		return nil, notFound("student")
	}
	return &s, nil
}

func (m *MemStore) UpdateStudent(ctx context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[s.ID]; !ok {
		return notFound("student")
	}
	s.UpdatedAt = time.Now()
	m.students[s.ID] = *s
	return nil
}

func (m *MemStore) CreateCompany(ctx context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[c.ID]; ok {
		return fmt.Errorf("company: %w", apperror.ErrConflict)
	}
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	m.companies[c.ID] = *c
	return nil
}

func (m *MemStore) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, notFound("company")
	}
	return &c, nil
}

func (m *MemStore) UpdateCompany(ctx context.Context, c *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[c.ID]; !ok {
		return notFound("company")
	}
	m.companies[c.ID] = *c
	return nil
}

func (m *MemStore) CreateResume(ctx context.Context, r *models.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateResume"); err != nil {
		return err
	}
	m.resumes[r.ID] = *r
	return nil
}

func (m *MemStore) GetResume(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, notFound("resume")
	}
	return &r, nil
}

func (m *MemStore) ListResumes(ctx context.Context, studentID uuid.UUID) ([]models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Resume{}
	for _, r := range m.resumes {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *MemStore) CountResumes(ctx context.Context, studentID uuid.UUID) (int, error) {
	resumes, _ := m.ListResumes(ctx, studentID)
	return len(resumes), nil
}

func (m *MemStore) ClearPrimaryResumes(ctx context.Context, studentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ClearPrimaryResumes"); err != nil {
		return err
	}
	for id, r := range m.resumes {
		if r.StudentID == studentID && r.IsPrimary {
			r.IsPrimary = false
			m.resumes[id] = r
		}
	}
	return nil
}

func (m *MemStore) SetResumePrimary(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("SetResumePrimary"); err != nil {
		return err
	}
	r, ok := m.resumes[id]
	if !ok {
		return notFound("resume")
	}
	for _, other := range m.resumes {
		if other.StudentID == r.StudentID && other.IsPrimary && other.ID != id {
			return errors.New("duplicate key value violates unique constraint \"idx_resumes_one_primary\"")
		}
	}
	r.IsPrimary = true
	m.resumes[id] = r
	return nil
}

func (m *MemStore) DeleteResume(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return notFound("resume")
	}
	delete(m.resumes, id)
	for appID, a := range m.apps {
		if a.ResumeID.Valid && a.ResumeID.UUID == id {
			a.ResumeID = uuid.NullUUID{}
			m.apps[appID] = a
		}
	}
	return nil
}

func (m *MemStore) CreateInternship(ctx context.Context, i *models.Internship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.CreatedAt = time.Now()
	m.internships[i.ID] = *i
	return nil
}

func (m *MemStore) GetInternship(ctx context.Context, id uuid.UUID) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetInternship"); err != nil {
		return nil, err
	}
	i, ok := m.internships[id]
	if !ok {
		return nil, notFound("internship")
	}
	return &i, nil
}

func (m *MemStore) listing(i models.Internship) models.InternshipListing {
	c := m.companies[i.CompanyID]
	return models.InternshipListing{Internship: i, CompanyName: c.CompanyName, CompanyDescription: c.CompanyDescription}
}

func (m *MemStore) GetInternshipListing(ctx context.Context, id uuid.UUID) (*models.InternshipListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.internships[id]
	if !ok {
		return nil, notFound("internship")
	}
	l := m.listing(i)
	return &l, nil
}

func (m *MemStore) ListInternships(ctx context.Context, filter models.InternshipFilter) ([]models.InternshipListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.InternshipListing{}
	for _, i := range m.internships {
		if filter.OpenAt != nil && !(i.IsActive && !i.ApplicationDeadline.Before(*filter.OpenAt)) {
			continue
		}
		if filter.CompanyID.Valid && i.CompanyID != filter.CompanyID.UUID {
			continue
		}
		out = append(out, m.listing(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (m *MemStore) SetInternshipActive(ctx context.Context, id uuid.UUID, active bool) (*models.Internship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.internships[id]
	if !ok {
		return nil, notFound("internship")
	}
	i.IsActive = active
	m.internships[id] = i
	return &i, nil
}

func (m *MemStore) CountCompanyInternships(ctx context.Context, companyID uuid.UUID) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total, active := 0, 0
	for _, i := range m.internships {
		if i.CompanyID == companyID {
			total++
			if i.IsActive {
				active++
			}
		}
	}
	return total, active, nil
}

func (m *MemStore) CreateApplication(ctx context.Context, a *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateApplication"); err != nil {
		return err
	}
	for _, existing := range m.apps {
		if existing.StudentID == a.StudentID && existing.InternshipID == a.InternshipID {
			return fmt.Errorf("application: %w", apperror.ErrConflict)
		}
	}
	m.apps[a.ID] = *a
	return nil
}

func (m *MemStore) ApplicationExists(ctx context.Context, studentID, internshipID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ApplicationExists"); err != nil {
		return false, err
	}
	for _, a := range m.apps {
		if a.StudentID == studentID && a.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) GetApplicationDetail(ctx context.Context, id uuid.UUID) (*models.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, notFound("application")
	}
	i := m.internships[a.InternshipID]
	d := &models.ApplicationDetail{
		Application:     a,
		CompanyID:       i.CompanyID,
		CompanyName:     m.companies[i.CompanyID].CompanyName,
		InternshipTitle: i.Title,
		Student:         m.students[a.StudentID],
	}
	if a.ResumeID.Valid {
		if r, ok := m.resumes[a.ResumeID.UUID]; ok {
			d.ResumeFileName.String, d.ResumeFileName.Valid = r.FileName, true
			d.ResumeURL.String, d.ResumeURL.Valid = r.FileURL, true
		}
	}
	return d, nil
}

func (m *MemStore) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, reviewedAt time.Time) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, notFound("application")
	}
	a.Status = status
	a.ReviewedAt.Time, a.ReviewedAt.Valid = reviewedAt, true
	m.apps[id] = a
	return &a, nil
}

func (m *MemStore) ListStudentApplications(ctx context.Context, studentID uuid.UUID, status string) ([]models.StudentApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.StudentApplication{}
	for _, a := range m.apps {
		if a.StudentID != studentID || (status != "" && a.Status != status) {
			continue
		}
		i := m.internships[a.InternshipID]
		sa := models.StudentApplication{
			Application:        a,
			InternshipTitle:    i.Title,
			InternshipLocation: i.Location,
			InternshipStipend:  i.Stipend,
			CompanyName:        m.companies[i.CompanyID].CompanyName,
		}
		if a.ResumeID.Valid {
			if r, ok := m.resumes[a.ResumeID.UUID]; ok {
				sa.ResumeFileName.String, sa.ResumeFileName.Valid = r.FileName, true
			}
		}
		out = append(out, sa)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].AppliedAt.After(out[y].AppliedAt) })
	return out, nil
}

func (m *MemStore) ListCompanyApplications(ctx context.Context, companyID uuid.UUID, status string) ([]models.CompanyApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CompanyApplication{}
	for _, a := range m.apps {
		i := m.internships[a.InternshipID]
		if i.CompanyID != companyID || (status != "" && a.Status != status) {
			continue
		}
		s := m.students[a.StudentID]
		out = append(out, models.CompanyApplication{
			Application:       a,
			InternshipTitle:   i.Title,
			StudentFirstName:  s.FirstName,
			StudentLastName:   s.LastName,
			StudentEmail:      s.Email,
			StudentUniversity: s.University,
			StudentMajor:      s.Major,
		})
	}
	sort.Slice(out, func(x, y int) bool { return out[x].AppliedAt.After(out[y].AppliedAt) })
	return out, nil
}

func (m *MemStore) CountStudentApplications(ctx context.Context, studentID uuid.UUID) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range m.apps {
		if a.StudentID == studentID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (m *MemStore) CountCompanyApplications(ctx context.Context, companyID uuid.UUID) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total, pending := 0, 0
	for _, a := range m.apps {
		if m.internships[a.InternshipID].CompanyID != companyID {
			continue
		}
		total++
		if a.Status == models.StatusPending {
			pending++
		}
	}
	return total, pending, nil
}

// MemBlobs is an in-memory services.BlobStore that records uploads and
// removals.
type MemBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	Uploads   int
	UploadErr error
	RemoveErr error
	Removed   []string
}

func NewMemBlobs() *MemBlobs {
	return &MemBlobs{objects: make(map[string][]byte)}
}

func (b *MemBlobs) Upload(path, contentType string, data []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Uploads++
	if b.UploadErr != nil {
		return "", b.UploadErr
	}
	if _, ok := b.objects[path]; ok {
		return "", errors.New("The resource already exists")
	}
	b.objects[path] = data
	return supabase.PublicURL("https://project.supabase.co", "resumes", path), nil
}

func (b *MemBlobs) Remove(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Removed = append(b.Removed, path)
	if b.RemoveErr != nil {
		return b.RemoveErr
	}
	delete(b.objects, path)
	return nil
}

func (b *MemBlobs) PathFromURL(publicURL string) (string, error) {
	return supabase.PathFromURL("resumes", publicURL)
}

// Has reports whether any stored object path starts with prefix.
func (b *MemBlobs) Has(prefix string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for p := range b.objects {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}
