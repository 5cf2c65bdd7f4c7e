package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/models"
)

const uniqueViolation = "23505"

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

// notFound turns sql.ErrNoRows into apperror.ErrNotFound so callers can
// branch on it without importing database/sql.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperror.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, apperror.ErrNotFound)
	}
	return nil
}

// Students

const studentColumns = `id, first_name, last_name, email, phone, university, major,
	graduation_year, gpa, bio, linkedin_url, github_url, portfolio_url, created_at, updated_at`

func scanStudent(row scanner, s *models.Student) error {
	return row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.University, &s.Major,
		&s.GraduationYear, &s.GPA, &s.Bio, &s.LinkedInURL, &s.GitHubURL, &s.PortfolioURL,
		&s.CreatedAt, &s.UpdatedAt,
	)
}

func (d *DatabaseClient) CreateStudent(ctx context.Context, s *models.Student) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO students (id, first_name, last_name, email, phone, university, major,
			graduation_year, gpa, bio, linkedin_url, github_url, portfolio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`, s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.University, s.Major,
		s.GraduationYear, s.GPA, s.Bio, s.LinkedInURL, s.GitHubURL, s.PortfolioURL,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("student profile exists: %w", apperror.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	var s models.Student
	row := d.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if err := scanStudent(row, &s); err != nil {
		return nil, notFound(err, "student")
	}
	return &s, nil
}

func (d *DatabaseClient) UpdateStudent(ctx context.Context, s *models.Student) error {
	err := d.db.QueryRowContext(ctx, `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4, phone = $5, university = $6, major = $7,
			graduation_year = $8, gpa = $9, bio = $10, linkedin_url = $11, github_url = $12,
			portfolio_url = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, s.ID, s.FirstName, s.LastName, s.Email, s.Phone, s.University, s.Major,
		s.GraduationYear, s.GPA, s.Bio, s.LinkedInURL, s.GitHubURL, s.PortfolioURL,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return notFound(err, "student")
	}
	return nil
}

// Companies

const companyColumns = `id, company_name, company_description, company_website, contact_email,
	contact_phone, company_address, created_at, updated_at`

func scanCompany(row scanner, c *models.Company) error {
	return row.Scan(
		&c.ID, &c.CompanyName, &c.CompanyDescription, &c.CompanyWebsite, &c.ContactEmail,
		&c.ContactPhone, &c.CompanyAddress, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (d *DatabaseClient) CreateCompany(ctx context.Context, c *models.Company) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO companies (id, company_name, company_description, company_website,
			contact_email, contact_phone, company_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, c.ID, c.CompanyName, c.CompanyDescription, c.CompanyWebsite,
		c.ContactEmail, c.ContactPhone, c.CompanyAddress,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("company profile exists: %w", apperror.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	row := d.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	if err := scanCompany(row, &c); err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}

func (d *DatabaseClient) UpdateCompany(ctx context.Context, c *models.Company) error {
	err := d.db.QueryRowContext(ctx, `
		UPDATE companies
		SET company_name = $2, company_description = $3, company_website = $4,
			contact_email = $5, contact_phone = $6, company_address = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, c.ID, c.CompanyName, c.CompanyDescription, c.CompanyWebsite,
		c.ContactEmail, c.ContactPhone, c.CompanyAddress,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return notFound(err, "company")
	}
	return nil
}

// Resumes

const resumeColumns = `id, student_id, file_name, file_url, file_size, is_primary, uploaded_at`

func scanResume(row scanner, r *models.Resume) error {
	return row.Scan(&r.ID, &r.StudentID, &r.FileName, &r.FileURL, &r.FileSize, &r.IsPrimary, &r.UploadedAt)
}

func (d *DatabaseClient) CreateResume(ctx context.Context, r *models.Resume) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO resumes (id, student_id, file_name, file_url, file_size, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING uploaded_at
	`, r.ID, r.StudentID, r.FileName, r.FileURL, r.FileSize, r.IsPrimary).Scan(&r.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetResume(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var r models.Resume
	row := d.db.QueryRowContext(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)
	if err := scanResume(row, &r); err != nil {
		return nil, notFound(err, "resume")
	}
	return &r, nil
}

func (d *DatabaseClient) ListResumes(ctx context.Context, studentID uuid.UUID) ([]models.Resume, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+resumeColumns+`
		FROM resumes
		WHERE student_id = $1
		ORDER BY uploaded_at DESC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []models.Resume{}
	for rows.Next() {
		var r models.Resume
		if err := scanResume(rows, &r); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, rows.Err()
}

func (d *DatabaseClient) CountResumes(ctx context.Context, studentID uuid.UUID) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes WHERE student_id = $1`, studentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count resumes: %w", err)
	}
	return n, nil
}

func (d *DatabaseClient) ClearPrimaryResumes(ctx context.Context, studentID uuid.UUID) error {
	_, err := d.db.ExecContext(ctx, `
		UPDATE resumes
		SET is_primary = FALSE
		WHERE student_id = $1 AND is_primary
	`, studentID)
	if err != nil {
		return fmt.Errorf("failed to clear primary resume: %w", err)
	}
	return nil
}

func (d *DatabaseClient) SetResumePrimary(ctx context.Context, id uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `UPDATE resumes SET is_primary = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to set primary resume: %w", err)
	}
	return requireAffected(res, "resume")
}

func (d *DatabaseClient) DeleteResume(ctx context.Context, id uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return requireAffected(res, "resume")
}

// Internships

const internshipColumns = `i.id, i.company_id, i.title, i.description, i.requirements, i.location,
	i.duration, i.stipend, i.application_deadline, i.is_active, i.created_at`

func scanInternship(row scanner, i *models.Internship, extra ...any) error {
	dest := []any{
		&i.ID, &i.CompanyID, &i.Title, &i.Description, &i.Requirements, &i.Location,
		&i.Duration, &i.Stipend, &i.ApplicationDeadline, &i.IsActive, &i.CreatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (d *DatabaseClient) CreateInternship(ctx context.Context, i *models.Internship) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO internships (id, company_id, title, description, requirements, location,
			duration, stipend, application_deadline, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`, i.ID, i.CompanyID, i.Title, i.Description, i.Requirements, i.Location,
		i.Duration, i.Stipend, i.ApplicationDeadline, i.IsActive,
	).Scan(&i.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create internship: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetInternship(ctx context.Context, id uuid.UUID) (*models.Internship, error) {
	var i models.Internship
	row := d.db.QueryRowContext(ctx, `SELECT `+internshipColumns+` FROM internships i WHERE i.id = $1`, id)
	if err := scanInternship(row, &i); err != nil {
		return nil, notFound(err, "internship")
	}
	return &i, nil
}

func (d *DatabaseClient) GetInternshipListing(ctx context.Context, id uuid.UUID) (*models.InternshipListing, error) {
	var l models.InternshipListing
	row := d.db.QueryRowContext(ctx, `
		SELECT `+internshipColumns+`, c.company_name, c.company_description
		FROM internships i
		JOIN companies c ON c.id = i.company_id
		WHERE i.id = $1
	`, id)
	if err := scanInternship(row, &l.Internship, &l.CompanyName, &l.CompanyDescription); err != nil {
		return nil, notFound(err, "internship")
	}
	return &l, nil
}

func (d *DatabaseClient) ListInternships(ctx context.Context, filter models.InternshipFilter) ([]models.InternshipListing, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.OpenAt != nil {
		args = append(args, *filter.OpenAt)
		conditions = append(conditions, fmt.Sprintf("i.is_active AND i.application_deadline >= $%d", len(args)))
	}
	if filter.CompanyID.Valid {
		args = append(args, filter.CompanyID.UUID)
		conditions = append(conditions, fmt.Sprintf("i.company_id = $%d", len(args)))
	}

	query := `
		SELECT ` + internshipColumns + `, c.company_name, c.company_description
		FROM internships i
		JOIN companies c ON c.id = i.company_id`
	if len(conditions) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	query += "\n\t\tORDER BY i.created_at DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list internships: %w", err)
	}
	defer rows.Close()

	listings := []models.InternshipListing{}
	for rows.Next() {
		var l models.InternshipListing
		if err := scanInternship(rows, &l.Internship, &l.CompanyName, &l.CompanyDescription); err != nil {
			return nil, fmt.Errorf("failed to scan internship: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (d *DatabaseClient) SetInternshipActive(ctx context.Context, id uuid.UUID, active bool) (*models.Internship, error) {
	var i models.Internship
	row := d.db.QueryRowContext(ctx, `
		UPDATE internships i
		SET is_active = $2
		WHERE i.id = $1
		RETURNING `+internshipColumns, id, active)
	if err := scanInternship(row, &i); err != nil {
		return nil, notFound(err, "internship")
	}
	return &i, nil
}

func (d *DatabaseClient) CountCompanyInternships(ctx context.Context, companyID uuid.UUID) (total, active int, err error) {
	err = d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM internships
		WHERE company_id = $1
	`, companyID).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count internships: %w", err)
	}
	return total, active, nil
}

// Applications

const applicationColumns = `a.id, a.internship_id, a.student_id, a.resume_id, a.cover_letter,
	a.status, a.applied_at, a.reviewed_at`

func scanApplication(row scanner, a *models.Application, extra ...any) error {
	dest := []any{
		&a.ID, &a.InternshipID, &a.StudentID, &a.ResumeID, &a.CoverLetter,
		&a.Status, &a.AppliedAt, &a.ReviewedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// CreateApplication reports a second application to the same internship as
// apperror.ErrConflict.
func (d *DatabaseClient) CreateApplication(ctx context.Context, a *models.Application) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO applications (id, internship_id, student_id, resume_id, cover_letter, status, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.InternshipID, a.StudentID, a.ResumeID, a.CoverLetter, a.Status, a.AppliedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("application exists: %w", apperror.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ApplicationExists(ctx context.Context, studentID, internshipID uuid.UUID) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications WHERE student_id = $1 AND internship_id = $2
		)
	`, studentID, internshipID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}

func (d *DatabaseClient) GetApplicationDetail(ctx context.Context, id uuid.UUID) (*models.ApplicationDetail, error) {
	var detail models.ApplicationDetail
	s := &detail.Student
	row := d.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`,
			i.company_id, c.company_name, i.title,
			s.id, s.first_name, s.last_name, s.email, s.phone, s.university, s.major,
			s.graduation_year, s.gpa, s.bio, s.linkedin_url, s.github_url, s.portfolio_url,
			s.created_at, s.updated_at,
			r.file_name, r.file_url
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN companies c ON c.id = i.company_id
		JOIN students s ON s.id = a.student_id
		LEFT JOIN resumes r ON r.id = a.resume_id
		WHERE a.id = $1
	`, id)
	err := scanApplication(row, &detail.Application,
		&detail.CompanyID, &detail.CompanyName, &detail.InternshipTitle,
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.University, &s.Major,
		&s.GraduationYear, &s.GPA, &s.Bio, &s.LinkedInURL, &s.GitHubURL, &s.PortfolioURL,
		&s.CreatedAt, &s.UpdatedAt,
		&detail.ResumeFileName, &detail.ResumeURL,
	)
	if err != nil {
		return nil, notFound(err, "application")
	}
	return &detail, nil
}

func (d *DatabaseClient) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, reviewedAt time.Time) (*models.Application, error) {
	var a models.Application
	row := d.db.QueryRowContext(ctx, `
		UPDATE applications a
		SET status = $2, reviewed_at = $3
		WHERE a.id = $1
		RETURNING `+applicationColumns, id, status, reviewedAt)
	if err := scanApplication(row, &a); err != nil {
		return nil, notFound(err, "application")
	}
	return &a, nil
}

func (d *DatabaseClient) ListStudentApplications(ctx context.Context, studentID uuid.UUID, status string) ([]models.StudentApplication, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`,
			i.title, i.location, i.stipend, c.company_name, r.file_name
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN companies c ON c.id = i.company_id
		LEFT JOIN resumes r ON r.id = a.resume_id
		WHERE a.student_id = $1 AND ($2::text = '' OR a.status = $2::text)
		ORDER BY a.applied_at DESC
	`, studentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.StudentApplication{}
	for rows.Next() {
		var a models.StudentApplication
		err := scanApplication(rows, &a.Application,
			&a.InternshipTitle, &a.InternshipLocation, &a.InternshipStipend, &a.CompanyName, &a.ResumeFileName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (d *DatabaseClient) ListCompanyApplications(ctx context.Context, companyID uuid.UUID, status string) ([]models.CompanyApplication, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+applicationColumns+`,
			i.title, s.first_name, s.last_name, s.email, s.university, s.major
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN students s ON s.id = a.student_id
		WHERE i.company_id = $1 AND ($2::text = '' OR a.status = $2::text)
		ORDER BY a.applied_at DESC
	`, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []models.CompanyApplication{}
	for rows.Next() {
		var a models.CompanyApplication
		err := scanApplication(rows, &a.Application,
			&a.InternshipTitle, &a.StudentFirstName, &a.StudentLastName,
			&a.StudentEmail, &a.StudentUniversity, &a.StudentMajor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// CountStudentApplications returns the number of applications per status.
func (d *DatabaseClient) CountStudentApplications(ctx context.Context, studentID uuid.UUID) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM applications
		WHERE student_id = $1
		GROUP BY status
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan application count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (d *DatabaseClient) CountCompanyApplications(ctx context.Context, companyID uuid.UUID) (total, pending int, err error) {
	err = d.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE a.status = 'pending')
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		WHERE i.company_id = $1
	`, companyID).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return total, pending, nil
}
