package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/config"
	"internship-portal-backend/internal/handlers"
	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/server"
	"internship-portal-backend/internal/services"
	"internship-portal-backend/internal/services/servicestest"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeAuth struct {
	signupErr  error
	signinErr  error
	confirmErr error
	signups    []models.SignupRequest
}

func (f *fakeAuth) SignUp(req models.SignupRequest) (*models.SignupResponse, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	f.signups = append(f.signups, req)
	return &models.SignupResponse{UserID: uuid.NewString(), Email: req.Email, ConfirmationRequired: true}, nil
}

func (f *fakeAuth) SignIn(email, password string) (*models.SessionResponse, error) {
	if f.signinErr != nil {
		return nil, f.signinErr
	}
	return &models.SessionResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "bearer", ExpiresIn: 3600}, nil
}

func (f *fakeAuth) ConfirmEmail(token, kind string) (string, error) {
	if f.confirmErr != nil {
		return "", f.confirmErr
	}
	if token == "" {
		return "", apperror.BadRequest("Missing confirmation token")
	}
	return "http://localhost:3000/auth/signup-success", nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	store  *servicestest.MemStore
	blobs  *servicestest.MemBlobs
	auth   *fakeAuth
	db     *fakePinger
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		store: servicestest.NewMemStore(),
		blobs: servicestest.NewMemBlobs(),
		auth:  &fakeAuth{},
		db:    &fakePinger{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := []services.Option{
		services.WithClock(func() time.Time { return baseTime }),
		services.WithLogger(logger),
	}

	cfg := &config.Config{SupabaseJWTSecret: testSecret}
	env.router = server.NewRouter(cfg, logger, server.Handlers{
		Health:       handlers.NewHealthHandler(env.db),
		Auth:         handlers.NewAuthHandler(env.auth),
		Profiles:     handlers.NewProfilesHandler(services.NewProfileService(env.store, opts...)),
		Internships:  handlers.NewInternshipsHandler(services.NewInternshipService(env.store, opts...)),
		Applications: handlers.NewApplicationsHandler(services.NewApplicationService(env.store, opts...)),
		Resumes:      handlers.NewResumesHandler(services.NewResumeService(env.store, env.blobs, opts...)),
		Dashboard:    handlers.NewDashboardHandler(services.NewDashboardService(env.store, opts...)),
	}, nil)
	return env
}

func token(t *testing.T, actor authz.Actor) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           actor.ID.String(),
		"exp":           time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]any{"user_type": string(actor.Role)},
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// do sends body as JSON when it is not an io.Reader. A zero actor sends no
// Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, actor authz.Actor, body any, contentType ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	ct := "application/json"
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	if len(contentType) > 0 {
		ct = contentType[0]
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", ct)
	}
	if actor.ID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+token(t, actor))
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (e *testEnv) seedStudent(t *testing.T) authz.Actor {
	t.Helper()
	s := &models.Student{
		ID:             uuid.New(),
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		University:     "State University",
		Major:          "Computer Science",
		GraduationYear: 2027,
	}
	require.NoError(t, e.store.CreateStudent(context.Background(), s))
	return authz.Actor{ID: s.ID, Role: authz.RoleStudent}
}

func (e *testEnv) seedCompany(t *testing.T, name string) authz.Actor {
	t.Helper()
	c := &models.Company{
		ID:                 uuid.New(),
		CompanyName:        name,
		CompanyDescription: "We build things",
		ContactEmail:       "jobs@example.com",
	}
	require.NoError(t, e.store.CreateCompany(context.Background(), c))
	return authz.Actor{ID: c.ID, Role: authz.RoleCompany}
}

func (e *testEnv) seedInternship(t *testing.T, company authz.Actor, title string, deadline time.Time, active bool) models.Internship {
	t.Helper()
	i := &models.Internship{
		ID:                  uuid.New(),
		CompanyID:           company.ID,
		Title:               title,
		Description:         "Work on real projects",
		Requirements:        "Go",
		Location:            "Remote",
		Duration:            "3 months",
		ApplicationDeadline: deadline,
		IsActive:            active,
	}
	require.NoError(t, e.store.CreateInternship(context.Background(), i))
	return *i
}

func (e *testEnv) seedResume(t *testing.T, student authz.Actor) models.Resume {
	t.Helper()
	r := &models.Resume{
		ID:         uuid.New(),
		StudentID:  student.ID,
		FileName:   "cv.pdf",
		FileURL:    "https://project.supabase.co/storage/v1/object/public/resumes/" + student.ID.String() + "/1-cv.pdf",
		FileSize:   1024,
		UploadedAt: baseTime,
	}
	require.NoError(t, e.store.CreateResume(context.Background(), r))
	return *r
}

var errDown = errors.New("connection refused")

func newID() uuid.UUID { return uuid.New() }
