package supabase

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/gotrue-go/types"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/models"
)

type fakeAuth struct {
	signupReq  types.SignupRequest
	signupResp *types.SignupResponse
	signInResp *types.TokenResponse
	verifyReq  types.VerifyRequest
	verifyResp *types.VerifyResponse
	err        error
}

func (f *fakeAuth) Signup(req types.SignupRequest) (*types.SignupResponse, error) {
	f.signupReq = req
	return f.signupResp, f.err
}

func (f *fakeAuth) SignInWithEmailPassword(email, password string) (*types.TokenResponse, error) {
	return f.signInResp, f.err
}

func (f *fakeAuth) Verify(req types.VerifyRequest) (*types.VerifyResponse, error) {
	f.verifyReq = req
	return f.verifyResp, f.err
}

func TestAuthClient_SignUpSendsUserType(t *testing.T) {
	userID := uuid.New()
	resp := &types.SignupResponse{}
	resp.User.ID = userID
	fake := &fakeAuth{signupResp: resp}
	client := newAuthClient(fake, "http://localhost:3000/auth/signup-success")

	out, err := client.SignUp(models.SignupRequest{
		Email:     "ada@example.com",
		Password:  "secret123",
		UserType:  "student",
		FirstName: "Ada",
	})
	require.NoError(t, err)

	assert.Equal(t, "student", fake.signupReq.Data["user_type"])
	assert.Equal(t, "Ada", fake.signupReq.Data["first_name"])
	assert.NotContains(t, fake.signupReq.Data, "company_name")
	assert.Equal(t, userID.String(), out.UserID)
	assert.True(t, out.ConfirmationRequired)
}

func TestAuthClient_SignInFailureIsUnauthorized(t *testing.T) {
	client := newAuthClient(&fakeAuth{err: errors.New("invalid_grant")}, "")

	_, err := client.SignIn("ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.StatusOf(err))
}

func TestAuthClient_SignInReturnsSession(t *testing.T) {
	userID := uuid.New()
	token := &types.TokenResponse{}
	token.AccessToken = "access"
	token.RefreshToken = "refresh"
	token.TokenType = "bearer"
	token.ExpiresIn = 3600
	token.User.ID = userID

	client := newAuthClient(&fakeAuth{signInResp: token}, "")

	session, err := client.SignIn("ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, 3600, session.ExpiresIn)
	assert.Equal(t, userID.String(), session.UserID)
}

func TestAuthClient_ConfirmEmailUsesRedirect(t *testing.T) {
	fake := &fakeAuth{verifyResp: &types.VerifyResponse{URL: "http://localhost:3000/auth/signup-success#access_token=x"}}
	client := newAuthClient(fake, "http://localhost:3000/auth/signup-success")

	target, err := client.ConfirmEmail("token-hash", "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/auth/signup-success", fake.verifyReq.RedirectTo)
	assert.Equal(t, "signup", string(fake.verifyReq.Type))
	assert.Equal(t, "http://localhost:3000/auth/signup-success#access_token=x", target)
}

func TestAuthClient_ConfirmEmailRejections(t *testing.T) {
	client := newAuthClient(&fakeAuth{}, "http://localhost:3000/auth/signup-success")
	_, err := client.ConfirmEmail("  ", "signup")
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))

	client = newAuthClient(&fakeAuth{verifyResp: &types.VerifyResponse{Error: "access_denied", ErrorDescription: "Email link is invalid or has expired"}}, "")
	_, err = client.ConfirmEmail("token-hash", "signup")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	assert.Contains(t, errors.Unwrap(err).Error(), "expired")
}
