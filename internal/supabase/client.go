package supabase

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/config"
	"internship-portal-backend/internal/models"
)

// authAPI is the part of the gotrue client the service relies on.
type authAPI interface {
	Signup(req types.SignupRequest) (*types.SignupResponse, error)
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
	Verify(req types.VerifyRequest) (*types.VerifyResponse, error)
}

// AuthClient proxies signup, password sign-in and email confirmation to
// Supabase Auth. Sessions are never stored on the shared client.
type AuthClient struct {
	auth        authAPI
	redirectURL string
}

func NewAuthClient(cfg *config.Config) (*AuthClient, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return newAuthClient(client.Auth, cfg.EmailRedirectURL), nil
}

func newAuthClient(auth authAPI, redirectURL string) *AuthClient {
	return &AuthClient{auth: auth, redirectURL: redirectURL}
}

// SignUp registers a user with user_type in the user metadata so issued
// tokens carry the role.
func (a *AuthClient) SignUp(req models.SignupRequest) (*models.SignupResponse, error) {
	data := map[string]interface{}{
		"user_type": req.UserType,
	}
	if req.FirstName != "" {
		data["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		data["last_name"] = req.LastName
	}
	if req.CompanyName != "" {
		data["company_name"] = req.CompanyName
	}

	resp, err := a.auth.Signup(types.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Data:     data,
	})
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Signup failed", err)
	}

	userID := resp.User.ID
	if resp.Session.AccessToken != "" {
		userID = resp.Session.User.ID
	}

	return &models.SignupResponse{
		UserID:               userID.String(),
		Email:                req.Email,
		ConfirmationRequired: resp.Session.AccessToken == "",
	}, nil
}

func (a *AuthClient) SignIn(email, password string) (*models.SessionResponse, error) {
	resp, err := a.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Invalid email or password", err)
	}

	return &models.SessionResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		ExpiresIn:    resp.ExpiresIn,
		UserID:       resp.User.ID.String(),
	}, nil
}

// ConfirmEmail verifies an emailed token and returns where the browser should
// be sent next.
func (a *AuthClient) ConfirmEmail(token, kind string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperror.BadRequest("Missing confirmation token")
	}
	if kind == "" {
		kind = string(types.VerificationTypeSignup)
	}

	resp, err := a.auth.Verify(types.VerifyRequest{
		Type:       types.VerificationType(kind),
		Token:      token,
		RedirectTo: a.redirectURL,
	})
	if err != nil {
		return "", apperror.New(http.StatusBadRequest, "Email confirmation failed", err)
	}
	if resp.Error != "" {
		msg := resp.ErrorDescription
		if msg == "" {
			msg = resp.Error
		}
		return "", apperror.New(http.StatusBadRequest, "Email confirmation failed", fmt.Errorf("%s", msg))
	}

	if resp.URL != "" {
		return resp.URL, nil
	}
	return a.redirectURL, nil
}
