package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/models"
)

// Authenticator is the hosted auth provider.
type Authenticator interface {
	SignUp(req models.SignupRequest) (*models.SignupResponse, error)
	SignIn(email, password string) (*models.SessionResponse, error)
	ConfirmEmail(token, kind string) (string, error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp godoc
// @Summary     Register an account
// @Description Creates a student or company account. user_type is stored in the user metadata and becomes the role claim of later tokens.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignupRequest true "Signup details"
// @Success     201 {object} models.SignupResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.auth.SignUp(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary     Log in
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.SessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Confirm godoc
// @Summary     Confirm an email address
// @Description Verifies the token from the confirmation email and redirects to the post-signup page.
// @Tags        auth
// @Param       token query string true "Confirmation token"
// @Param       type  query string false "Verification type" default(signup)
// @Success     303
// @Failure     400 {object} models.ErrorResponse
// @Router      /auth/confirm [get]
func (h *AuthHandler) Confirm(c *gin.Context) {
	location, err := h.auth.ConfirmEmail(c.Query("token"), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}
