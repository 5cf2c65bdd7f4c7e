package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

type ProfilesHandler struct {
	profiles *services.ProfileService
}

func NewProfilesHandler(profiles *services.ProfileService) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

// CreateStudent godoc
// @Summary     Create student profile
// @Description Creates the caller's student profile. The profile id is the authenticated user id.
// @Tags        students
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.StudentProfileRequest true "Profile"
// @Success     201 {object} models.StudentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /students [post]
func (h *ProfilesHandler) CreateStudent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.StudentProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.profiles.CreateStudent(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewStudentResponse(*student))
}

// GetStudent godoc
// @Summary     Get own student profile
// @Tags        students
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.StudentResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /students/me [get]
func (h *ProfilesHandler) GetStudent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	student, err := h.profiles.GetStudent(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewStudentResponse(*student))
}

// UpdateStudent godoc
// @Summary     Update own student profile
// @Tags        students
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.StudentProfileRequest true "Profile"
// @Success     200 {object} models.StudentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /students/me [put]
func (h *ProfilesHandler) UpdateStudent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.StudentProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.profiles.UpdateStudent(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewStudentResponse(*student))
}

// CreateCompany godoc
// @Summary     Create company profile
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CompanyProfileRequest true "Profile"
// @Success     201 {object} models.CompanyResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /companies [post]
func (h *ProfilesHandler) CreateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CompanyProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.profiles.CreateCompany(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewCompanyResponse(*company))
}

// GetCompany godoc
// @Summary     Get own company profile
// @Tags        companies
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CompanyResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /companies/me [get]
func (h *ProfilesHandler) GetCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	company, err := h.profiles.GetCompany(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCompanyResponse(*company))
}

// UpdateCompany godoc
// @Summary     Update own company profile
// @Tags        companies
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CompanyProfileRequest true "Profile"
// @Success     200 {object} models.CompanyResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /companies/me [put]
func (h *ProfilesHandler) UpdateCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CompanyProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.profiles.UpdateCompany(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCompanyResponse(*company))
}
