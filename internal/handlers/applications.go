package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

type ApplicationsHandler struct {
	applications *services.ApplicationService
}

func NewApplicationsHandler(applications *services.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

// Submit godoc
// @Summary     Apply to an internship
// @Description Every field is required. student_id must be the caller. The internship must be active and before its deadline, the caller must not have applied already, and the resume must belong to the caller.
// @Tags        applications
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateApplicationRequest true "Application"
// @Success     201 {object} models.ApplicationCreatedResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /applications [post]
func (h *ApplicationsHandler) Submit(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applications.Submit(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ApplicationCreatedResponse{
		Message:     "Application submitted successfully",
		Application: models.NewApplicationResponse(*app),
	})
}

// ListForStudent godoc
// @Summary     List own applications
// @Tags        applications
// @Produce     json
// @Security    Bearer
// @Param       student_id query string true  "Must be the caller's id"
// @Param       status     query string false "Filter by status"
// @Success     200 {object} models.StudentApplicationListResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /applications [get]
func (h *ApplicationsHandler) ListForStudent(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	apps, err := h.applications.ListForStudent(c.Request.Context(), actor, c.Query("student_id"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.StudentApplicationListResponse{Applications: make([]models.StudentApplicationResponse, len(apps))}
	for i, a := range apps {
		resp.Applications[i] = models.NewStudentApplicationResponse(a)
	}
	c.JSON(http.StatusOK, resp)
}

// ListForCompany godoc
// @Summary     List applications to own postings
// @Tags        companies
// @Produce     json
// @Security    Bearer
// @Param       status query string false "Filter by status"
// @Success     200 {object} models.CompanyApplicationListResponse
// @Router      /companies/me/applications [get]
func (h *ApplicationsHandler) ListForCompany(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	apps, err := h.applications.ListForCompany(c.Request.Context(), actor, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.CompanyApplicationListResponse{Applications: make([]models.CompanyApplicationResponse, len(apps))}
	for i, a := range apps {
		resp.Applications[i] = models.NewCompanyApplicationResponse(a)
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary     Get an application
// @Description Visible to the applicant and to the company that owns the internship.
// @Tags        applications
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Application ID"
// @Success     200 {object} models.ApplicationDetailResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /applications/{id} [get]
func (h *ApplicationsHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	detail, err := h.applications.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewApplicationDetailResponse(*detail))
}

// UpdateStatus godoc
// @Summary     Review an application
// @Description Sets the status and stamps reviewed_at. Only the company that owns the internship may review.
// @Tags        applications
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                                true "Application ID"
// @Param       request body models.UpdateApplicationStatusRequest true "pending, reviewed, accepted, rejected or confirmed"
// @Success     200 {object} models.ApplicationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /applications/{id}/status [patch]
func (h *ApplicationsHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applications.Review(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewApplicationResponse(*app))
}
