package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

type DashboardHandler struct {
	dashboards *services.DashboardService
}

func NewDashboardHandler(dashboards *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Student godoc
// @Summary     Student dashboard
// @Description Application counts by status, resume count, the five most recent applications and a progress percentage weighing pending at 25, accepted at 50 and confirmed at 100.
// @Tags        students
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.StudentDashboardResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /students/me/dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	dash, err := h.dashboards.Student(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.StudentDashboardResponse{
		Student:               models.NewStudentResponse(dash.Student),
		TotalApplications:     dash.Total,
		PendingApplications:   dash.Counts[models.StatusPending],
		AcceptedApplications:  dash.Counts[models.StatusAccepted],
		ConfirmedApplications: dash.Counts[models.StatusConfirmed],
		RejectedApplications:  dash.Counts[models.StatusRejected],
		TotalResumes:          dash.TotalResumes,
		Progress:              dash.Progress,
		RecentApplications:    make([]models.StudentApplicationResponse, len(dash.Recent)),
	}
	for i, a := range dash.Recent {
		resp.RecentApplications[i] = models.NewStudentApplicationResponse(a)
	}
	c.JSON(http.StatusOK, resp)
}

// Company godoc
// @Summary     Company dashboard
// @Tags        companies
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CompanyDashboardResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /companies/me/dashboard [get]
func (h *DashboardHandler) Company(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	dash, err := h.dashboards.Company(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CompanyDashboardResponse{
		Company:             models.NewCompanyResponse(dash.Company),
		TotalInternships:    dash.TotalInternships,
		ActiveInternships:   dash.ActiveInternships,
		TotalApplications:   dash.TotalApplications,
		PendingApplications: dash.PendingApplications,
	})
}
