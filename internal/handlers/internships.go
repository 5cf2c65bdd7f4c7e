package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

type InternshipsHandler struct {
	internships *services.InternshipService
}

func NewInternshipsHandler(internships *services.InternshipService) *InternshipsHandler {
	return &InternshipsHandler{internships: internships}
}

// Create godoc
// @Summary     Post an internship
// @Description Requires a company profile. New postings are active.
// @Tags        internships
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateInternshipRequest true "Internship"
// @Success     201 {object} models.InternshipResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /internships [post]
func (h *InternshipsHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.CreateInternshipRequest
	if !bindJSON(c, &req) {
		return
	}

	internship, err := h.internships.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewInternshipResponse(*internship))
}

// List godoc
// @Summary     Browse internships
// @Tags        internships
// @Produce     json
// @Security    Bearer
// @Param       active query bool   false "Only postings still accepting applications"
// @Param       q      query string false "Matches title, company name or location"
// @Success     200 {object} models.InternshipListResponse
// @Router      /internships [get]
func (h *InternshipsHandler) List(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	listings, err := h.internships.List(c.Request.Context(), services.ListInternshipsInput{
		ActiveOnly: activeOnly,
		Query:      c.Query("q"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(listings))
}

// ListMine godoc
// @Summary     List own postings
// @Tags        companies
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.InternshipListResponse
// @Router      /companies/me/internships [get]
func (h *InternshipsHandler) ListMine(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	listings, err := h.internships.ListForCompany(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(listings))
}

// Get godoc
// @Summary     Get an internship
// @Description Students also get has_applied.
// @Tags        internships
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Internship ID"
// @Success     200 {object} models.InternshipResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /internships/{id} [get]
func (h *InternshipsHandler) Get(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	listing, hasApplied, err := h.internships.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := models.NewInternshipListingResponse(*listing)
	resp.HasApplied = hasApplied
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary     Open or close a posting
// @Tags        internships
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path string                         true "Internship ID"
// @Param       request body models.UpdateInternshipRequest true "Activity"
// @Success     200 {object} models.InternshipResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /internships/{id} [patch]
func (h *InternshipsHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.UpdateInternshipRequest
	if !bindJSON(c, &req) {
		return
	}

	internship, err := h.internships.SetActive(c.Request.Context(), actor, c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewInternshipResponse(*internship))
}

func listResponse(listings []models.InternshipListing) models.InternshipListResponse {
	resp := models.InternshipListResponse{Internships: make([]models.InternshipResponse, len(listings))}
	for i, l := range listings {
		resp.Internships[i] = models.NewInternshipListingResponse(l)
	}
	return resp
}
