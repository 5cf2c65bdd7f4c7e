package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

type ResumesHandler struct {
	resumes *services.ResumeService
}

func NewResumesHandler(resumes *services.ResumeService) *ResumesHandler {
	return &ResumesHandler{resumes: resumes}
}

// List godoc
// @Summary     List own resumes
// @Tags        resumes
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ResumeListResponse
// @Router      /resumes [get]
func (h *ResumesHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	resumes, err := h.resumes.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.ResumeListResponse{Resumes: make([]models.ResumeResponse, len(resumes))}
	for i, r := range resumes {
		resp.Resumes[i] = models.NewResumeResponse(r)
	}
	c.JSON(http.StatusOK, resp)
}

// SetPrimary godoc
// @Summary     Mark a resume as primary
// @Description Clears the flag on the caller's other resumes first.
// @Tags        resumes
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Resume ID"
// @Success     200 {object} models.ResumeResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /resumes/{id}/primary [put]
func (h *ResumesHandler) SetPrimary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	resume, err := h.resumes.SetPrimary(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewResumeResponse(*resume))
}

// Delete godoc
// @Summary     Delete a resume
// @Description Removes the stored file, then the record. Applications that used it keep a null resume.
// @Tags        resumes
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Resume ID"
// @Success     200 {object} models.SuccessResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /resumes/{id} [delete]
func (h *ResumesHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.resumes.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
