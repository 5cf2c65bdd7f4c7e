package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/models"
	"internship-portal-backend/internal/services"
)

// maxUploadBody caps the whole multipart request, leaving room for the form
// fields and part headers around a maximum size resume.
const maxUploadBody = services.MaxResumeSize + 1<<20

// Upload godoc
// @Summary     Upload a resume
// @Description Stores a PDF of at most 5MB in the resumes bucket under {student_id}/{unix_millis}-{file_name} and records it as a non-primary resume.
// @Tags        resumes
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       file      formData file   true "PDF resume"
// @Param       studentId formData string true "Must be the caller's id"
// @Success     201 {object} models.ResumeUploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /resumes/upload [post]
func (h *ResumesHandler) Upload(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	// A missing file part leaves Content nil and is rejected by the service.
	header, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, services.ErrResumeTooLarge)
		return
	}

	in := services.ResumeUpload{StudentID: c.PostForm("studentId")}
	if err == nil {
		file, err := header.Open()
		if err != nil {
			respondError(c, apperror.Internal("Failed to read upload", err))
			return
		}
		defer file.Close()

		in.FileName = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
		in.Size = header.Size
		in.Content = file
	}

	resume, err := h.resumes.Upload(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ResumeUploadResponse{Resume: models.NewResumeResponse(*resume)})
}
