package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-portal-backend/internal/apperror"
	"internship-portal-backend/internal/authz"
	"internship-portal-backend/internal/middleware"
	"internship-portal-backend/internal/models"
)

// respondError writes err as an ErrorResponse with the status it maps to.
// Server errors carry the downstream cause in message and are logged.
func respondError(c *gin.Context, err error) {
	status := apperror.StatusOf(err)
	resp := models.ErrorResponse{Error: err.Error()}
	if status >= http.StatusInternalServerError {
		resp.Message = apperror.Detail(err)
		middleware.Logger(c).ErrorContext(c.Request.Context(), "request failed",
			"status", status,
			"error", err.Error(),
			"cause", resp.Message,
		)
	}
	c.AbortWithStatusJSON(status, resp)
}

// currentActor reads the caller set by the auth middleware. It writes a 401
// and returns false when there is none.
func currentActor(c *gin.Context) (authz.Actor, bool) {
	id, err := middleware.CurrentUserID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return authz.Actor{}, false
	}
	return authz.Actor{ID: id, Role: authz.Role(middleware.CurrentRole(c))}, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: apperror.FormatValidation(err),
		})
		return false
	}
	return true
}
