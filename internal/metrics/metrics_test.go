package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/internships/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(requestTotal.WithLabelValues("GET", "/internships/:id", "200"))

	req, _ := http.NewRequest("GET", "/internships/abc", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(requestTotal.WithLabelValues("GET", "/internships/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(applicationReviews.WithLabelValues("accepted"))
	ApplicationReviewed("accepted")
	assert.Equal(t, before+1, testutil.ToFloat64(applicationReviews.WithLabelValues("accepted")))

	submitted := testutil.ToFloat64(applicationsSubmitted)
	ApplicationSubmitted()
	assert.Equal(t, submitted+1, testutil.ToFloat64(applicationsSubmitted))

	uploaded := testutil.ToFloat64(resumesUploaded)
	ResumeUploaded()
	assert.Equal(t, uploaded+1, testutil.ToFloat64(resumesUploaded))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ResumeUploaded()

	router := gin.New()
	router.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "internship_portal_resumes_uploaded_total")
}
