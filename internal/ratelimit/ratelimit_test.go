package ratelimit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship-portal-backend/internal/middleware"
	"internship-portal-backend/internal/models"
)

func TestKey(t *testing.T) {
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	assert.Equal(t, "rate_limit:user:0f8fad5b-d9cb-469f-a165-70867728950e:apply", Key(id, ActionApply))
}

func TestAllow_NoRedisAllowsEverything(t *testing.T) {
	l := New(nil, nil)
	for i := 0; i < 3; i++ {
		allowed, _, err := l.Allow(context.Background(), uuid.New(), ActionApply, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestNewFromURL_EmptyURL(t *testing.T) {
	l, err := NewFromURL(context.Background(), "", nil)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}

func TestNewFromURL_InvalidURL(t *testing.T) {
	_, err := NewFromURL(context.Background(), "not-a-redis-url", nil)
	assert.Error(t, err)
}

func TestMiddleware_FailsOpenOnRedisError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	// Nothing listens on this port, so every command fails.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	l := New(rdb, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.NewString())
		c.Next()
	})
	router.POST("/apply", l.Middleware(ActionApply, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/apply", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func newLimitedRouter(l *Limiter, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, c.GetHeader("X-User"))
		c.Next()
	})
	router.POST("/apply", l.Middleware(ActionApply, window), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func postAs(router *gin.Engine, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/apply", nil)
	req.Header.Set("X-User", userID)
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_RejectsSecondRequestInWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	router := newLimitedRouter(New(rdb, nil), 5*time.Second)

	alice := uuid.NewString()

	w := postAs(router, alice)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postAs(router, alice)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "5", w.Header().Get("Retry-After"))
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Too many requests", resp.Error)

	// Windows are per user.
	w = postAs(router, uuid.NewString())
	assert.Equal(t, http.StatusCreated, w.Code)

	mr.FastForward(5 * time.Second)
	w = postAs(router, alice)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAllow_ReportsTimeLeft(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	l := New(rdb, nil)
	ctx := context.Background()
	user := uuid.New()

	allowed, _, err := l.Allow(ctx, user, ActionUpload, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.True(t, mr.Exists(Key(user, ActionUpload)))

	mr.FastForward(20 * time.Second)
	allowed, left, err := l.Allow(ctx, user, ActionUpload, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, left)

	allowed, _, err = l.Allow(ctx, user, ActionApply, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}
