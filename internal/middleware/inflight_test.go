package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haythbl004/uni-console/internal/session"
)

func inflightRouter(guard *InFlightGuard, sessionID string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/holidays", func(c *gin.Context) {
		if sessionID != "" {
			c.Set(ContextSessionKey, &session.Session{ID: sessionID})
		}
	}, guard.Handler(), handler)
	return r
}

func TestInFlightGuardRejectsConcurrentDuplicate(t *testing.T) {
	guard := NewInFlightGuard()
	started := make(chan struct{})
	release := make(chan struct{})
	r := inflightRouter(guard, "sess-1", func(c *gin.Context) {
		close(started)
		<-release
		c.Status(http.StatusOK)
	})

	firstDone := make(chan int)
	go func() {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/holidays", nil))
		firstDone <- w.Code
	}()

	<-started

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/holidays", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_IN_FLIGHT")

	close(release)
	assert.Equal(t, http.StatusOK, <-firstDone)
}

func TestInFlightGuardReleasesAfterCompletion(t *testing.T) {
	guard := NewInFlightGuard()
	r := inflightRouter(guard, "sess-1", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/holidays", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestInFlightGuardKeysBySession(t *testing.T) {
	guard := NewInFlightGuard()
	started := make(chan struct{})
	release := make(chan struct{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/holidays", func(c *gin.Context) {
		c.Set(ContextSessionKey, &session.Session{ID: c.GetHeader("X-Test-Session")})
	}, guard.Handler(), func(c *gin.Context) {
		if c.GetHeader("X-Test-Session") == "sess-1" {
			close(started)
			<-release
		}
		c.Status(http.StatusOK)
	})

	firstDone := make(chan int)
	go func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/holidays", nil)
		req.Header.Set("X-Test-Session", "sess-1")
		r.ServeHTTP(w, req)
		firstDone <- w.Code
	}()

	<-started

	// A different session runs the same mutation freely.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/holidays", nil)
	req.Header.Set("X-Test-Session", "sess-2")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	close(release)
	select {
	case code := <-firstDone:
		assert.Equal(t, http.StatusOK, code)
	case <-time.After(time.Second):
		t.Fatal("first request never finished")
	}
}

func TestInFlightGuardSkipsAnonymousRequests(t *testing.T) {
	guard := NewInFlightGuard()
	r := inflightRouter(guard, "", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/holidays", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
