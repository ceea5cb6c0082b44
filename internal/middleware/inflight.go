package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/session"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
	"github.com/haythbl004/uni-console/pkg/response"
)

// InFlightGuard rejects a mutation while the same session already has
// an identical one running. The original console let double-clicked
// submit buttons fire the request twice; here the second click gets a
// 409 instead of a duplicate row.
type InFlightGuard struct {
	mu      sync.Mutex
	running map[string]struct{}
}

func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{running: make(map[string]struct{})}
}

func (g *InFlightGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.running[key]; busy {
		return false
	}
	g.running[key] = struct{}{}
	return true
}

func (g *InFlightGuard) release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, key)
}

// Handler guards the route it is attached to. Keyed by session id,
// method and route pattern, so distinct panels never block each other.
func (g *InFlightGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextSessionKey)
		if !exists {
			c.Next()
			return
		}
		sess := value.(*session.Session)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		key := sess.ID + " " + c.Request.Method + " " + path

		if !g.acquire(key) {
			response.Error(c, appErrors.ErrRequestInFlight)
			c.Abort()
			return
		}
		defer g.release(key)

		c.Next()
	}
}
