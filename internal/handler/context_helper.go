package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/haythbl004/uni-console/internal/middleware"
	"github.com/haythbl004/uni-console/internal/session"
	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

func sessionFromContext(c *gin.Context) *session.Session {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// pageQuery reads the ?page= parameter, defaulting to the first page.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}
