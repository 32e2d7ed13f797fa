package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader(common.RequestIDHeaderName),
			"duration", time.Since(start).String(),
		)
	}
}

// bearerToken returns the session token from the cookie, falling back to
// the Authorization header.
func bearerToken(c *gin.Context) string {
	if v, err := c.Cookie(common.TokenCookieName); err == nil && v != "" {
		return v
	}
	h := c.GetHeader(common.AuthorizationHeaderName)
	if strings.HasPrefix(h, common.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, common.BearerPrefix))
	}
	return ""
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "Not authorized, token failed"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Session expired, please log in again"
			}
			abort(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
