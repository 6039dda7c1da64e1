package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"helpdesk/session"
)

const sessionCookie = "helpdesk_session"

const sessionKey = "helpdesk.session"

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// requireSession resolves the session cookie and aborts to the login page
// when it is missing, unknown or expired.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		sess, ok := s.sessions.Get(id)
		if !ok {
			c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// requireRole gates a route group to the listed rol_id values.
func (s *Server) requireRole(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		for _, role := range roles {
			if sess.User.RolID == role {
				c.Next()
				return
			}
		}
		c.HTML(http.StatusForbidden, "error.html", gin.H{
			"Message": "No tienes permisos para acceder a esta página.",
			"Back":    roleHome(sess.User.RolID),
		})
		c.Abort()
	}
}

// currentSession returns the session set by requireSession. Only valid on
// routes behind that middleware.
func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
