package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/backend"
	"helpdesk/types"
)

func roleHome(rolID int) string {
	switch rolID {
	case types.RolAgente:
		return "/agent"
	case types.RolAdmin:
		return "/admin"
	default:
		return "/user"
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(id); ok {
			c.Redirect(http.StatusFound, roleHome(sess.User.RolID))
			return
		}
	}
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) handleLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"OAuthURL": s.cfg.APIBaseURL + "/api/auth/google",
	})
}

// handleAuthCallback finishes the backend's OAuth flow. The backend
// redirects here with the issued bearer token; we resolve the user behind
// it, open a session and land on the role's dashboard.
func (s *Server) handleAuthCallback(c *gin.Context) {
	token := c.Query("access_token")
	if token == "" {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"Message": "No se recibió el token de acceso.",
			"Back":    "/login",
		})
		return
	}

	api := backend.New(s.cfg.APIBaseURL, backend.StaticToken(token), s.log)
	user, err := api.AuthMe(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("auth callback: token validation failed")
		c.HTML(http.StatusUnauthorized, "error.html", gin.H{
			"Message": "No se pudo validar la sesión. Intenta iniciar sesión de nuevo.",
			"Back":    "/login",
		})
		return
	}

	if err := s.tokens.SaveToken(token); err != nil {
		s.log.Warn().Err(err).Msg("auth callback: token not persisted")
	}

	sess, err := s.sessions.Create(token, *user)
	if err != nil {
		s.log.Error().Err(err).Msg("auth callback: session create failed")
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"Message": "No se pudo crear la sesión.",
			"Back":    "/login",
		})
		return
	}

	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, roleHome(user.RolID))
}

func (s *Server) handleLogout(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(id)
		s.dropStore(id)
	}
	if err := s.tokens.RemoveToken(); err != nil {
		s.log.Warn().Err(err).Msg("logout: token file not removed")
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
