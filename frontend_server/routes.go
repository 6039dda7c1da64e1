package main

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"helpdesk/types"
)

// RegisterRoutes mounts templates and every route on the engine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.SetFuncMap(template.FuncMap{
		"statusText":   types.StatusText,
		"priorityText": types.PriorityText,
		"roleName":     types.RoleName,
	})
	r.LoadHTMLGlob(s.cfg.TemplatesDir + "/*.html")
	r.Static("/static", s.cfg.StaticDir)

	r.GET("/", s.handleIndex)
	r.GET("/login", s.handleLogin)
	r.GET("/auth/callback", s.handleAuthCallback)
	r.GET("/logout", s.handleLogout)

	authed := r.Group("/", s.requireSession())

	// Shared by every role
	authed.GET("/tickets/:id/conversation", s.handleConversation)
	authed.POST("/tickets/:id/messages", s.handlePostMessage)
	authed.GET("/ws/tickets/:id/chat", s.handleChatSocket)
	authed.POST("/profile", s.handleUpdateProfile)

	user := authed.Group("/", s.requireRole(types.RolUsuario))
	user.GET("/user", s.handleUserDashboard)
	user.POST("/tickets", s.handleCreateTicket)
	user.POST("/tickets/:id/return", s.handleReturnTicket)

	staff := authed.Group("/", s.requireRole(types.RolAgente, types.RolAdmin))
	staff.GET("/agent", s.handleAgentDashboard)
	staff.POST("/tickets/:id/claim", s.handleClaimTicket)
	staff.POST("/tickets/:id/status", s.handleChangeStatus)
	staff.POST("/tickets/:id/priority", s.handleChangePriority)
	staff.POST("/tickets/:id/category", s.handleChangeCategory)

	admin := authed.Group("/", s.requireRole(types.RolAdmin))
	admin.GET("/admin", s.handleAdminDashboard)
	admin.POST("/tickets/:id/assign", s.handleAssignTicket)
	admin.POST("/categories", s.handleCreateCategory)
	admin.POST("/users/:id/role", s.handleChangeUserRole)
	admin.POST("/users/:id/activate", s.handleActivateUser)
	admin.POST("/users/:id/deactivate", s.handleDeactivateUser)
}
