package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"helpdesk/store"
	"helpdesk/types"
)

// handleAdminDashboard is the full management view: every ticket, the user
// roster and the category list, switched by the view query parameter.
func (s *Server) handleAdminDashboard(c *gin.Context) {
	sess := currentSession(c)
	st := s.storeFor(sess)
	ctx := c.Request.Context()
	api := s.apiFor(sess)

	if err := st.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("admin dashboard: ticket refresh failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"Message": "No se pudieron cargar los tickets.",
			"Back":    "/admin",
		})
		return
	}

	filter := store.Filter{
		Search:   c.Query("q"),
		Status:   formIntQuery(c, "status"),
		Priority: formIntQuery(c, "priority"),
	}

	view := c.Query("view")
	if view != "users" && view != "categories" {
		view = "tickets"
	}

	data := gin.H{
		"User":       sess.User,
		"View":       view,
		"Tickets":    filter.Apply(st.List()),
		"Statuses":   types.StatusOptions(),
		"Priorities": types.PriorityOptions(),
		"Search":     c.Query("q"),
		"Status":     formIntQuery(c, "status"),
		"Priority":   formIntQuery(c, "priority"),
		"Error":      c.Query("err"),
	}

	if agents, err := api.ListAgents(ctx); err == nil {
		data["Agents"] = agents
	} else {
		s.log.Warn().Err(err).Msg("admin dashboard: agents unavailable")
	}
	if categories, err := api.ListCategories(ctx); err == nil {
		data["Categories"] = categories
	} else {
		s.log.Warn().Err(err).Msg("admin dashboard: categories unavailable")
	}
	if view == "users" {
		users, err := api.ListUsers(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("admin dashboard: users unavailable")
		}
		data["Users"] = users
	}

	c.HTML(http.StatusOK, "admin.html", data)
}

// handleAssignTicket assigns any ticket to a chosen agent, forcing the
// status to Asignado.
func (s *Server) handleAssignTicket(c *gin.Context) {
	sess := currentSession(c)
	id, ok := ticketParam(c)
	if !ok {
		return
	}
	agentID := c.PostForm("agente_id")
	if agentID == "" {
		s.finish(c, "/admin", uiError("Debes seleccionar un agente."))
		return
	}
	s.finish(c, "/admin", s.storeFor(sess).AssignToAgent(c.Request.Context(), id, agentID))
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	sess := currentSession(c)
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		s.finish(c, "/admin?view=categories", uiError("El nombre de la categoría es obligatorio."))
		return
	}
	_, err := s.apiFor(sess).CreateCategory(c.Request.Context(), name)
	s.finish(c, "/admin?view=categories", err)
}

func (s *Server) handleChangeUserRole(c *gin.Context) {
	sess := currentSession(c)
	userID := c.Param("id")
	if userID == sess.User.ID {
		s.finish(c, "/admin?view=users", uiError("No puedes cambiar tu propio rol."))
		return
	}
	rolID := formInt(c, "rol_id")
	if rolID != types.RolUsuario && rolID != types.RolAgente && rolID != types.RolAdmin {
		s.finish(c, "/admin?view=users", uiError("Rol inválido."))
		return
	}
	s.finish(c, "/admin?view=users", s.apiFor(sess).UpdateUserRole(c.Request.Context(), userID, rolID))
}

func (s *Server) handleActivateUser(c *gin.Context) {
	sess := currentSession(c)
	s.finish(c, "/admin?view=users", s.apiFor(sess).ActivateUser(c.Request.Context(), c.Param("id")))
}

func (s *Server) handleDeactivateUser(c *gin.Context) {
	sess := currentSession(c)
	userID := c.Param("id")
	if userID == sess.User.ID {
		s.finish(c, "/admin?view=users", uiError("No puedes desactivar tu propia cuenta."))
		return
	}
	s.finish(c, "/admin?view=users", s.apiFor(sess).DeactivateUser(c.Request.Context(), userID))
}
