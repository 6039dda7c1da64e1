package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/store"
	"helpdesk/types"
)

// handleAgentDashboard shows the agent's two working sets: the queue of
// tickets assigned and in flight, and the pool of open or returned tickets
// available to claim.
func (s *Server) handleAgentDashboard(c *gin.Context) {
	sess := currentSession(c)
	st := s.storeFor(sess)
	ctx := c.Request.Context()

	if err := st.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("agent dashboard: ticket refresh failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"Message": "No se pudieron cargar los tickets.",
			"Back":    "/agent",
		})
		return
	}

	filter := store.Filter{
		Search:   c.Query("q"),
		Status:   formIntQuery(c, "status"),
		Priority: formIntQuery(c, "priority"),
	}
	tickets := filter.Apply(st.List())

	categories, err := s.apiFor(sess).ListCategories(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("agent dashboard: categories unavailable")
	}

	c.HTML(http.StatusOK, "agent.html", gin.H{
		"User":       sess.User,
		"Queue":      store.AssignedQueue(tickets),
		"Pool":       store.ClaimPool(tickets),
		"Categories": categories,
		"Statuses":   types.StatusOptions(),
		"Priorities": types.PriorityOptions(),
		"Search":     c.Query("q"),
		"Status":     formIntQuery(c, "status"),
		"Priority":   formIntQuery(c, "priority"),
		"Error":      c.Query("err"),
	})
}

func (s *Server) handleClaimTicket(c *gin.Context) {
	sess := currentSession(c)
	st := s.storeFor(sess)
	id, ok := ticketParam(c)
	if !ok {
		return
	}

	for _, t := range st.List() {
		if t.ID == id && !t.Claimable() {
			s.finish(c, roleHome(sess.User.RolID), uiError("Este ticket ya no está disponible."))
			return
		}
	}

	s.finish(c, roleHome(sess.User.RolID), st.Claim(c.Request.Context(), id))
}

func (s *Server) handleChangeStatus(c *gin.Context) {
	sess := currentSession(c)
	id, ok := ticketParam(c)
	if !ok {
		return
	}
	swStatus := formInt(c, "sw_status")
	if types.StatusText(swStatus) == "Desconocido" {
		s.finish(c, roleHome(sess.User.RolID), uiError("Estado inválido."))
		return
	}
	err := s.storeFor(sess).ChangeStatus(c.Request.Context(), id, swStatus, c.PostForm("description"))
	s.finish(c, roleHome(sess.User.RolID), err)
}

func (s *Server) handleChangePriority(c *gin.Context) {
	sess := currentSession(c)
	id, ok := ticketParam(c)
	if !ok {
		return
	}
	err := s.storeFor(sess).ChangePriority(c.Request.Context(), id, formInt(c, "priority_id"))
	s.finish(c, roleHome(sess.User.RolID), err)
}

func (s *Server) handleChangeCategory(c *gin.Context) {
	sess := currentSession(c)
	id, ok := ticketParam(c)
	if !ok {
		return
	}
	err := s.storeFor(sess).ChangeCategory(c.Request.Context(), id, formInt(c, "category_id"))
	s.finish(c, roleHome(sess.User.RolID), err)
}
