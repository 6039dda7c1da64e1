package main

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/backend"
	"helpdesk/store"
	"helpdesk/types"
)

func (s *Server) handleUserDashboard(c *gin.Context) {
	sess := currentSession(c)
	st := s.storeFor(sess)
	ctx := c.Request.Context()

	if err := st.Refresh(ctx); err != nil {
		s.log.Error().Err(err).Msg("user dashboard: ticket refresh failed")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"Message": "No se pudieron cargar tus tickets.",
			"Back":    "/user",
		})
		return
	}

	filter := store.Filter{Search: c.Query("q")}
	categories, err := s.apiFor(sess).ListCategories(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("user dashboard: categories unavailable")
	}

	c.HTML(http.StatusOK, "user.html", gin.H{
		"User":       sess.User,
		"Tickets":    filter.Apply(st.List()),
		"Categories": categories,
		"Priorities": types.PriorityOptions(),
		"Search":     c.Query("q"),
		"Error":      c.Query("err"),
	})
}

// handleCreateTicket accepts the new-ticket form, with or without image
// attachments. Attachment limits are enforced before anything goes over the
// wire.
func (s *Server) handleCreateTicket(c *gin.Context) {
	sess := currentSession(c)
	st := s.storeFor(sess)
	ctx := c.Request.Context()

	data := types.CreateTicketData{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CategoryID:  formInt(c, "category_id"),
		PriorityID:  formInt(c, "priority_id"),
	}
	if data.Title == "" || data.Description == "" {
		s.finish(c, "/user", uiError("El título y la descripción son obligatorios."))
		return
	}

	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		headers = form.File["images"]
	}

	if len(headers) == 0 {
		_, err := st.Create(ctx, data)
		s.finish(c, "/user", err)
		return
	}
	if len(headers) > backend.MaxImages {
		s.finish(c, "/user", backend.ErrTooManyImages)
		return
	}

	images := make([]backend.Image, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > backend.MaxImageBytes {
			s.finish(c, "/user", backend.ErrImageTooLarge)
			return
		}
		content, err := fh.Open()
		if err != nil {
			s.finish(c, "/user", err)
			return
		}
		defer content.Close()
		images = append(images, backend.Image{
			Name:    fh.Filename,
			Size:    fh.Size,
			Content: content,
		})
	}
	_, err := st.CreateWithImages(ctx, data, images)
	s.finish(c, "/user", err)
}

// handleReturnTicket re-opens a resolved or closed ticket with a mandatory
// reason. The resulting status is whatever the backend records; the refresh
// after the call picks it up.
func (s *Server) handleReturnTicket(c *gin.Context) {
	sess := currentSession(c)
	st := s.storeFor(sess)
	id, ok := ticketParam(c)
	if !ok {
		return
	}

	reason := c.PostForm("reason")
	if reason == "" {
		s.finish(c, "/user", uiError("Debes indicar el motivo de la devolución."))
		return
	}

	for _, t := range st.List() {
		if t.ID == id && !t.Returnable() {
			s.finish(c, "/user", uiError("Este ticket no puede ser devuelto."))
			return
		}
	}

	s.finish(c, "/user", st.Return(c.Request.Context(), id, reason))
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	sess := currentSession(c)
	data := types.UpdateProfileData{
		Name:     c.PostForm("name"),
		JobTitle: c.PostForm("job_title"),
	}
	err := s.apiFor(sess).UpdateProfile(c.Request.Context(), data)
	if err == nil {
		updated := sess.User
		if data.Name != "" {
			updated.Name = data.Name
		}
		if data.JobTitle != "" {
			updated.JobTitle = data.JobTitle
		}
		if updErr := s.sessions.UpdateUser(sess.ID, updated); updErr != nil {
			s.log.Warn().Err(updErr).Msg("profile: session user not updated")
		}
	}
	s.finish(c, roleHome(sess.User.RolID), err)
}
