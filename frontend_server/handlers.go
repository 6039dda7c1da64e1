package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"helpdesk/backend"
	"helpdesk/store"
)

func ticketParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"Message": "Ticket inválido.",
			"Back":    "/",
		})
		return 0, false
	}
	return id, true
}

// uiError is a validation message meant for the banner as-is.
type uiError string

func (e uiError) Error() string { return string(e) }

// errorMessage renders an operation error as the banner text a dashboard
// shows. Validation errors keep their own wording; everything else collapses
// to a generic line, with the detail left to the log.
func errorMessage(err error) string {
	var partial *store.PartialClaimError
	if errors.As(err, &partial) {
		return fmt.Sprintf("El ticket %d quedó asignado pero el cambio de estado falló. Recarga la página e inténtalo de nuevo.", partial.TicketID)
	}
	var ue uiError
	if errors.As(err, &ue) {
		return string(ue)
	}
	if errors.Is(err, backend.ErrTooManyImages) || errors.Is(err, backend.ErrImageTooLarge) {
		return err.Error()
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return "La operación falló en el servidor."
	}
	return "Ocurrió un error inesperado."
}

// finish ends a mutation handler: back to the dashboard, with the error (if
// any) carried as a banner query parameter.
func (s *Server) finish(c *gin.Context, home string, err error) {
	if err != nil {
		s.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("operation failed")
		sep := "?"
		if strings.Contains(home, "?") {
			sep = "&"
		}
		c.Redirect(http.StatusSeeOther, home+sep+"err="+url.QueryEscape(errorMessage(err)))
		return
	}
	c.Redirect(http.StatusSeeOther, home)
}

func formInt(c *gin.Context, field string) int {
	v, _ := strconv.Atoi(c.PostForm(field))
	return v
}

func formIntQuery(c *gin.Context, field string) int {
	v, _ := strconv.Atoi(c.Query(field))
	return v
}
