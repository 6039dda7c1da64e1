package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"helpdesk/conversation"
	"helpdesk/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// messageView is a message shaped for rendering: attribution resolved, role
// already labelled.
type messageView struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	SentAt  string `json:"sent_at"`
	IsSelf  bool   `json:"is_self"`
	Sender  string `json:"sender"`
	Role    string `json:"role"`
}

type chatFrame struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	Messages []messageView `json:"messages,omitempty"`
}

type chatInbound struct {
	Content string `json:"content"`
}

func messageViews(messages []types.Message, current types.User) []messageView {
	out := make([]messageView, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageView{
			ID:      m.ID,
			Content: m.Content,
			SentAt:  m.SentAt,
			IsSelf:  conversation.IsSelf(m, current),
			Sender:  conversation.SenderName(m),
			Role:    conversation.RoleLabel(m, current),
		})
	}
	return out
}

// handleChatSocket runs one ticket conversation over a websocket: history on
// connect, then each inbound {content} frame becomes a send followed by the
// reconciled message list. Closing the socket cancels any wait in flight.
func (s *Server) handleChatSocket(c *gin.Context) {
	sess := currentSession(c)
	ticketID, ok := ticketParam(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("chat: websocket upgrade failed")
		return
	}
	defer conn.Close()

	// The request context dies with the handler; the socket outlives it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := s.pollerFor(sess)

	messages, err := poller.Open(ctx, ticketID)
	if err != nil {
		conn.WriteJSON(chatFrame{Type: "error", Text: "No se pudo cargar la conversación."})
		return
	}
	if err := conn.WriteJSON(chatFrame{Type: "history", Messages: messageViews(messages, sess.User)}); err != nil {
		return
	}

	for {
		var in chatInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Int("ticket_id", ticketID).Msg("chat: socket closed")
			}
			return
		}
		if in.Content == "" {
			continue
		}

		messages, err = poller.Send(ctx, ticketID, sess.User, in.Content, messages)
		if err != nil {
			if writeErr := conn.WriteJSON(chatFrame{Type: "error", Text: errorMessage(err)}); writeErr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(chatFrame{Type: "history", Messages: messageViews(messages, sess.User)}); err != nil {
			return
		}
	}
}

// handleConversation is the no-websocket fallback: the current message list
// as JSON.
func (s *Server) handleConversation(c *gin.Context) {
	sess := currentSession(c)
	ticketID, ok := ticketParam(c)
	if !ok {
		return
	}

	messages, err := s.pollerFor(sess).Open(c.Request.Context(), ticketID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo cargar la conversación."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messageViews(messages, sess.User)})
}

// handlePostMessage is the no-websocket send fallback.
func (s *Server) handlePostMessage(c *gin.Context) {
	sess := currentSession(c)
	ticketID, ok := ticketParam(c)
	if !ok {
		return
	}
	content := c.PostForm("content")
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El mensaje no puede estar vacío."})
		return
	}

	poller := s.pollerFor(sess)
	current, err := poller.API.GetConversation(c.Request.Context(), ticketID)
	if err != nil {
		current = nil
	}
	messages, err := poller.Send(c.Request.Context(), ticketID, sess.User, content, current)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messageViews(messages, sess.User)})
}
