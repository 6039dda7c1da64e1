package backend

import (
	"context"
	"fmt"
	"net/http"

	"helpdesk/types"
)

type conversationResponse struct {
	Conversation struct {
		Global struct {
			Messages []types.Message `json:"messages"`
		} `json:"global"`
	} `json:"conversation"`
}

type messageResponse struct {
	Success bool          `json:"success"`
	Message types.Message `json:"message"`
	Text    string        `json:"text"`
}

// GetConversation returns the ordered message thread for a ticket. A
// response without the conversation envelope yields an empty list, never
// nil.
func (c *Client) GetConversation(ctx context.Context, ticketID int) ([]types.Message, error) {
	resp, err := doJSON[conversationResponse](ctx, c, http.MethodGet, fmt.Sprintf("/api/tickets/%d/conversation", ticketID), nil)
	if err != nil {
		return nil, err
	}
	messages := resp.Conversation.Global.Messages
	if messages == nil {
		messages = []types.Message{}
	}
	return messages, nil
}

// SendMessage posts a message on the user endpoint. A 2xx body with
// success=false is still a failure, carrying the backend's text when
// present.
func (c *Client) SendMessage(ctx context.Context, ticketID int, content string) (types.Message, error) {
	return c.postMessage(ctx, fmt.Sprintf("/api/tickets/%d/messages", ticketID), content)
}

// ReplyToTicket posts a message on the agent/admin endpoint.
func (c *Client) ReplyToTicket(ctx context.Context, ticketID int, content string) (types.Message, error) {
	return c.postMessage(ctx, fmt.Sprintf("/api/tickets/%d/reply", ticketID), content)
}

func (c *Client) postMessage(ctx context.Context, path, content string) (types.Message, error) {
	payload := map[string]string{"content": content}
	resp, err := doJSON[messageResponse](ctx, c, http.MethodPost, path, payload)
	if err != nil {
		return types.Message{}, err
	}
	if !resp.Success {
		if resp.Text != "" {
			return types.Message{}, fmt.Errorf("failed to send message: %s", resp.Text)
		}
		return types.Message{}, errReportedFailure
	}
	return resp.Message, nil
}
