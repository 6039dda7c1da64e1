package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"helpdesk/types"
)

const (
	// MaxImages and MaxImageBytes bound ticket attachments. Enforced here,
	// before any network call; the backend enforces nothing further.
	MaxImages     = 5
	MaxImageBytes = 3 * 1024 * 1024
)

var (
	ErrTooManyImages = errors.New("No puedes adjuntar más de 5 imágenes.")
	ErrImageTooLarge = errors.New("Cada imagen debe pesar máximo 3 MB.")
)

type ticketListResponse struct {
	Success bool           `json:"success"`
	Tickets []types.Ticket `json:"tickets"`
}

type ticketResponse struct {
	Success bool         `json:"success"`
	Ticket  types.Ticket `json:"ticket"`
}

type successResponse struct {
	Success bool `json:"success"`
}

var errReportedFailure = errors.New("backend reported success=false")

// ListMyTickets returns the tickets owned by the authenticated user
// (server-filtered).
func (c *Client) ListMyTickets(ctx context.Context) ([]types.Ticket, error) {
	resp, err := doJSON[ticketListResponse](ctx, c, http.MethodGet, "/api/tickets/my-tickets", nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return resp.Tickets, nil
}

func (c *Client) ListAllTickets(ctx context.Context) ([]types.Ticket, error) {
	resp, err := doJSON[ticketListResponse](ctx, c, http.MethodGet, "/api/tickets/all", nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return resp.Tickets, nil
}

func (c *Client) CreateTicket(ctx context.Context, data types.CreateTicketData) (*types.Ticket, error) {
	resp, err := doJSON[ticketResponse](ctx, c, http.MethodPost, "/api/tickets", data)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return &resp.Ticket, nil
}

// Image is one attachment for CreateTicketWithImages.
type Image struct {
	Name    string
	Size    int64
	Content io.Reader
}

// CreateTicketWithImages submits a ticket plus up to MaxImages attachments
// of at most MaxImageBytes each as a multipart form. Validation failures
// return before anything is sent.
func (c *Client) CreateTicketWithImages(ctx context.Context, data types.CreateTicketData, images []Image) (*types.Ticket, error) {
	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}
	for _, img := range images {
		if img.Size > MaxImageBytes {
			return nil, ErrImageTooLarge
		}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("title", data.Title)
	_ = w.WriteField("description", data.Description)
	_ = w.WriteField("category_id", strconv.Itoa(data.CategoryID))
	_ = w.WriteField("priority_id", strconv.Itoa(data.PriorityID))
	for _, img := range images {
		part, err := w.CreateFormFile("images", img.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build multipart form: %w", err)
		}
		if _, err := io.Copy(part, img.Content); err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", img.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/tickets/with-images", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}
	var resp ticketResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return &resp.Ticket, nil
}

func (c *Client) GetTicketWithImages(ctx context.Context, ticketID int) (*types.Ticket, error) {
	resp, err := doJSON[ticketResponse](ctx, c, http.MethodGet, fmt.Sprintf("/api/tickets/%d/with-images", ticketID), nil)
	if err != nil {
		return nil, err
	}
	return &resp.Ticket, nil
}

func (c *Client) AssignTicket(ctx context.Context, ticketID int, agenteID string) error {
	payload := map[string]string{"agente_id": agenteID}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/tickets/%d/assign", ticketID), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}

func (c *Client) UpdateTicketStatus(ctx context.Context, ticketID, swStatus int, description string) error {
	payload := map[string]interface{}{"sw_status": swStatus, "description": description}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/tickets/%d/status", ticketID), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}

func (c *Client) UpdateTicketPriority(ctx context.Context, ticketID, priorityID int) error {
	payload := map[string]int{"priority_id": priorityID}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/tickets/%d/priority", ticketID), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}

func (c *Client) UpdateTicketCategory(ctx context.Context, ticketID, categoryID int) error {
	payload := map[string]int{"category_id": categoryID}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/tickets/%d/category", ticketID), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}

// ReturnTicket records a return reason; the resulting status is whatever
// the backend decides, visible on the next list refresh.
func (c *Client) ReturnTicket(ctx context.Context, ticketID int, reason string) error {
	payload := map[string]string{"reason": reason}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/tickets/%d/return", ticketID), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}
