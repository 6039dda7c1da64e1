package backend

import (
	"context"
	"net/http"

	"helpdesk/types"
)

type categoryListResponse struct {
	Success    bool             `json:"success"`
	Categories []types.Category `json:"categories"`
}

type categoryResponse struct {
	Success  bool           `json:"success"`
	Category types.Category `json:"category"`
}

// ListCategories loads the category reference list used by selection
// controls and label resolution.
func (c *Client) ListCategories(ctx context.Context) ([]types.Category, error) {
	resp, err := doJSON[categoryListResponse](ctx, c, http.MethodGet, "/api/categories", nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return resp.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*types.Category, error) {
	payload := map[string]string{"name": name}
	resp, err := doJSON[categoryResponse](ctx, c, http.MethodPost, "/api/categories", payload)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return &resp.Category, nil
}
