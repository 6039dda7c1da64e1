package backend

import (
	"context"
	"fmt"
	"net/http"

	"helpdesk/types"
)

type userResponse struct {
	User types.User `json:"user"`
}

type userListResponse struct {
	Success bool         `json:"success"`
	Users   []types.User `json:"users"`
}

type agentListResponse struct {
	Success bool         `json:"success"`
	Agents  []types.User `json:"agents"`
}

// AuthMe resolves the authenticated user behind the bearer token. Called
// once per login from the auth callback.
func (c *Client) AuthMe(ctx context.Context) (*types.User, error) {
	resp, err := doJSON[userResponse](ctx, c, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	resp, err := doJSON[userListResponse](ctx, c, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return resp.Users, nil
}

// ListAgents returns the users holding the agent role, for assignment
// selectors.
func (c *Client) ListAgents(ctx context.Context) ([]types.User, error) {
	resp, err := doJSON[agentListResponse](ctx, c, http.MethodGet, "/api/users/agentes", nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errReportedFailure
	}
	return resp.Agents, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, userID string, rolID int) error {
	payload := map[string]interface{}{"userId": userID, "rol_id": rolID}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/users/%s/role", userID), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}

func (c *Client) ActivateUser(ctx context.Context, userID string) error {
	return c.setUserActive(ctx, userID, "activate")
}

func (c *Client) DeactivateUser(ctx context.Context, userID string) error {
	return c.setUserActive(ctx, userID, "deactivate")
}

func (c *Client) setUserActive(ctx context.Context, userID, action string) error {
	payload := map[string]string{"userId": userID}
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, fmt.Sprintf("/api/users/%s/%s", userID, action), payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}

func (c *Client) UpdateProfile(ctx context.Context, data types.UpdateProfileData) error {
	resp, err := doJSON[successResponse](ctx, c, http.MethodPut, "/api/users/profile", data)
	if err != nil {
		return err
	}
	if !resp.Success {
		return errReportedFailure
	}
	return nil
}
