package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"careerscope/internal/errors"
	"careerscope/internal/types"
)

const (
	authRejectedFallback = "Authentication failed"
	authOfflineMessage   = "Authentication failed. The service may be offline."
)

// Login submits login credentials and returns the authenticated user record
func (c *Client) Login(ctx context.Context, creds types.Credentials) (*types.UserRecord, error) {
	payload := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}
	return c.authRequest(ctx, "/login", payload)
}

// Signup registers a new user and returns the created user record
func (c *Client) Signup(ctx context.Context, creds types.Credentials) (*types.UserRecord, error) {
	payload := map[string]string{
		"name":     creds.Name,
		"email":    creds.Email,
		"password": creds.Password,
	}
	return c.authRequest(ctx, "/signup", payload)
}

// authRequest posts a JSON payload to one of the auth endpoints. The two
// endpoints only differ in path and payload shape.
func (c *Client) authRequest(ctx context.Context, path string, payload map[string]string) (*types.UserRecord, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode auth request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to build auth request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, req, c.authCB)
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeServiceUnavailable,
			authOfflineMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(resp, authRejectedFallback)
		return nil, errors.NewAuthError(errors.ErrCodeAuthRejected, detail, nil).
			WithContext("status", resp.StatusCode).
			WithContext("endpoint", path)
	}

	var authResp types.AuthResponse
	if err := decodeJSON(resp, &authResp); err != nil {
		return nil, errors.NewAuthError(errors.ErrCodeInvalidResponse,
			"Auth service returned a malformed response", err)
	}

	user := types.UserRecord{
		Name:   authResp.Name,
		Email:  authResp.Email,
		UserID: authResp.UserID,
	}

	c.logger.Info("Authentication succeeded", "endpoint", path, "name", user.Name)

	return &user, nil
}
