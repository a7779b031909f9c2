package client

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login exchanges admin credentials for a bearer token. A 401 here means
// bad credentials and does not touch the session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, c.Endpoint(nil, "auth", "admin", "login"),
		loginRequest{Email: email, Password: password}, &resp, requestOptions{anonymous: true})
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return resp.Token, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, current, next string) error {
	return c.do(ctx, http.MethodPost, c.Endpoint(nil, "auth", "admin", "change-password"),
		changePasswordRequest{CurrentPassword: current, NewPassword: next}, nil, requestOptions{})
}
