package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, c.Endpoint(nil, "users"), nil, &users, requestOptions{}); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) BanUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, c.Endpoint(nil, "users", id, "ban"), nil, nil, requestOptions{})
}

func (c *HTTPClient) UnbanUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, c.Endpoint(nil, "users", id, "unban"), nil, nil, requestOptions{})
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.Endpoint(nil, "users", id), nil, nil, requestOptions{})
}
