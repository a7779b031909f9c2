package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

type totalResponse struct {
	Total int `json:"total"`
}

func (c *HTTPClient) TotalUsers(ctx context.Context) (int, error) {
	var resp totalResponse
	if err := c.do(ctx, http.MethodGet, c.Endpoint(nil, "admin", "total-users"), nil, &resp, requestOptions{}); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

func (c *HTTPClient) TotalProperties(ctx context.Context) (int, error) {
	var resp totalResponse
	if err := c.do(ctx, http.MethodGet, c.Endpoint(nil, "admin", "total-properties"), nil, &resp, requestOptions{}); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

func (c *HTTPClient) BarangayStats(ctx context.Context) ([]models.BarangayStat, error) {
	var resp []models.BarangayStat
	if err := c.do(ctx, http.MethodGet, c.Endpoint(nil, "admin", "user-barangay-stats"), nil, &resp, requestOptions{}); err != nil {
		return nil, err
	}
	return resp, nil
}
