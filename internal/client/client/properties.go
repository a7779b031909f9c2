package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

type propertyStatusRequest struct {
	Status models.PropertyStatus `json:"status"`
}

func (c *HTTPClient) ListProperties(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := c.do(ctx, http.MethodGet, c.Endpoint(nil, "properties"), nil, &props, requestOptions{}); err != nil {
		return nil, err
	}
	return props, nil
}

func (c *HTTPClient) SetPropertyStatus(ctx context.Context, id string, status models.PropertyStatus) error {
	return c.do(ctx, http.MethodPut, c.Endpoint(nil, "properties", id, "status"),
		propertyStatusRequest{Status: status}, nil, requestOptions{})
}

func (c *HTTPClient) DeleteProperty(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.Endpoint(nil, "properties", id), nil, nil, requestOptions{})
}
