package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

func (c *HTTPClient) LandlordsForVerification(ctx context.Context) ([]models.Landlord, error) {
	var landlords []models.Landlord
	if err := c.do(ctx, http.MethodGet, c.Endpoint(nil, "users", "landlords-for-verification"), nil, &landlords, requestOptions{}); err != nil {
		return nil, err
	}
	return landlords, nil
}

// VerifyLandlord submits the full approval set for one landlord.
func (c *HTTPClient) VerifyLandlord(ctx context.Context, req models.VerifyRequest) (*models.VerifyResponse, error) {
	var resp models.VerifyResponse
	if err := c.do(ctx, http.MethodPost, c.Endpoint(nil, "users", "verify-landlord-id"), req, &resp, requestOptions{}); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteLandlordDocument(ctx context.Context, landlordID, docID string) error {
	return c.do(ctx, http.MethodDelete,
		c.Endpoint(nil, "users", "landlord-verification", landlordID, "doc", docID), nil, nil, requestOptions{})
}
