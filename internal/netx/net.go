// Package netx holds plain HTTP helpers that sit outside the API client:
// fetching uploaded files from the uploads host or presigned storage URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxDownloadBytes caps a single document download.
const MaxDownloadBytes = 32 << 20

// Download fetches url with an optional bearer token and returns the body.
// Any non-200 status is an error carrying the status and a body excerpt.
func Download(ctx context.Context, hc *http.Client, url, bearer string) ([]byte, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxDownloadBytes {
		return nil, fmt.Errorf("download failed: file exceeds %d bytes", MaxDownloadBytes)
	}
	return body, nil
}
