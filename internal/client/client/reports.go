package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

type noteRequest struct {
	Text string `json:"text"`
}

type reportStatusRequest struct {
	Status models.ReportStatus `json:"status"`
}

type resolveRequest struct {
	Action  models.ResolutionAction `json:"action"`
	Details string                  `json:"details"`
}

func reportQueryValues(q models.ReportQuery) url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Type != "" {
		v.Set("type", string(q.Type))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *HTTPClient) ListReports(ctx context.Context, q models.ReportQuery) (*models.ReportPage, error) {
	var page models.ReportPage
	if err := c.do(ctx, http.MethodGet, c.Endpoint(reportQueryValues(q), "reports"), nil, &page, requestOptions{}); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) GetReport(ctx context.Context, id string) (*models.Report, error) {
	return c.reportCall(ctx, http.MethodGet, nil, id)
}

func (c *HTTPClient) AddReportNote(ctx context.Context, id, text string) (*models.Report, error) {
	return c.reportCall(ctx, http.MethodPost, noteRequest{Text: text}, id, "notes")
}

func (c *HTTPClient) SetReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error) {
	return c.reportCall(ctx, http.MethodPatch, reportStatusRequest{Status: status}, id, "status")
}

func (c *HTTPClient) ResolveReport(ctx context.Context, id string, action models.ResolutionAction, details string) (*models.Report, error) {
	return c.reportCall(ctx, http.MethodPatch, resolveRequest{Action: action, Details: details}, id, "resolve")
}

func (c *HTTPClient) DeleteReport(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.Endpoint(nil, "reports", id), nil, nil, requestOptions{})
}

func (c *HTTPClient) reportCall(ctx context.Context, method string, in any, segments ...string) (*models.Report, error) {
	var r models.Report
	path := append([]string{"reports"}, segments...)
	if err := c.do(ctx, method, c.Endpoint(nil, path...), in, &r, requestOptions{}); err != nil {
		return nil, err
	}
	return &r, nil
}
