package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/common"
)

type ReportService interface {
	List(ctx context.Context, q models.ReportQuery) (*models.ReportPage, error)
	Get(ctx context.Context, id string) (*models.Report, error)
	AddNote(ctx context.Context, id, text string) (*models.Report, error)
	// SetStatus changes status when current allows moving to next.
	SetStatus(ctx context.Context, id string, current, next models.ReportStatus) (*models.Report, error)
	// Resolve refuses reports that are already resolved or dismissed.
	Resolve(ctx context.Context, id string, current models.ReportStatus, action models.ResolutionAction, details string) (*models.Report, error)
	// Delete treats a report the server no longer has as deleted.
	Delete(ctx context.Context, id string) error
}

type reportService struct {
	client client.Client
}

func NewReportService(c client.Client) ReportService {
	return &reportService{client: c}
}

func (s *reportService) List(ctx context.Context, q models.ReportQuery) (*models.ReportPage, error) {
	return s.client.ListReports(ctx, q)
}

func (s *reportService) Get(ctx context.Context, id string) (*models.Report, error) {
	return s.client.GetReport(ctx, id)
}

func (s *reportService) AddNote(ctx context.Context, id, text string) (*models.Report, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", common.ErrorValidation)
	}
	return s.client.AddReportNote(ctx, id, text)
}

func (s *reportService) SetStatus(ctx context.Context, id string, current, next models.ReportStatus) (*models.Report, error) {
	if next == models.ReportResolved {
		return nil, fmt.Errorf("%w: use resolve to resolve a report", common.ErrInvalidTransition)
	}
	if !current.CanMoveTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, current, next)
	}
	return s.client.SetReportStatus(ctx, id, next)
}

func (s *reportService) Resolve(ctx context.Context, id string, current models.ReportStatus, action models.ResolutionAction, details string) (*models.Report, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("%w: unknown resolution action %q", common.ErrorValidation, action)
	}
	if current == models.ReportResolved {
		return nil, common.ErrAlreadyResolved
	}
	if !current.CanResolve() {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, current, models.ReportResolved)
	}
	return s.client.ResolveReport(ctx, id, action, strings.TrimSpace(details))
}

func (s *reportService) Delete(ctx context.Context, id string) error {
	err := s.client.DeleteReport(ctx, id)
	if errors.Is(err, client.ErrNotFound) {
		return nil
	}
	return err
}
