package screens

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultReportsPageSize = 20
	DefaultRefreshInterval = 15 * time.Second
)

// ReportsScreen is the moderation queue. Filtering and paging happen on
// the server. Refreshes are single-flight: a timer tick and a manual
// refresh for the same query share one request, and a response for a
// query that has since changed is dropped.
type ReportsScreen struct {
	svc    services.ReportService
	logger logging.Logger
	flight singleflight.Group

	mu          sync.Mutex
	query       models.ReportQuery
	gen         uint64
	page        models.ReportPage
	detail      *models.Report
	detailGen   uint64
	loaded      bool
	closed      bool
	autoRefresh bool
	visible     bool
	refreshErr  error
	deleting    map[string]bool
}

// NewReportsScreen starts hidden: auto refresh is on but waits for
// SetVisible(true).
func NewReportsScreen(svc services.ReportService, logger logging.Logger) *ReportsScreen {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &ReportsScreen{
		svc:         svc,
		logger:      logger,
		query:       models.ReportQuery{Page: 1, Limit: DefaultReportsPageSize},
		autoRefresh: true,
		deleting:    map[string]bool{},
	}
}

// Query returns the current server-side filter.
func (s *ReportsScreen) Query() models.ReportQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetQuery replaces the filter. Changing anything but the page resets the
// page to 1. Call Refresh to load it.
func (s *ReportsScreen) SetQuery(q models.ReportQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.Limit <= 0 {
		q.Limit = DefaultReportsPageSize
	}
	q.Page = max(q.Page, 1)
	if !sameFilter(q, s.query) {
		q.Page = 1
	}
	if q != s.query {
		s.query = q
		s.gen++
	}
}

func sameFilter(a, b models.ReportQuery) bool {
	a.Page, b.Page = 0, 0
	return a == b
}

// UpdateQuery applies fn to a copy of the current filter.
func (s *ReportsScreen) UpdateQuery(fn func(q *models.ReportQuery)) {
	q := s.Query()
	fn(&q)
	s.SetQuery(q)
}

// Refresh loads the current query. Concurrent calls for the same query
// share one request. The shared request is not bound to any one caller's
// ctx; a caller whose ctx ends stops waiting and the others still get the
// page.
func (s *ReportsScreen) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	q, gen := s.query, s.gen
	s.mu.Unlock()

	key := fmt.Sprintf("%d|%+v", gen, q)
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.svc.List(context.WithoutCancel(ctx), q)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-ch:
	}
	if res.Shared {
		s.logger.Debug(ctx, "joined in-flight report refresh", "generation", gen)
	}
	if res.Err != nil {
		return res.Err
	}
	page := res.Val.(*models.ReportPage)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		s.logger.Debug(ctx, "dropping stale report page", "generation", gen)
		return nil
	}
	s.page = *page
	s.page.Reports = slices.Clone(page.Reports)
	s.loaded = true
	s.refreshErr = nil
	return nil
}

// RefreshError returns the last auto refresh failure, or nil once a later
// refresh has succeeded.
func (s *ReportsScreen) RefreshError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshErr
}

func (s *ReportsScreen) setRefreshError(err error) {
	s.mu.Lock()
	s.refreshErr = err
	s.mu.Unlock()
}

// Page returns the last loaded page.
func (s *ReportsScreen) Page() models.ReportPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.page
	p.Reports = slices.Clone(p.Reports)
	return p
}

func (s *ReportsScreen) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *ReportsScreen) SetAutoRefresh(on bool) {
	s.mu.Lock()
	s.autoRefresh = on
	s.mu.Unlock()
}

// SetVisible pauses auto refresh while the screen is in the background.
func (s *ReportsScreen) SetVisible(on bool) {
	s.mu.Lock()
	s.visible = on
	s.mu.Unlock()
}

func (s *ReportsScreen) AutoRefreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoRefresh && s.visible && !s.closed
}

// OpenDetail fetches one report for the detail view.
func (s *ReportsScreen) OpenDetail(ctx context.Context, id string) (*models.Report, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.detailGen++
	gen := s.detailGen
	s.mu.Unlock()

	r, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.detailGen {
		return nil, ErrCanceled
	}
	s.detail = r
	s.replaceRow(*r)
	cp := *r
	return &cp, nil
}

func (s *ReportsScreen) CloseDetail() {
	s.mu.Lock()
	s.detailGen++
	s.detail = nil
	s.mu.Unlock()
}

// Detail returns the open report, or nil.
func (s *ReportsScreen) Detail() *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	cp := *s.detail
	cp.AdminNotes = slices.Clone(cp.AdminNotes)
	return &cp
}

func (s *ReportsScreen) current() (models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Report{}, ErrClosed
	}
	if s.detail == nil {
		return models.Report{}, fmt.Errorf("no report open: %w", common.ErrorNotFound)
	}
	return *s.detail, nil
}

// apply stores an updated report in the detail view and its list row.
func (s *ReportsScreen) apply(r *models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.detail != nil && s.detail.ID == r.ID {
		s.detail = r
	}
	s.replaceRow(*r)
}

func (s *ReportsScreen) replaceRow(r models.Report) {
	for i := range s.page.Reports {
		if s.page.Reports[i].ID == r.ID {
			s.page.Reports[i] = r
		}
	}
}

// AddNote appends a note to the open report.
func (s *ReportsScreen) AddNote(ctx context.Context, text string) error {
	r, err := s.current()
	if err != nil {
		return err
	}
	updated, err := s.svc.AddNote(ctx, r.ID, text)
	if err != nil {
		return err
	}
	s.apply(updated)
	return nil
}

// SetStatus moves the open report to next.
func (s *ReportsScreen) SetStatus(ctx context.Context, next models.ReportStatus) error {
	r, err := s.current()
	if err != nil {
		return err
	}
	updated, err := s.svc.SetStatus(ctx, r.ID, r.Status, next)
	if err != nil {
		return err
	}
	s.apply(updated)
	return nil
}

// Resolve closes the open report with action. Destructive actions go
// through c first; the others are submitted directly.
func (s *ReportsScreen) Resolve(ctx context.Context, action models.ResolutionAction, details string, c Confirmer) error {
	r, err := s.current()
	if err != nil {
		return err
	}
	submit := func(ctx context.Context) error {
		updated, err := s.svc.Resolve(ctx, r.ID, r.Status, action, details)
		if err != nil {
			return err
		}
		s.apply(updated)
		return nil
	}

	if !action.Valid() {
		return fmt.Errorf("%w: unknown resolution action %q", common.ErrorValidation, action)
	}
	if !action.Destructive() {
		return submit(ctx)
	}
	return confirm(ctx, c, dialog.Options{
		Title:        "Confirm resolution",
		Message:      fmt.Sprintf("Resolve report %s with %s? This action affects the reported account or content.", r.ID, action),
		ConfirmLabel: "Resolve",
		Destructive:  true,
		InitialFocus: dialog.FocusCancel,
		OnConfirm:    submit,
	})
}

// Delete removes the open report after confirmation. A second delete of
// the same report while the first is running fails with common.ErrBusy.
func (s *ReportsScreen) Delete(ctx context.Context, c Confirmer) error {
	r, err := s.current()
	if err != nil {
		return err
	}
	return confirm(ctx, c, dialog.Options{
		Title:        "Delete report",
		Message:      fmt.Sprintf("Delete report %s? This cannot be undone.", r.ID),
		ConfirmLabel: "Delete",
		Destructive:  true,
		InitialFocus: dialog.FocusCancel,
		OnConfirm: func(ctx context.Context) error {
			s.mu.Lock()
			if s.deleting[r.ID] {
				s.mu.Unlock()
				return common.ErrBusy
			}
			s.deleting[r.ID] = true
			s.mu.Unlock()
			defer func() {
				s.mu.Lock()
				delete(s.deleting, r.ID)
				s.mu.Unlock()
			}()

			if err := s.svc.Delete(ctx, r.ID); err != nil {
				return err
			}

			s.mu.Lock()
			defer s.mu.Unlock()
			if s.detail != nil && s.detail.ID == r.ID {
				s.detail = nil
			}
			before := len(s.page.Reports)
			s.page.Reports = slices.DeleteFunc(s.page.Reports, func(x models.Report) bool { return x.ID == r.ID })
			if removed := before - len(s.page.Reports); removed > 0 && s.page.Total >= removed {
				s.page.Total -= removed
			}
			return nil
		},
	})
}

func (s *ReportsScreen) Close() {
	s.mu.Lock()
	s.closed = true
	s.detail = nil
	s.mu.Unlock()
}
