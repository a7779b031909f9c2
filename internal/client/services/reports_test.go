package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_AddNote(t *testing.T) {
	fc := &fakeClient{ReportRet: &models.Report{ID: "R"}}
	svc := NewReportService(fc)

	_, err := svc.AddNote(context.Background(), "R", "  ")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, fc.Calls())

	_, err = svc.AddNote(context.Background(), "R", " looked at it ")
	require.NoError(t, err)
	assert.Equal(t, "looked at it", fc.LastNote)
}

func TestReportService_SetStatus(t *testing.T) {
	tests := []struct {
		from, to models.ReportStatus
		ok       bool
	}{
		{models.ReportOpen, models.ReportUnderReview, true},
		{models.ReportUnderReview, models.ReportOpen, true},
		{models.ReportOpen, models.ReportDismissed, true},
		{models.ReportOpen, models.ReportResolved, false},
		{models.ReportDismissed, models.ReportOpen, false},
		{models.ReportResolved, models.ReportUnderReview, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			fc := &fakeClient{ReportRet: &models.Report{ID: "R", Status: tt.to}}
			_, err := NewReportService(fc).SetStatus(context.Background(), "R", tt.from, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, fc.LastStatus)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidTransition)
			assert.Empty(t, fc.Calls())
		})
	}
}

func TestReportService_Resolve(t *testing.T) {
	fc := &fakeClient{ReportRet: &models.Report{ID: "R", Status: models.ReportResolved}}
	svc := NewReportService(fc)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "R", models.ReportOpen, "shadow_ban", "")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Resolve(ctx, "R", models.ReportResolved, models.ActionWarned, "")
	require.ErrorIs(t, err, common.ErrAlreadyResolved)

	_, err = svc.Resolve(ctx, "R", models.ReportDismissed, models.ActionWarned, "")
	require.ErrorIs(t, err, common.ErrInvalidTransition)
	assert.Empty(t, fc.Calls())

	r, err := svc.Resolve(ctx, "R", models.ReportOpen, models.ActionWarned, " first offense ")
	require.NoError(t, err)
	assert.Equal(t, models.ReportResolved, r.Status)
	assert.Equal(t, models.ActionWarned, fc.LastAction)
	assert.Equal(t, "first offense", fc.LastDetails)
}

func TestReportService_Delete(t *testing.T) {
	svc := NewReportService(&fakeClient{DeleteErr: &client.APIError{Status: http.StatusNotFound}})
	require.NoError(t, svc.Delete(context.Background(), "R"), "already gone counts as deleted")

	boom := errors.New("boom")
	svc = NewReportService(&fakeClient{DeleteErr: boom})
	require.ErrorIs(t, svc.Delete(context.Background(), "R"), boom)
}

func TestReportService_List(t *testing.T) {
	fc := &fakeClient{ReportPage: &models.ReportPage{Total: 3}}
	q := models.ReportQuery{Status: models.ReportOpen, Page: 2, Limit: 10}

	page, err := NewReportService(fc).List(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, q, fc.LastQuery)
}
