package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

// fakeClient implements client.Client, recording calls and returning the
// configured results.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	LoginToken string
	LoginErr   error
	LastEmail  string
	LastPass   string

	ChangePasswordErr error
	LastCurrent       string
	LastNext          string

	TotalUsersRet      int
	TotalUsersErr      error
	TotalPropertiesRet int
	BarangayRet        []models.BarangayStat

	UsersRet      []models.User
	PropertiesRet []models.Property
	MutateErr     error

	LandlordsRet  []models.Landlord
	VerifyResp    *models.VerifyResponse
	VerifyErr     error
	LastVerifyReq models.VerifyRequest

	ReportPage  *models.ReportPage
	ReportRet   *models.Report
	ReportErr   error
	DeleteErr   error
	LastQuery   models.ReportQuery
	LastNote    string
	LastStatus  models.ReportStatus
	LastAction  models.ResolutionAction
	LastDetails string
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	f.record("Login")
	f.LastEmail, f.LastPass = email, password
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) ChangePassword(_ context.Context, current, next string) error {
	f.record("ChangePassword")
	f.LastCurrent, f.LastNext = current, next
	return f.ChangePasswordErr
}

func (f *fakeClient) TotalUsers(context.Context) (int, error) {
	f.record("TotalUsers")
	return f.TotalUsersRet, f.TotalUsersErr
}

func (f *fakeClient) TotalProperties(context.Context) (int, error) {
	f.record("TotalProperties")
	return f.TotalPropertiesRet, nil
}

func (f *fakeClient) BarangayStats(context.Context) ([]models.BarangayStat, error) {
	f.record("BarangayStats")
	return f.BarangayRet, nil
}

func (f *fakeClient) ListUsers(context.Context) ([]models.User, error) {
	f.record("ListUsers")
	return f.UsersRet, nil
}

func (f *fakeClient) BanUser(context.Context, string) error {
	f.record("BanUser")
	return f.MutateErr
}

func (f *fakeClient) UnbanUser(context.Context, string) error {
	f.record("UnbanUser")
	return f.MutateErr
}

func (f *fakeClient) DeleteUser(context.Context, string) error {
	f.record("DeleteUser")
	return f.MutateErr
}

func (f *fakeClient) ListProperties(context.Context) ([]models.Property, error) {
	f.record("ListProperties")
	return f.PropertiesRet, nil
}

func (f *fakeClient) SetPropertyStatus(context.Context, string, models.PropertyStatus) error {
	f.record("SetPropertyStatus")
	return f.MutateErr
}

func (f *fakeClient) DeleteProperty(context.Context, string) error {
	f.record("DeleteProperty")
	return f.MutateErr
}

func (f *fakeClient) LandlordsForVerification(context.Context) ([]models.Landlord, error) {
	f.record("LandlordsForVerification")
	return f.LandlordsRet, nil
}

func (f *fakeClient) VerifyLandlord(_ context.Context, req models.VerifyRequest) (*models.VerifyResponse, error) {
	f.record("VerifyLandlord")
	f.LastVerifyReq = req
	return f.VerifyResp, f.VerifyErr
}

func (f *fakeClient) DeleteLandlordDocument(context.Context, string, string) error {
	f.record("DeleteLandlordDocument")
	return f.MutateErr
}

func (f *fakeClient) ListReports(_ context.Context, q models.ReportQuery) (*models.ReportPage, error) {
	f.record("ListReports")
	f.LastQuery = q
	return f.ReportPage, f.ReportErr
}

func (f *fakeClient) GetReport(context.Context, string) (*models.Report, error) {
	f.record("GetReport")
	return f.ReportRet, f.ReportErr
}

func (f *fakeClient) AddReportNote(_ context.Context, _ string, text string) (*models.Report, error) {
	f.record("AddReportNote")
	f.LastNote = text
	return f.ReportRet, f.ReportErr
}

func (f *fakeClient) SetReportStatus(_ context.Context, _ string, status models.ReportStatus) (*models.Report, error) {
	f.record("SetReportStatus")
	f.LastStatus = status
	return f.ReportRet, f.ReportErr
}

func (f *fakeClient) ResolveReport(_ context.Context, _ string, action models.ResolutionAction, details string) (*models.Report, error) {
	f.record("ResolveReport")
	f.LastAction, f.LastDetails = action, details
	return f.ReportRet, f.ReportErr
}

func (f *fakeClient) DeleteReport(context.Context, string) error {
	f.record("DeleteReport")
	return f.DeleteErr
}
