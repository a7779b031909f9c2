package client

import (
	"context"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

// Client is the transport-agnostic contract for the marketplace REST API.
// Every method honours ctx cancellation.
type Client interface {
	Login(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, current, next string) error

	TotalUsers(ctx context.Context) (int, error)
	TotalProperties(ctx context.Context) (int, error)
	BarangayStats(ctx context.Context) ([]models.BarangayStat, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	BanUser(ctx context.Context, id string) error
	UnbanUser(ctx context.Context, id string) error
	DeleteUser(ctx context.Context, id string) error

	ListProperties(ctx context.Context) ([]models.Property, error)
	SetPropertyStatus(ctx context.Context, id string, status models.PropertyStatus) error
	DeleteProperty(ctx context.Context, id string) error

	LandlordsForVerification(ctx context.Context) ([]models.Landlord, error)
	VerifyLandlord(ctx context.Context, req models.VerifyRequest) (*models.VerifyResponse, error)
	DeleteLandlordDocument(ctx context.Context, landlordID, docID string) error

	ListReports(ctx context.Context, q models.ReportQuery) (*models.ReportPage, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	AddReportNote(ctx context.Context, id, text string) (*models.Report, error)
	SetReportStatus(ctx context.Context, id string, status models.ReportStatus) (*models.Report, error)
	ResolveReport(ctx context.Context, id string, action models.ResolutionAction, details string) (*models.Report, error)
	DeleteReport(ctx context.Context, id string) error
}

// Session is what the client needs from the session store: the current
// bearer token and a way to drop the session when the server answers 401.
type Session interface {
	Token() string
	Invalidate(ctx context.Context) error
}
