package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	client client.Client
}

func NewDashboardService(c client.Client) DashboardService {
	return &dashboardService{client: c}
}

// Stats loads the three dashboard figures concurrently; the first failure
// cancels the others.
func (d *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := d.client.TotalUsers(ctx)
		if err != nil {
			return fmt.Errorf("total users: %w", err)
		}
		stats.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := d.client.TotalProperties(ctx)
		if err != nil {
			return fmt.Errorf("total properties: %w", err)
		}
		stats.TotalProperties = n
		return nil
	})
	g.Go(func() error {
		b, err := d.client.BarangayStats(ctx)
		if err != nil {
			return fmt.Errorf("barangay stats: %w", err)
		}
		stats.Barangays = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
