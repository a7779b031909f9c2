package cli

import (
	"context"
	"strconv"
)

// Dashboard prints the platform totals and users per barangay.
func (a *App) Dashboard(ctx context.Context) error {
	a.reports.SetVisible(false)
	stats, err := a.dashboardService.Stats(ctx)
	if err != nil {
		return err
	}
	a.printf("Total users:      %d\n", stats.TotalUsers)
	a.printf("Total properties: %d\n", stats.TotalProperties)
	if len(stats.Barangays) == 0 {
		return nil
	}
	t := newTable(a.out, "BARANGAY", "USERS")
	for _, b := range stats.Barangays {
		t.row(b.Barangay, strconv.Itoa(b.Users))
	}
	return t.flush()
}
