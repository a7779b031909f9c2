package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/common"
)

const reportsUsage = "reports [refresh|status <s|all>|type <t|all>|category <c|all>|search <text>|page <n>|next|prev|size <n>|auto <on|off>|show <id>|note [text]|set <status>|resolve <action> [details]|delete|close]"

// Reports runs a reports subcommand. Query changes reload the page from
// the server; detail commands act on the report opened with "show".
func (a *App) Reports(ctx context.Context, args []string) error {
	s := a.reports
	s.SetVisible(true)
	if len(args) == 0 {
		return a.refreshReports(ctx)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "refresh":
		return a.refreshReports(ctx)
	case "status", "type", "category":
		if len(rest) != 1 {
			return usage("reports " + sub + " <value|all>")
		}
		v := all(rest[0])
		s.UpdateQuery(func(q *models.ReportQuery) {
			switch sub {
			case "status":
				q.Status = models.ReportStatus(v)
			case "type":
				q.Type = models.ReportType(v)
			default:
				q.Category = v
			}
		})
		return a.refreshReports(ctx)
	case "search":
		text := strings.Join(rest, " ")
		s.UpdateQuery(func(q *models.ReportQuery) { q.Search = text })
		return a.refreshReports(ctx)
	case "page", "size":
		n, err := intArg(rest, "reports "+sub+" <n>")
		if err != nil {
			return err
		}
		if n < 1 {
			return usage("reports " + sub + " <n>")
		}
		s.UpdateQuery(func(q *models.ReportQuery) {
			if sub == "page" {
				q.Page = n
			} else {
				q.Limit = n
			}
		})
		return a.refreshReports(ctx)
	case "next", "prev":
		last := max(s.Page().TotalPages, 1)
		s.UpdateQuery(func(q *models.ReportQuery) {
			if sub == "next" {
				q.Page = min(q.Page+1, last)
			} else {
				q.Page = max(q.Page-1, 1)
			}
		})
		return a.refreshReports(ctx)
	case "auto":
		if len(rest) != 1 || (rest[0] != "on" && rest[0] != "off") {
			return usage("reports auto <on|off>")
		}
		s.SetAutoRefresh(rest[0] == "on")
		a.printf("Auto refresh %s.\n", rest[0])
		return nil
	case "show":
		if len(rest) != 1 {
			return usage("reports show <id>")
		}
		r, err := s.OpenDetail(ctx, rest[0])
		if err != nil {
			return err
		}
		a.printReport(r)
		return nil
	case "close":
		s.CloseDetail()
		return nil
	case "note":
		text := strings.Join(rest, " ")
		if strings.TrimSpace(text) == "" {
			t, err := GetMultiline(a.reader, "Note text", a.out)
			if err != nil {
				return err
			}
			text = t
		}
		if err := s.AddNote(ctx, text); err != nil {
			return err
		}
	case "set":
		if len(rest) != 1 {
			return usage("reports set <open|under_review|dismissed>")
		}
		if err := s.SetStatus(ctx, models.ReportStatus(rest[0])); err != nil {
			return err
		}
	case "resolve":
		if len(rest) == 0 {
			return usage("reports resolve <" + joinActions() + "> [details]")
		}
		details := strings.Join(rest[1:], " ")
		if err := s.Resolve(ctx, models.ResolutionAction(rest[0]), details, a.confirm); err != nil {
			return err
		}
	case "delete":
		d := s.Detail()
		if d == nil {
			return fmt.Errorf("no report open: %w", common.ErrorNotFound)
		}
		if err := s.Delete(ctx, a.confirm); err != nil {
			return err
		}
		a.printf("Report %s deleted.\n", d.ID)
		return nil
	default:
		return usage(reportsUsage)
	}

	if d := s.Detail(); d != nil {
		a.printReport(d)
	}
	return nil
}

func joinActions() string {
	out := make([]string, len(models.ResolutionActions))
	for i, a := range models.ResolutionActions {
		out[i] = string(a)
	}
	return strings.Join(out, "|")
}

func (a *App) refreshReports(ctx context.Context) error {
	if err := a.reports.Refresh(ctx); err != nil {
		return err
	}
	return a.printReports()
}

func (a *App) printReports() error {
	p := a.reports.Page()
	q := a.reports.Query()

	t := newTable(a.out, "ID", "TYPE", "CATEGORY", "STATUS", "CREATED", "DESCRIPTION")
	for _, r := range p.Reports {
		t.row(r.ID, string(r.Type), r.Category, string(r.Status), date(r.CreatedAt), truncate(r.Description, 48))
	}
	if err := t.flush(); err != nil {
		return err
	}

	var filters []string
	for _, f := range []struct{ name, v string }{
		{"status", string(q.Status)}, {"type", string(q.Type)}, {"category", q.Category}, {"search", q.Search},
	} {
		if f.v != "" {
			filters = append(filters, f.name+"="+strconv.Quote(f.v))
		}
	}
	footer := fmt.Sprintf("Page %d/%d, %d total, %d per page", q.Page, max(p.TotalPages, 1), p.Total, q.Limit)
	if len(filters) > 0 {
		footer += ", " + strings.Join(filters, " ")
	}
	if !a.reports.AutoRefreshing() {
		footer += ", auto refresh off"
	}
	a.println(footer)
	return nil
}

func (a *App) printReport(r *models.Report) {
	a.printf("Report %s (%s, %s)\n", r.ID, r.Type, r.Category)
	a.printf("Status:   %s\n", r.Status)
	a.printf("Created:  %s\n", stamp(r.CreatedAt))
	if r.ReporterID != "" {
		a.printf("Reporter: %s\n", r.ReporterID)
	}
	if r.TargetID != "" {
		a.printf("Target:   %s\n", r.TargetID)
	}
	a.printf("\n%s\n", r.Description)
	if r.Resolution != nil {
		a.printf("\nResolved %s with %s", stamp(r.Resolution.ResolvedAt), r.Resolution.Action)
		if r.Resolution.Details != "" {
			a.printf(": %s", r.Resolution.Details)
		}
		a.println()
	}
	if len(r.AdminNotes) > 0 {
		a.println("\nNotes:")
		for _, n := range r.AdminNotes {
			a.printf("  [%s] %s\n", stamp(n.CreatedAt), n.Text)
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
