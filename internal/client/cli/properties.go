package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/screens"
)

const propertiesUsage = "properties [reload|search <text>|category <name|all>|barangay <name|all>|price <min> <max>|sort <key>|page <n>|next|prev|size <n>|set <id> <available|unavailable>|delete <id>]"

// Properties runs a properties subcommand and prints the current page.
func (a *App) Properties(ctx context.Context, args []string) error {
	a.reports.SetVisible(false)
	s := a.properties
	if err := ensureLoaded(ctx, s); err != nil {
		return err
	}

	if len(args) > 0 {
		sub, rest := args[0], args[1:]
		handled, err := a.listCommand(ctx, s, sub, rest)
		if err != nil {
			return err
		}
		if !handled {
			if err := a.propertyAction(ctx, s, sub, rest); err != nil {
				return err
			}
		}
	}
	return a.printProperties(s)
}

func (a *App) propertyAction(ctx context.Context, s *screens.PropertiesScreen, sub string, args []string) error {
	switch sub {
	case "category":
		if len(args) == 0 {
			a.println("Categories:", strings.Join(s.Categories(), ", "))
			return nil
		}
		s.FilterCategory(all(strings.Join(args, " ")))
	case "barangay":
		if len(args) == 0 {
			a.println("Barangays:", strings.Join(s.Barangays(), ", "))
			return nil
		}
		s.FilterBarangay(all(strings.Join(args, " ")))
	case "price":
		if len(args) != 2 {
			return usage("properties price <min> <max> (0 for no bound)")
		}
		lo, err1 := strconv.ParseFloat(args[0], 64)
		hi, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			return usage("properties price <min> <max> (0 for no bound)")
		}
		return s.FilterPrice(lo, hi)
	case "set":
		if len(args) != 2 {
			return usage("properties set <id> <available|unavailable>")
		}
		if err := s.SetStatus(ctx, args[0], models.PropertyStatus(strings.ToLower(args[1]))); err != nil {
			return err
		}
		a.printf("Property %s is now %s.\n", args[0], strings.ToLower(args[1]))
	case "delete":
		if len(args) != 1 {
			return usage("properties delete <id>")
		}
		if err := s.Delete(ctx, args[0], a.confirm); err != nil {
			return err
		}
		a.printf("Property %s deleted.\n", args[0])
	default:
		return usage(propertiesUsage)
	}
	return nil
}

func (a *App) printProperties(s *screens.PropertiesScreen) error {
	p := s.Page()
	t := newTable(a.out, "ID", "TITLE", "BARANGAY", "CATEGORY", "PRICE", "ROOMS", "AREA", "VIDEO", "STATUS", "CREATED")
	for _, pr := range p.Items {
		t.row(pr.ID, pr.Title, pr.Barangay, pr.Category,
			strconv.FormatFloat(pr.Price, 'f', 2, 64),
			strconv.Itoa(pr.Rooms),
			strconv.FormatFloat(pr.AreaSqm, 'f', -1, 64),
			yesNo(pr.HasVideo), string(pr.Status), date(pr.CreatedAt))
	}
	if err := t.flush(); err != nil {
		return err
	}
	footer := pageFooter(p)
	if q := s.Query(); q != "" {
		footer += fmt.Sprintf(", search %q", q)
	}
	a.println(footer)
	return nil
}
