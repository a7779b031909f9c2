package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/screens"
)

const usersUsage = "users [reload|search <text>|role <tenant|landlord|all>|status <active|banned|all>|sort <key>|page <n>|next|prev|size <n>|ban <id>|unban <id>|delete <id>]"

// Users runs a users subcommand and prints the current page.
func (a *App) Users(ctx context.Context, args []string) error {
	a.reports.SetVisible(false)
	s := a.users
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
			if err := a.userAction(ctx, s, sub, rest); err != nil {
				return err
			}
		}
	}
	return a.printUsers(s)
}

func (a *App) userAction(ctx context.Context, s *screens.UsersScreen, sub string, args []string) error {
	switch sub {
	case "role":
		if len(args) != 1 {
			return usage("users role <tenant|landlord|all>")
		}
		s.FilterRole(models.Role(strings.ToLower(all(args[0]))))
	case "status":
		if len(args) != 1 {
			return usage("users status <active|banned|all>")
		}
		s.FilterStatus(models.UserStatus(strings.ToLower(all(args[0]))))
	case "ban", "unban", "delete":
		if len(args) != 1 {
			return usage("users " + sub + " <id>")
		}
		id := args[0]
		var err error
		switch sub {
		case "ban":
			err = s.Ban(ctx, id)
		case "unban":
			err = s.Unban(ctx, id)
		default:
			err = s.Delete(ctx, id, a.confirm)
		}
		if err != nil {
			return err
		}
		a.printf("User %s: %s done.\n", id, sub)
	default:
		return usage(usersUsage)
	}
	return nil
}

func (a *App) printUsers(s *screens.UsersScreen) error {
	p := s.Page()
	t := newTable(a.out, "ID", "NAME", "EMAIL", "ROLE", "STATUS", "BARANGAY", "CREATED")
	for _, u := range p.Items {
		t.row(u.ID, u.DisplayName, u.Email, string(u.Role), string(u.Status), u.Barangay, date(u.CreatedAt))
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
