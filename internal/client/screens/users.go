package screens

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
	"github.com/dmitrijs2005/rentadmin/internal/client/listview"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/reconcile"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// UserSortKeys are the sortable columns of the users screen.
var UserSortKeys = []string{"name", "email", "role", "status", "created"}

type UsersScreen struct {
	*listScreen[models.User]
	svc services.UserService
}

func NewUsersScreen(svc services.UserService, debounce time.Duration, logger logging.Logger) *UsersScreen {
	cfg := listview.Config[models.User]{
		Match: func(u models.User, q string) bool {
			return listview.Contains(u.DisplayName, q) || listview.Contains(u.Email, q)
		},
		Compare: map[string]func(a, b models.User) int{
			"name":    func(a, b models.User) int { return cmp.Compare(a.DisplayName, b.DisplayName) },
			"email":   func(a, b models.User) int { return cmp.Compare(a.Email, b.Email) },
			"role":    func(a, b models.User) int { return cmp.Compare(a.Role, b.Role) },
			"status":  func(a, b models.User) int { return cmp.Compare(a.Status, b.Status) },
			"created": func(a, b models.User) int { return a.CreatedAt.Compare(b.CreatedAt) },
		},
	}
	return &UsersScreen{
		listScreen: newListScreen(cfg, svc.List, debounce, logger),
		svc:        svc,
	}
}

// FilterRole keeps only users with role; an empty role clears the filter.
func (s *UsersScreen) FilterRole(role models.Role) {
	if role == "" {
		s.view.SetFilter("role", nil)
		return
	}
	s.view.SetFilter("role", func(u models.User) bool { return u.Role == role })
}

func (s *UsersScreen) FilterStatus(status models.UserStatus) {
	if status == "" {
		s.view.SetFilter("status", nil)
		return
	}
	s.view.SetFilter("status", func(u models.User) bool { return u.Status == status })
}

func (s *UsersScreen) find(id string) (models.User, error) {
	for _, u := range s.Items() {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", id, common.ErrorNotFound)
}

func byUserID(id string) func(models.User) bool {
	return func(u models.User) bool { return u.ID == id }
}

// Ban marks the user banned locally, then on the server; a failure puts
// the previous row back.
func (s *UsersScreen) Ban(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.UserStatusBanned, s.svc.Ban)
}

func (s *UsersScreen) Unban(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.UserStatusActive, s.svc.Unban)
}

func (s *UsersScreen) setStatus(ctx context.Context, id string, status models.UserStatus, call func(context.Context, string) error) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	return s.mutate(ctx,
		reconcile.Replace(byUserID(id), func(u models.User) models.User { u.Status = status; return u }),
		func(ctx context.Context) error { return call(ctx, id) },
		reconcile.Restore[models.User]())
}

// Delete asks for confirmation, removes the row, and deletes on the
// server. If the server refuses, the list is fetched again.
func (s *UsersScreen) Delete(ctx context.Context, id string, c Confirmer) error {
	u, err := s.find(id)
	if err != nil {
		return err
	}
	return confirm(ctx, c, dialog.Options{
		Title:        "Delete user",
		Message:      fmt.Sprintf("Delete %s <%s>? This cannot be undone.", u.DisplayName, u.Email),
		ConfirmLabel: "Delete",
		Destructive:  true,
		InitialFocus: dialog.FocusCancel,
		OnConfirm: func(ctx context.Context) error {
			return s.mutate(ctx, reconcile.Without(byUserID(id)),
				func(ctx context.Context) error { return s.svc.Delete(ctx, id) },
				s.refetch())
		},
	})
}
