package screens

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/dialog"
	"github.com/dmitrijs2005/rentadmin/internal/client/listview"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/reconcile"
	"github.com/dmitrijs2005/rentadmin/internal/client/services"
	"github.com/dmitrijs2005/rentadmin/internal/common"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

var PropertySortKeys = []string{"name", "status", "price", "rooms", "area", "created"}

type PropertiesScreen struct {
	*listScreen[models.Property]
	svc services.PropertyService
}

func NewPropertiesScreen(svc services.PropertyService, debounce time.Duration, logger logging.Logger) *PropertiesScreen {
	cfg := listview.Config[models.Property]{
		Match: func(p models.Property, q string) bool {
			return listview.Contains(p.Title, q) ||
				listview.Contains(p.Barangay, q) ||
				listview.Contains(p.Category, q)
		},
		Compare: map[string]func(a, b models.Property) int{
			"name":    func(a, b models.Property) int { return cmp.Compare(a.Title, b.Title) },
			"status":  func(a, b models.Property) int { return cmp.Compare(a.Status, b.Status) },
			"price":   func(a, b models.Property) int { return cmp.Compare(a.Price, b.Price) },
			"rooms":   func(a, b models.Property) int { return cmp.Compare(a.Rooms, b.Rooms) },
			"area":    func(a, b models.Property) int { return cmp.Compare(a.AreaSqm, b.AreaSqm) },
			"created": func(a, b models.Property) int { return a.CreatedAt.Compare(b.CreatedAt) },
		},
	}
	return &PropertiesScreen{
		listScreen: newListScreen(cfg, svc.List, debounce, logger),
		svc:        svc,
	}
}

func (s *PropertiesScreen) FilterCategory(category string) {
	s.filterField("category", category, func(p models.Property) string { return p.Category })
}

func (s *PropertiesScreen) FilterBarangay(barangay string) {
	s.filterField("barangay", barangay, func(p models.Property) string { return p.Barangay })
}

func (s *PropertiesScreen) filterField(name, want string, field func(models.Property) string) {
	if want == "" {
		s.view.SetFilter(name, nil)
		return
	}
	s.view.SetFilter(name, func(p models.Property) bool { return strings.EqualFold(field(p), want) })
}

// FilterPrice keeps prices in [lo, hi]; a zero bound is open.
func (s *PropertiesScreen) FilterPrice(lo, hi float64) error {
	if lo < 0 || hi < 0 || (hi > 0 && lo > hi) {
		return fmt.Errorf("%w: price range %v-%v", common.ErrorValidation, lo, hi)
	}
	if lo == 0 && hi == 0 {
		s.view.SetFilter("price", nil)
		return nil
	}
	s.view.SetFilter("price", func(p models.Property) bool {
		return p.Price >= lo && (hi == 0 || p.Price <= hi)
	})
	return nil
}

// Categories lists the distinct categories of the loaded properties.
func (s *PropertiesScreen) Categories() []string {
	return distinct(s.Items(), func(p models.Property) string { return p.Category })
}

func (s *PropertiesScreen) Barangays() []string {
	return distinct(s.Items(), func(p models.Property) string { return p.Barangay })
}

func distinct[T any](items []T, field func(T) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		v := field(it)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func byPropertyID(id string) func(models.Property) bool {
	return func(p models.Property) bool { return p.ID == id }
}

func (s *PropertiesScreen) find(id string) (models.Property, error) {
	for _, p := range s.Items() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, fmt.Errorf("property %s: %w", id, common.ErrorNotFound)
}

// SetStatus applies the status locally and refetches the list if the
// server rejects it.
func (s *PropertiesScreen) SetStatus(ctx context.Context, id string, status models.PropertyStatus) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown property status %q", common.ErrorValidation, status)
	}
	return s.mutate(ctx,
		reconcile.Replace(byPropertyID(id), func(p models.Property) models.Property { p.Status = status; return p }),
		func(ctx context.Context) error { return s.svc.SetStatus(ctx, id, status) },
		s.refetch())
}

func (s *PropertiesScreen) Delete(ctx context.Context, id string, c Confirmer) error {
	p, err := s.find(id)
	if err != nil {
		return err
	}
	return confirm(ctx, c, dialog.Options{
		Title:        "Delete property",
		Message:      fmt.Sprintf("Delete %q in %s? This cannot be undone.", p.Title, p.Barangay),
		ConfirmLabel: "Delete",
		Destructive:  true,
		InitialFocus: dialog.FocusCancel,
		OnConfirm: func(ctx context.Context) error {
			return s.mutate(ctx, reconcile.Without(byPropertyID(id)),
				func(ctx context.Context) error { return s.svc.Delete(ctx, id) },
				s.refetch())
		},
	})
}
