package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/client/listview"
)

// pager is the list surface shared by the users and properties screens.
type pager interface {
	Load(ctx context.Context) error
	Loaded() bool
	Search(q string)
	Sort(key string) (listview.Sort, error)
	SetPageSize(n int) error
	SetPage(n int) int
	NextPage() int
	PrevPage() int
}

// ensureLoaded fetches the collection the first time a screen is shown.
func ensureLoaded(ctx context.Context, s pager) error {
	if s.Loaded() {
		return nil
	}
	return s.Load(ctx)
}

// listCommand runs the view subcommands common to list screens. handled is
// false when sub is not one of them.
func (a *App) listCommand(ctx context.Context, s pager, sub string, args []string) (handled bool, err error) {
	switch sub {
	case "reload":
		return true, s.Load(ctx)
	case "search":
		s.Search(strings.Join(args, " "))
		return true, nil
	case "sort":
		if len(args) != 1 {
			return true, usage("sort <key>")
		}
		st, err := s.Sort(args[0])
		if err != nil {
			return true, err
		}
		if st.Dir == listview.SortNone {
			a.println("Sort cleared.")
		} else {
			a.printf("Sorted by %s %s\n", st.Key, st.Dir)
		}
		return true, nil
	case "page":
		n, err := intArg(args, "page <n>")
		if err != nil {
			return true, err
		}
		s.SetPage(n)
		return true, nil
	case "next":
		s.NextPage()
		return true, nil
	case "prev":
		s.PrevPage()
		return true, nil
	case "size":
		n, err := intArg(args, "size <10|25|50|100>")
		if err != nil {
			return true, err
		}
		return true, s.SetPageSize(n)
	}
	return false, nil
}

func intArg(args []string, syntax string) (int, error) {
	if len(args) != 1 {
		return 0, usage(syntax)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, usage(syntax)
	}
	return n, nil
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

func usage(syntax string) error { return usageError(syntax) }

// all maps the "all" keyword to an empty filter value.
func all(v string) string {
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func pageFooter[T any](p listview.Page[T]) string {
	s := fmt.Sprintf("Page %d/%d, %d total, %d per page", p.Page, p.PageCount, p.Total, p.PageSize)
	if p.Sort.Dir != listview.SortNone {
		s += fmt.Sprintf(", sorted by %s %s", p.Sort.Key, p.Sort.Dir)
	}
	return s
}
