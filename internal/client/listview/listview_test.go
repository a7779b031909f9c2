package listview

import (
	"cmp"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    string
	name  string
	price int
}

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: fmt.Sprintf("r%02d", i), name: fmt.Sprintf("item %02d", i), price: i % 3}
	}
	return out
}

func ids(items []row) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.id
	}
	return out
}

func newView(items []row) *View[row] {
	v := New(Config[row]{
		Match: func(r row, q string) bool { return Contains(r.name, q) },
		Compare: map[string]func(a, b row) int{
			"name":  func(a, b row) int { return cmp.Compare(a.name, b.name) },
			"price": func(a, b row) int { return cmp.Compare(a.price, b.price) },
		},
	})
	v.SetItems(items)
	return v
}

func TestView_PageCountAndClamp(t *testing.T) {
	tests := []struct {
		total     int
		size      int
		request   int
		wantPages int
		wantPage  int
	}{
		{0, 10, 5, 1, 1},
		{1, 10, 0, 1, 1},
		{10, 10, 2, 1, 1},
		{11, 10, 2, 2, 2},
		{26, 25, 9, 2, 2},
		{100, 25, -3, 4, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d->%d", tt.total, tt.size, tt.request), func(t *testing.T) {
			v := newView(rows(tt.total))
			require.NoError(t, v.SetPageSize(tt.size))

			assert.Equal(t, tt.wantPage, v.SetPage(tt.request))
			p := v.Current()
			assert.Equal(t, tt.wantPages, p.PageCount)
			assert.Equal(t, tt.wantPage, p.Page)
		})
	}
}

func TestView_PageSlices(t *testing.T) {
	v := newView(rows(23))

	v.SetPage(3)
	p := v.Current()
	assert.Equal(t, []string{"r20", "r21", "r22"}, ids(p.Items))
	assert.Equal(t, 23, p.Total)

	assert.Equal(t, 3, v.NextPage())
	assert.Equal(t, 2, v.PrevPage())
}

func TestView_InvalidPageSize(t *testing.T) {
	v := newView(nil)
	require.ErrorIs(t, v.SetPageSize(20), ErrInvalidPageSize)
	assert.Equal(t, DefaultPageSize, v.Current().PageSize)
}

func TestView_ChangesResetPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(v *View[row])
	}{
		{"query", func(v *View[row]) { v.SetQuery("item") }},
		{"filter", func(v *View[row]) { v.SetFilter("cheap", func(r row) bool { return r.price < 5 }) }},
		{"remove filter", func(v *View[row]) { v.SetFilter("cheap", nil) }},
		{"page size", func(v *View[row]) { require.NoError(t, v.SetPageSize(25)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView(rows(60))
			require.Equal(t, 4, v.SetPage(4))

			tt.change(v)
			assert.Equal(t, 1, v.Current().Page)
		})
	}
}

func TestView_SameQueryKeepsPage(t *testing.T) {
	v := newView(rows(60))
	v.SetQuery("Item")
	v.SetPage(3)
	v.SetQuery(" item ")
	assert.Equal(t, 3, v.Current().Page)
}

func TestView_ShrinkingCollectionClampsPage(t *testing.T) {
	v := newView(rows(30))
	v.SetPage(3)

	v.SetItems(rows(12))
	p := v.Current()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, []string{"r10", "r11"}, ids(p.Items))
}

func TestView_QueryAndFilters(t *testing.T) {
	v := newView(rows(30))
	require.NoError(t, v.SetPageSize(100))

	v.SetQuery("ITEM 1")
	assert.Len(t, v.Current().Items, 10)

	v.SetFilter("price", func(r row) bool { return r.price == 0 })
	assert.Equal(t, []string{"r12", "r15", "r18"}, ids(v.Current().Items))

	v.SetQuery("")
	v.SetFilter("price", nil)
	assert.Len(t, v.Current().Items, 30)
}

func TestView_SortCycle(t *testing.T) {
	items := []row{
		{id: "a", name: "b", price: 2},
		{id: "b", name: "a", price: 1},
		{id: "c", name: "c", price: 2},
		{id: "d", name: "d", price: 1},
	}
	v := newView(items)

	s, err := v.ToggleSort("price")
	require.NoError(t, err)
	assert.Equal(t, Sort{Key: "price", Dir: SortAsc}, s)
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(v.Current().Items), "stable asc")

	s, _ = v.ToggleSort("price")
	assert.Equal(t, SortDesc, s.Dir)
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(v.Current().Items), "stable desc")

	s, _ = v.ToggleSort("price")
	assert.Equal(t, Sort{}, s)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(v.Current().Items), "server order")

	s, _ = v.ToggleSort("price")
	assert.Equal(t, SortAsc, s.Dir)
	s, _ = v.ToggleSort("name")
	assert.Equal(t, Sort{Key: "name", Dir: SortAsc}, s, "new key starts asc")
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(v.Current().Items))
}

func TestView_UnknownSortKey(t *testing.T) {
	v := newView(nil)
	_, err := v.ToggleSort("rating")
	require.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestView_SortDoesNotReorderItems(t *testing.T) {
	v := newView(rows(5))
	_, _ = v.ToggleSort("name")
	_, _ = v.ToggleSort("name")
	_ = v.Current()
	assert.Equal(t, ids(rows(5)), ids(v.Items()))
}

func TestView_Update(t *testing.T) {
	v := newView(rows(3))
	v.Update(func(items []row) []row { return items[1:] })
	assert.Equal(t, []string{"r01", "r02"}, ids(v.Items()))
}
