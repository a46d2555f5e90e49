package chart

import (
	"reflect"
	"testing"

	"github.com/me/csvbrowse/pkg/model"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{"-3.5", -3.5, true},
		{"+7", 7, true},
		{".5", 0.5, true},
		{"12px", 12, true},
		{"3.5e2abc", 350, true},
		{"1e", 1, true},
		{"  8 ", 8, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"e5", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func content(cols []string, rows ...model.Row) *model.FileContent {
	return &model.FileContent{
		Filename: "test.csv",
		Columns:  cols,
		Data:     rows,
		RowCount: len(rows),
	}
}

func TestNumericColumns(t *testing.T) {
	// 4 of 5 non-empty values parse: qualifies.
	qualifying := content([]string{"name", "score"},
		model.Row{"name": "a", "score": "1"},
		model.Row{"name": "b", "score": "2"},
		model.Row{"name": "c", "score": "3"},
		model.Row{"name": "d", "score": "x"},
		model.Row{"name": "e", "score": "5"},
	)
	if got := NumericColumns(qualifying); !reflect.DeepEqual(got, []string{"score"}) {
		t.Errorf("NumericColumns = %v, want [score]", got)
	}

	// 3 of 5 non-empty values parse: does not qualify.
	failing := content([]string{"score"},
		model.Row{"score": "1"},
		model.Row{"score": "2"},
		model.Row{"score": "3"},
		model.Row{"score": "x"},
		model.Row{"score": "y"},
	)
	if got := NumericColumns(failing); got != nil {
		t.Errorf("NumericColumns = %v, want nil", got)
	}
}

func TestNumericColumnsIgnoresEmptyValues(t *testing.T) {
	// Empty cells are excluded from the denominator.
	c := content([]string{"v"},
		model.Row{"v": "1"},
		model.Row{"v": ""},
		model.Row{"v": ""},
		model.Row{"v": ""},
		model.Row{"v": "2"},
	)
	if got := NumericColumns(c); !reflect.DeepEqual(got, []string{"v"}) {
		t.Errorf("NumericColumns = %v, want [v]", got)
	}

	allEmpty := content([]string{"v"},
		model.Row{"v": ""},
		model.Row{"v": ""},
	)
	if got := NumericColumns(allEmpty); got != nil {
		t.Errorf("NumericColumns on all-empty column = %v, want nil", got)
	}
}

func TestNumericColumnsPreservesOrder(t *testing.T) {
	c := content([]string{"b", "name", "a"},
		model.Row{"b": "2", "name": "x", "a": "1"},
		model.Row{"b": "4", "name": "y", "a": "3"},
	)
	if got := NumericColumns(c); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("NumericColumns = %v, want [b a]", got)
	}
}

func TestDefaultAxes(t *testing.T) {
	c := content([]string{"name", "count"},
		model.Row{"name": "a", "count": "1"},
		model.Row{"name": "b", "count": "2"},
	)
	x, y := DefaultAxes(c)
	if x != "name" || y != "count" {
		t.Errorf("DefaultAxes = %q, %q; want name, count", x, y)
	}

	noNumeric := content([]string{"name"},
		model.Row{"name": "a"},
	)
	x, y = DefaultAxes(noNumeric)
	if x != "name" || y != "" {
		t.Errorf("DefaultAxes = %q, %q; want name, empty", x, y)
	}

	x, y = DefaultAxes(nil)
	if x != "" || y != "" {
		t.Errorf("DefaultAxes(nil) = %q, %q; want empty, empty", x, y)
	}
}

func TestPlotRows(t *testing.T) {
	c := content([]string{"name", "v"},
		model.Row{"name": "a", "v": "1.5"},
		model.Row{"name": "b", "v": "junk"},
		model.Row{"name": "c", "v": "3"},
	)
	got := PlotRows(c, "name", "v")
	want := []PlotRow{
		{X: "a", Y: 1.5},
		{X: "b", Y: 0},
		{X: "c", Y: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PlotRows = %v, want %v", got, want)
	}
}

func TestPlotRowsWithoutAxes(t *testing.T) {
	c := content([]string{"a"}, model.Row{"a": "1"})
	if got := PlotRows(c, "", "a"); got != nil {
		t.Errorf("PlotRows without X axis = %v, want nil", got)
	}
	if got := PlotRows(c, "a", ""); got != nil {
		t.Errorf("PlotRows without Y axis = %v, want nil", got)
	}
}
