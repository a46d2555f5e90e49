package chart

import (
	"strconv"
	"strings"

	"github.com/me/csvbrowse/pkg/model"
)

// numericThreshold is the share of non-empty values in a column that
// must parse as numbers for the column to qualify for the Y axis.
const numericThreshold = 0.8

// ParseNumber parses the leading numeric prefix of s, the way the
// browser's parseFloat does: optional sign, digits, decimal point,
// exponent; trailing garbage is ignored. Returns false when no prefix
// parses.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	n := len(s)

	i := 0
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}

	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumericColumns returns, in server column order, every column with at
// least one non-empty value where at least 80% of the non-empty values
// parse as numbers. Columns with no non-empty values never qualify.
func NumericColumns(content *model.FileContent) []string {
	if content == nil {
		return nil
	}

	var numeric []string
	for _, col := range content.Columns {
		nonEmpty, parsed := 0, 0
		for _, row := range content.Data {
			v := row[col]
			if v == "" {
				continue
			}
			nonEmpty++
			if _, ok := ParseNumber(v); ok {
				parsed++
			}
		}
		if nonEmpty == 0 {
			continue
		}
		if float64(parsed)/float64(nonEmpty) >= numericThreshold {
			numeric = append(numeric, col)
		}
	}
	return numeric
}

// DefaultAxes picks the default selection: X is the first column in
// server order, Y the first numeric-qualifying column. Either may be
// empty when no candidate exists. Computed once per content load.
func DefaultAxes(content *model.FileContent) (x, y string) {
	if content == nil || len(content.Columns) == 0 {
		return "", ""
	}
	x = content.Columns[0]
	if numeric := NumericColumns(content); len(numeric) > 0 {
		y = numeric[0]
	}
	return x, y
}

// PlotRow is one plotting-ready point: the raw X cell and the parsed
// Y value.
type PlotRow struct {
	X string
	Y float64
}

// PlotRows derives the plotting row set for the given axes. Every
// source row maps to exactly one plot row, in source order; Y cells
// that do not parse default to 0.
func PlotRows(content *model.FileContent, xAxis, yAxis string) []PlotRow {
	if content == nil || xAxis == "" || yAxis == "" {
		return nil
	}

	rows := make([]PlotRow, 0, len(content.Data))
	for _, row := range content.Data {
		y, ok := ParseNumber(row[yAxis])
		if !ok {
			y = 0
		}
		rows = append(rows, PlotRow{X: row[xAxis], Y: y})
	}
	return rows
}
