package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Kind selects the chart shape.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

var (
	ErrNoData           = errors.New("no data available")
	ErrNoNumericColumns = errors.New("no numeric columns available")
	ErrNoPlotRows       = errors.New("no rows to plot")
)

// Config describes one rendered chart.
type Config struct {
	Kind  Kind
	XAxis string
	YAxis string
}

// Render writes a PNG chart of rows to w.
func Render(w io.Writer, cfg Config, rows []PlotRow) error {
	if len(rows) == 0 {
		return ErrNoPlotRows
	}

	title := fmt.Sprintf("%s by %s", cfg.YAxis, cfg.XAxis)
	switch cfg.Kind {
	case KindLine:
		return renderLine(w, title, rows)
	case KindBar, "":
		return renderBar(w, title, rows)
	default:
		return fmt.Errorf("unknown chart kind %q", cfg.Kind)
	}
}

func renderBar(w io.Writer, title string, rows []PlotRow) error {
	bars := make([]gochart.Value, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, gochart.Value{Label: r.X, Value: r.Y})
	}

	graph := gochart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
		XAxis: gochart.Style{
			TextRotationDegrees: 45,
		},
	}
	return graph.Render(gochart.PNG, w)
}

func renderLine(w io.Writer, title string, rows []PlotRow) error {
	xs := make([]float64, 0, len(rows))
	ys := make([]float64, 0, len(rows))
	ticks := make([]gochart.Tick, 0, len(rows))
	for i, r := range rows {
		xs = append(xs, float64(i))
		ys = append(ys, r.Y)
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: r.X})
	}
	if len(rows) == 1 {
		// go-chart cannot derive a range from a single point.
		xs = append(xs, 1)
		ys = append(ys, rows[0].Y)
		ticks = append(ticks, gochart.Tick{Value: 1, Label: rows[0].X})
	}

	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if maxY <= minY {
		// go-chart cannot render a zero-height Y range.
		maxY = minY + 1
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis: gochart.XAxis{
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(gochart.PNG, w)
}

func barWidth(n int) int {
	if n == 0 {
		return 60
	}
	w := 900 / n
	if w > 60 {
		return 60
	}
	if w < 4 {
		return 4
	}
	return w
}
