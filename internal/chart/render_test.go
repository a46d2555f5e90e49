package chart

import (
	"bytes"
	"errors"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderBar(t *testing.T) {
	rows := []PlotRow{
		{X: "a", Y: 1},
		{X: "b", Y: 2},
		{X: "c", Y: 3},
	}
	var buf bytes.Buffer
	if err := Render(&buf, Config{Kind: KindBar, XAxis: "name", YAxis: "v"}, rows); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("bar output is not a PNG")
	}
}

func TestRenderLine(t *testing.T) {
	rows := []PlotRow{
		{X: "a", Y: 1},
		{X: "b", Y: 4},
	}
	var buf bytes.Buffer
	if err := Render(&buf, Config{Kind: KindLine, XAxis: "name", YAxis: "v"}, rows); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("line output is not a PNG")
	}
}

func TestRenderSinglePointLine(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Config{Kind: KindLine, XAxis: "x", YAxis: "y"}, []PlotRow{{X: "only", Y: 7}}); err != nil {
		t.Fatalf("Render single point: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("single-point line output is not a PNG")
	}
}

func TestRenderNoRows(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Config{Kind: KindBar}, nil)
	if !errors.Is(err, ErrNoPlotRows) {
		t.Errorf("Render with no rows: err = %v, want ErrNoPlotRows", err)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Config{Kind: "pie"}, []PlotRow{{X: "a", Y: 1}}); err == nil {
		t.Error("Render with unknown kind: expected error")
	}
}
