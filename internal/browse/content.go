package browse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/me/csvbrowse/internal/chart"
	"github.com/me/csvbrowse/pkg/model"
)

// ContentAPI is the slice of the server API the content viewer needs.
type ContentAPI interface {
	FileContent(ctx context.Context, id int64) (*model.FileContent, error)
	Download(ctx context.Context, id int64, w io.Writer) error
}

// ViewState tracks the lifecycle of one content load.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewError
	ViewReady
)

// ContentView holds the parsed content of one open file, plus the
// chart axis selection derived from it.
type ContentView struct {
	api ContentAPI

	state   ViewState
	loadErr string
	content *model.FileContent

	XAxis string
	YAxis string
}

// NewContentView builds an empty viewer in the loading state.
func NewContentView(api ContentAPI) *ContentView {
	return &ContentView{api: api, state: ViewLoading}
}

// Load fetches the parsed content for a file and recomputes the
// default chart axes. On failure the viewer moves to the error state
// with a user-facing message.
func (v *ContentView) Load(ctx context.Context, id int64) error {
	v.state = ViewLoading
	v.loadErr = ""
	v.content = nil

	content, err := v.api.FileContent(ctx, id)
	if err != nil {
		v.state = ViewError
		v.loadErr = model.ErrorDetail(err, "Failed to load CSV file")
		return fmt.Errorf("loading content for file %d: %w", id, err)
	}

	v.state = ViewReady
	v.content = content
	v.XAxis, v.YAxis = chart.DefaultAxes(content)
	return nil
}

// State returns the lifecycle state and, in the error state, the
// user-facing message.
func (v *ContentView) State() (ViewState, string) {
	return v.state, v.loadErr
}

// Content returns the loaded content, or nil outside the ready state.
func (v *ContentView) Content() *model.FileContent {
	if v.state != ViewReady {
		return nil
	}
	return v.content
}

// Summary is the one-line header for the open file, e.g.
// "data.csv: 1,204 rows × 5 columns".
func (v *ContentView) Summary() string {
	if v.state != ViewReady {
		return ""
	}
	return fmt.Sprintf("%s: %s rows × %s columns",
		v.content.Filename,
		humanize.Comma(int64(v.content.RowCount)),
		humanize.Comma(int64(len(v.content.Columns))))
}

// RenderTable writes the content as an aligned table: a 1-based row
// index, a dash for empty cells, and a placeholder row when the file
// has no data rows.
func (v *ContentView) RenderTable(w io.Writer) error {
	if v.state != ViewReady {
		return fmt.Errorf("no content loaded")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "#")
	for _, col := range v.content.Columns {
		fmt.Fprintf(tw, "\t%s", col)
	}
	fmt.Fprintln(tw)

	if len(v.content.Data) == 0 {
		fmt.Fprintln(tw, "No data available")
		return tw.Flush()
	}

	for i, row := range v.content.Data {
		fmt.Fprint(tw, strconv.Itoa(i+1))
		for _, col := range v.content.Columns {
			cell := row[col]
			if cell == "" {
				cell = "-"
			}
			fmt.Fprintf(tw, "\t%s", cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// DownloadTo streams the raw CSV into dir under its original filename.
// A partial file is removed on failure.
func DownloadTo(ctx context.Context, api ContentAPI, id int64, filename, dir string) (string, error) {
	path := filepath.Join(dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}

	if err := api.Download(ctx, id, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	return path, nil
}
