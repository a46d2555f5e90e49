package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/me/csvbrowse/internal/browse"
	"github.com/me/csvbrowse/internal/chart"
)

func newChartCmd() *cobra.Command {
	var (
		kind  string
		xAxis string
		yAxis string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "chart <file-id>",
		Short: "Render a chart of a CSV file as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			id, err := parseFileID(args[0])
			if err != nil {
				return err
			}

			view := browse.NewContentView(client)
			if err := view.Load(cmd.Context(), id); err != nil {
				_, msg := view.State()
				return fmt.Errorf("%s", msg)
			}
			content := view.Content()
			if len(content.Data) == 0 {
				return chart.ErrNoData
			}

			numeric := chart.NumericColumns(content)
			if len(numeric) == 0 {
				return chart.ErrNoNumericColumns
			}

			// Defaults computed from the content, overridable per flag.
			if xAxis == "" {
				xAxis = view.XAxis
			}
			if yAxis == "" {
				yAxis = view.YAxis
			}
			if !slices.Contains(content.Columns, xAxis) {
				return fmt.Errorf("unknown X column %q", xAxis)
			}
			if !slices.Contains(numeric, yAxis) {
				return fmt.Errorf("column %q is not numeric (numeric columns: %v)", yAxis, numeric)
			}

			rows := chart.PlotRows(content, xAxis, yAxis)

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			cfg := chart.Config{Kind: chart.Kind(kind), XAxis: xAxis, YAxis: yAxis}
			if err := chart.Render(f, cfg, rows); err != nil {
				os.Remove(out)
				return fmt.Errorf("render chart: %w", err)
			}

			fmt.Printf("Wrote %s (%s of %s by %s, %d rows)\n", out, kind, yAxis, xAxis, len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "bar", "Chart type (bar, line)")
	cmd.Flags().StringVar(&xAxis, "x", "", "X axis column (default: first column)")
	cmd.Flags().StringVar(&yAxis, "y", "", "Y axis column (default: first numeric column)")
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "Output PNG path")
	return cmd
}
