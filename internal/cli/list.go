package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/csvbrowse/internal/format"
	"github.com/me/csvbrowse/pkg/model"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List CSV files on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			files, err := client.ListFiles(cmd.Context())
			if err != nil {
				return fmt.Errorf("list files: %w", err)
			}

			printFileTable(files)
			return nil
		},
	}
}

func printFileTable(files []model.FileSummary) {
	if len(files) == 0 {
		fmt.Println("No CSV files available.")
		return
	}

	fmt.Printf("%-6s  %-40s  %-12s  %-24s  %s\n", "ID", "FILENAME", "SIZE", "UPLOADED", "AGE")
	fmt.Printf("%-6s  %-40s  %-12s  %-24s  %s\n", "--", "--------", "----", "--------", "---")
	for _, f := range files {
		fmt.Printf("%-6d  %-40s  %-12s  %-24s  %s\n",
			f.ID,
			f.Filename,
			format.Bytes(f.Size),
			format.LocalTime(f.UploadDate.Time),
			humanize.Time(f.UploadDate.Time))
	}
}
